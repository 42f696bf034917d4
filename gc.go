package gitdit

import (
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitdit/gitdit/logging"
	"github.com/gitdit/gitdit/refs"
)

// CollectionSpec states under which condition local head refs are
// eligible for collection.
type CollectionSpec int

const (
	// Never keeps local heads out of collection entirely.
	Never CollectionSpec = iota

	// BackedByRemoteHead collects a local head whose target is already
	// covered by a remote head of the same issue.
	BackedByRemoteHead
)

// CollectableRefs computes dit refs which are no longer required and
// may be deleted. By default only local refs are considered and heads
// are never collected.
type CollectableRefs struct {
	repo   *Repository
	issues []*Issue

	considerRemoteRefs bool
	collectHeads       CollectionSpec
}

// NewCollectableRefs prepares a collection run over the given issues.
func NewCollectableRefs(repo *Repository, issues []*Issue) *CollectableRefs {
	return &CollectableRefs{repo: repo, issues: issues}
}

// ConsiderRemoteRefs additionally pins local leaves against remote refs:
// a local leaf covered by a remote ref becomes collectable. Local heads
// are not affected by this setting.
func (c *CollectableRefs) ConsiderRemoteRefs(consider bool) *CollectableRefs {
	c.considerRemoteRefs = consider
	return c
}

// CollectHeads sets the condition under which local heads are
// collected.
func (c *CollectableRefs) CollectHeads(spec CollectionSpec) *CollectableRefs {
	c.collectHeads = spec
	return c
}

// Refs computes the set of redundant refs.
//
// A leaf is redundant only if a distinct ref's target makes the leaf's
// target reachable, so the shared walk is seeded with the parents of
// every watched target rather than the targets themselves. Head refs
// are assessed in separate per-issue walks seeded only with remote
// heads: mixing them with the leaves walk would collect a head as soon
// as any message was posted as a reply to it.
func (c *CollectableRefs) Refs() ([]*plumbing.Reference, error) {
	var collectable []*plumbing.Reference

	leaves := newRefWatcher()
	var seeds []plumbing.Hash

	for _, issue := range c.issues {
		localHead, err := issue.LocalHead()
		switch {
		case err == nil:
			// The head pins the history below it, but must not report
			// its own target.
			seeds, err = c.appendParentSeeds(seeds, localHead.Hash())
			if err != nil {
				return nil, err
			}

			if c.collectHeads == BackedByRemoteHead {
				collected, err := c.collectHead(issue, localHead)
				if err != nil {
					return nil, err
				}
				collectable = append(collectable, collected...)
			}
		case IsKind(err, CannotFindIssueHead):
			// Issues without a local head are assessed on leaves alone.
		default:
			return nil, err
		}

		localLeaves, err := issue.LocalRefs(refs.Leaf)
		if err != nil {
			return nil, err
		}
		for _, leaf := range localLeaves {
			seeds, err = c.appendParentSeeds(seeds, leaf.Hash())
			if err != nil {
				return nil, err
			}
			leaves.watch(leaf)
		}

		if c.considerRemoteRefs {
			remote, err := issue.RemoteRefs(refs.Any)
			if err != nil {
				return nil, err
			}
			for _, ref := range remote {
				seeds = append(seeds, ref.Hash())
			}
		}
	}

	collected, err := c.run(seeds, leaves)
	if err != nil {
		return nil, err
	}
	collectable = append(collectable, collected...)

	logging.Debug("collection computed", slog.Int("refs", len(collectable)))
	return collectable, nil
}

// collectHead assesses a single local head against the issue's remote
// heads.
func (c *CollectableRefs) collectHead(issue *Issue, localHead *plumbing.Reference) ([]*plumbing.Reference, error) {
	remoteHeads, err := issue.RemoteRefs(refs.Head)
	if err != nil {
		return nil, err
	}
	if len(remoteHeads) == 0 {
		return nil, nil
	}

	var seeds []plumbing.Hash
	for _, ref := range remoteHeads {
		seeds = append(seeds, ref.Hash())
	}

	watcher := newRefWatcher()
	watcher.watch(localHead)
	return c.run(seeds, watcher)
}

// run streams the reachability walk and yields watched refs whose
// targets are emitted.
func (c *CollectableRefs) run(seeds []plumbing.Hash, watcher *refWatcher) ([]*plumbing.Reference, error) {
	if watcher.empty() {
		return nil, nil
	}

	var out []*plumbing.Reference
	err := c.repo.walkAncestors(seeds, func(commit *object.Commit) (bool, error) {
		out = append(out, watcher.emit(commit.Hash)...)
		return watcher.empty(), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// appendParentSeeds pushes the parents of a ref target onto the seed
// list.
func (c *CollectableRefs) appendParentSeeds(seeds []plumbing.Hash, target plumbing.Hash) ([]plumbing.Hash, error) {
	commit, err := c.repo.Commit(target)
	if err != nil {
		return nil, newError(CannotGetCommitForRev, target.String(), err)
	}
	return append(seeds, commit.ParentHashes...), nil
}

// Collector turns the computed set into a deleting run.
func (c *CollectableRefs) Collector() (*Collector, error) {
	collectable, err := c.Refs()
	if err != nil {
		return nil, err
	}
	return &Collector{repo: c.repo, refs: collectable}, nil
}

// refWatcher tracks refs by their target commit.
type refWatcher struct {
	byTarget map[plumbing.Hash][]*plumbing.Reference
}

func newRefWatcher() *refWatcher {
	return &refWatcher{byTarget: make(map[plumbing.Hash][]*plumbing.Reference)}
}

func (w *refWatcher) watch(ref *plumbing.Reference) {
	w.byTarget[ref.Hash()] = append(w.byTarget[ref.Hash()], ref)
}

// emit pops the refs watched at a commit. Each ref is yielded at most
// once.
func (w *refWatcher) emit(target plumbing.Hash) []*plumbing.Reference {
	out := w.byTarget[target]
	if out != nil {
		delete(w.byTarget, target)
	}
	return out
}

func (w *refWatcher) empty() bool { return len(w.byTarget) == 0 }

// Collector deletes a set of refs from the repository.
type Collector struct {
	repo *Repository
	refs []*plumbing.Reference
}

// Refs returns the refs the collector will delete.
func (c *Collector) Refs() []*plumbing.Reference { return c.refs }

// Delete removes the refs and returns one error per failed deletion.
// Deletions are independent; a failure does not stop the run.
func (c *Collector) Delete() []error {
	var errs []error
	for _, ref := range c.refs {
		if err := c.repo.git.Storer.RemoveReference(ref.Name()); err != nil {
			errs = append(errs, newError(CannotDeleteReference, ref.Name().String(), err))
			continue
		}
		logging.Debug("reference collected", slog.String("ref", ref.Name().String()))
	}
	return errs
}

// DeleteIgnoring removes the refs, discarding all errors.
func (c *Collector) DeleteIgnoring() {
	_ = c.Delete()
}
