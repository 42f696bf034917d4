package gitdit

import (
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitdit/gitdit/logging"
	"github.com/gitdit/gitdit/message"
	"github.com/gitdit/gitdit/refs"
)

// Issue is a handle for a single issue. Issues reside in repositories
// and are uniquely identified by the id of their initial message; two
// handles are Equal iff their ids are. The handle caches nothing.
type Issue struct {
	repo *Repository
	id   plumbing.Hash
}

// NewIssue creates a handle for the issue with the given id. The issue
// is not required to exist; use Repository.FindIssue to confirm
// existence.
func NewIssue(repo *Repository, id plumbing.Hash) *Issue {
	return &Issue{repo: repo, id: id}
}

// ID returns the issue's id.
func (i *Issue) ID() plumbing.Hash { return i.id }

// Equal reports whether two handles refer to the same issue, i.e.
// whether their ids are equal.
func (i *Issue) Equal(other *Issue) bool { return i.id == other.id }

// String renders the issue id as 40 lowercase hex digits.
func (i *Issue) String() string { return i.id.String() }

// InitialMessage returns the issue's initial message.
func (i *Issue) InitialMessage() (*object.Commit, error) {
	return i.repo.Commit(i.id)
}

// Heads returns the issue's head refs from the local repository and all
// remotes.
func (i *Issue) Heads() ([]*plumbing.Reference, error) {
	return i.repo.referencesMatching(refs.AllGlob(i.id, refs.Head))
}

// LocalHead returns the local head ref of the issue.
func (i *Issue) LocalHead() (*plumbing.Reference, error) {
	ref, err := i.repo.reference(refs.NewHeadReferenceName(i.id))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, newError(CannotFindIssueHead, i.id.String(), nil)
		}
		return nil, err
	}
	return ref, nil
}

// LocalRefs returns the issue's refs of a kind in the local namespace.
func (i *Issue) LocalRefs(kind refs.Kind) ([]*plumbing.Reference, error) {
	return i.repo.referencesMatching(refs.Glob(i.id, kind))
}

// RemoteRefs returns the issue's refs of a kind across all remotes.
func (i *Issue) RemoteRefs(kind refs.Kind) ([]*plumbing.Reference, error) {
	return i.repo.referencesMatching(refs.RemoteGlob(i.id, kind))
}

// AllRefs returns the issue's refs of a kind in both namespaces.
func (i *Issue) AllRefs(kind refs.Kind) ([]*plumbing.Reference, error) {
	return i.repo.referencesMatching(refs.AllGlob(i.id, kind))
}

// AddMessage adds a new message to the issue. The first parent is the
// message being replied to; additional parents express
// cross-references. A leaf ref pinning the new message is created
// alongside the commit.
func (i *Issue) AddMessage(author, committer object.Signature, text string, tree plumbing.Hash, parents []plumbing.Hash) (*object.Commit, error) {
	hash, err := i.repo.createCommit(author, committer, text, tree, parents)
	if err != nil {
		return nil, newError(CannotCreateMessage, "", err)
	}

	if err := i.AddLeaf(hash); err != nil {
		return nil, err
	}

	logging.Debug("message added",
		slog.String("issue", i.String()),
		slog.String("message", hash.String()),
	)
	return i.repo.Commit(hash)
}

// AddLeaf writes the leaf ref pinning a message. The write is
// non-forcing: an existing leaf ref is never overwritten.
func (i *Issue) AddLeaf(messageID plumbing.Hash) error {
	name := refs.NewLeafReferenceName(i.id, messageID)

	if _, err := i.repo.git.Reference(name, false); err == nil {
		return newError(CannotSetReference, name.String(), errors.New("reference already exists"))
	}

	ref := plumbing.NewHashReference(name, messageID)
	if err := i.repo.git.Storer.SetReference(ref); err != nil {
		return newError(CannotSetReference, name.String(), err)
	}
	return nil
}

// UpdateHead points the issue's local head ref at a message. Unless
// allowNonFastForward is set, the update fails when the new target does
// not descend from the current one. The write is a compare-and-set, so
// racing writers resolve by the ref store's semantics.
func (i *Issue) UpdateHead(messageID plumbing.Hash, allowNonFastForward bool) (*plumbing.Reference, error) {
	name := refs.NewHeadReferenceName(i.id)
	updated := plumbing.NewHashReference(name, messageID)

	old, err := i.repo.git.Reference(name, false)
	if err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, newError(CannotGetReference, name.String(), err)
		}
		if err := i.repo.git.Storer.SetReference(updated); err != nil {
			return nil, newError(CannotSetReference, name.String(), err)
		}
		return updated, nil
	}

	if !allowNonFastForward && old.Hash() != messageID {
		ff, err := i.repo.isAncestor(old.Hash(), messageID)
		if err != nil {
			return nil, err
		}
		if !ff {
			return nil, newError(CannotSetReference, name.String(), errors.New("not a fast-forward"))
		}
	}

	if err := i.repo.git.Storer.CheckAndSetReference(updated, old); err != nil {
		return nil, newError(CannotSetReference, name.String(), err)
	}

	logging.Debug("head updated",
		slog.String("issue", i.String()),
		slog.String("target", messageID.String()),
	)
	return updated, nil
}

// isAncestor reports whether ancestor is reachable from descendant.
func (r *Repository) isAncestor(ancestor, descendant plumbing.Hash) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	ancestorCommit, err := r.Commit(ancestor)
	if err != nil {
		return false, err
	}
	descendantCommit, err := r.Commit(descendant)
	if err != nil {
		return false, err
	}
	ok, err := ancestorCommit.IsAncestor(descendantCommit)
	if err != nil {
		return false, newError(CannotConstructRevwalk, "", err)
	}
	return ok, nil
}

// Messages returns an iterator over all messages of the issue, seeded
// at every ref below the issue's namespace. The iteration is
// topological with first-parent simplification and stops at the initial
// message inclusively; the initial message's parents are hidden from
// the walk.
func (i *Issue) Messages() (*MessageIter, error) {
	references, err := i.AllRefs(refs.Any)
	if err != nil {
		return nil, err
	}

	var seeds []plumbing.Hash
	for _, ref := range references {
		seeds = append(seeds, ref.Hash())
	}
	return i.newMessageIter(seeds)
}

// MessagesFrom returns a message iterator seeded only at the given
// message, with the same bounding as Messages.
func (i *Issue) MessagesFrom(messageID plumbing.Hash) (*MessageIter, error) {
	return i.newMessageIter([]plumbing.Hash{messageID})
}

func (i *Issue) newMessageIter(seeds []plumbing.Hash) (*MessageIter, error) {
	initial, err := i.InitialMessage()
	if err != nil {
		return nil, err
	}

	hidden := make(map[plumbing.Hash]bool, initial.NumParents())
	for _, parent := range initial.ParentHashes {
		hidden[parent] = true
	}
	return newMessageIter(i.repo, seeds, hidden)
}

// ReplyTemplate drafts the lines of a reply to the given message: the
// reply subject followed by the quoted message body.
func ReplyTemplate(parent *object.Commit) []string {
	lines := message.Split(parent.Message)
	if len(lines) == 0 {
		return nil
	}

	var body []string
	if len(lines) > 2 {
		body = lines[2:]
	}

	out := []string{message.ReplySubject(lines[0]), ""}
	return append(out, message.Quote(message.TrimTrailingBlanks(body))...)
}
