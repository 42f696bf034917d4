package gitdit

import (
	"container/heap"
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// MessageIter iterates over the messages of an issue in topological
// order, children before parents, following first parents only. The
// order is deterministic for a fixed DAG: among commits whose children
// have all been yielded, the newest committer timestamp goes first,
// with the commit id breaking ties.
type MessageIter struct {
	repo *Repository

	ready      commitHeap
	childCount map[plumbing.Hash]int
	commits    map[plumbing.Hash]*object.Commit
}

// newMessageIter builds an iterator from seed commits. The walk follows
// first parents from every seed, never entering hidden commits.
func newMessageIter(repo *Repository, seeds []plumbing.Hash, hidden map[plumbing.Hash]bool) (*MessageIter, error) {
	it := &MessageIter{
		repo:       repo,
		childCount: make(map[plumbing.Hash]int),
		commits:    make(map[plumbing.Hash]*object.Commit),
	}

	// Collect the reachable set and count first-parent children.
	stack := make([]plumbing.Hash, 0, len(seeds))
	for _, seed := range seeds {
		if !hidden[seed] {
			stack = append(stack, seed)
		}
	}
	for len(stack) > 0 {
		hash := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := it.commits[hash]; ok {
			continue
		}

		commit, err := repo.Commit(hash)
		if err != nil {
			return nil, err
		}
		it.commits[hash] = commit

		if commit.NumParents() == 0 {
			continue
		}
		parent := commit.ParentHashes[0]
		if hidden[parent] {
			continue
		}
		it.childCount[parent]++
		stack = append(stack, parent)
	}

	// Tips have no children within the set.
	for hash, commit := range it.commits {
		if it.childCount[hash] == 0 {
			it.ready = append(it.ready, commit)
		}
	}
	heap.Init(&it.ready)

	return it, nil
}

// Next returns the next message, or io.EOF after the last one.
func (it *MessageIter) Next() (*object.Commit, error) {
	if it.ready.Len() == 0 {
		return nil, io.EOF
	}

	commit := heap.Pop(&it.ready).(*object.Commit)
	delete(it.commits, commit.Hash)

	if commit.NumParents() > 0 {
		parent := commit.ParentHashes[0]
		if it.childCount[parent] > 0 {
			it.childCount[parent]--
			if it.childCount[parent] == 0 {
				heap.Push(&it.ready, it.commits[parent])
			}
		}
	}

	return commit, nil
}

// ForEach calls fn for every remaining message. Returning
// storer.ErrStop from fn stops the iteration without error.
func (it *MessageIter) ForEach(fn func(*object.Commit) error) error {
	for {
		commit, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(commit); err != nil {
			if err == storer.ErrStop {
				return nil
			}
			return err
		}
	}
}

// Close releases the iterator's state.
func (it *MessageIter) Close() {
	it.ready = nil
	it.commits = nil
	it.childCount = nil
}

// commitHeap orders commits by committer timestamp, newest first, with
// the commit id breaking ties.
type commitHeap []*object.Commit

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(a, b int) bool {
	ta, tb := h[a].Committer.When, h[b].Committer.When
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return h[a].Hash.String() > h[b].Hash.String()
}

func (h commitHeap) Swap(a, b int) { h[a], h[b] = h[b], h[a] }

func (h *commitHeap) Push(x any) { *h = append(*h, x.(*object.Commit)) }

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// walkAncestors streams every commit reachable from the seeds,
// following all parents, each commit exactly once. The visit callback
// may stop the walk early by returning true.
func (r *Repository) walkAncestors(seeds []plumbing.Hash, visit func(*object.Commit) (bool, error)) error {
	seen := make(map[plumbing.Hash]bool)
	stopped := false

	for _, seed := range seeds {
		if stopped {
			return nil
		}
		if seen[seed] {
			continue
		}

		commit, err := r.Commit(seed)
		if err != nil {
			return err
		}

		iter := object.NewCommitPreorderIter(commit, seen, nil)
		err = iter.ForEach(func(c *object.Commit) error {
			seen[c.Hash] = true
			stop, err := visit(c)
			if err != nil {
				return err
			}
			if stop {
				stopped = true
				return storer.ErrStop
			}
			return nil
		})
		if err != nil {
			return newError(CannotConstructRevwalk, seed.String(), err)
		}
	}
	return nil
}
