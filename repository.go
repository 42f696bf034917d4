package gitdit

import (
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitdit/gitdit/logging"
	"github.com/gitdit/gitdit/refs"
)

// Repository wraps a git repository with issue tracking operations. It
// holds only the underlying handle; commits and refs are read fresh on
// every operation.
type Repository struct {
	git *git.Repository
}

// New wraps an already opened git repository.
func New(repo *git.Repository) *Repository {
	return &Repository{git: repo}
}

// Open opens the repository containing the given directory.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return New(repo), nil
}

// Git exposes the underlying repository handle.
func (r *Repository) Git() *git.Repository {
	return r.git
}

// Commit looks up a commit object.
func (r *Repository) Commit(id plumbing.Hash) (*object.Commit, error) {
	commit, err := r.git.CommitObject(id)
	if err != nil {
		return nil, newError(CannotGetCommit, id.String(), err)
	}
	return commit, nil
}

// ParseID parses a 40-hex issue or message id.
func (r *Repository) ParseID(s string) (plumbing.Hash, error) {
	id, ok := refs.ParseHash(s)
	if !ok {
		return plumbing.ZeroHash, newError(OidFormat, s, nil)
	}
	return id, nil
}

// EmptyTree writes the empty tree object and returns its id. Issue
// messages carry no content of their own, so most of them share this
// tree.
func (r *Repository) EmptyTree() (plumbing.Hash, error) {
	tree := &object.Tree{}
	obj := r.git.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, newError(CannotBuildTree, "", err)
	}
	hash, err := r.git.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, newError(CannotBuildTree, "", err)
	}
	return hash, nil
}

// createCommit encodes and stores a commit object.
func (r *Repository) createCommit(author, committer object.Signature, text string, tree plumbing.Hash, parents []plumbing.Hash) (plumbing.Hash, error) {
	commit := &object.Commit{
		Author:       author,
		Committer:    committer,
		Message:      text,
		TreeHash:     tree,
		ParentHashes: parents,
	}

	obj := r.git.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return r.git.Storer.SetEncodedObject(obj)
}

// CreateIssue creates a new issue: a commit carrying the message
// becomes the initial message, its id the issue id, and the issue's
// head ref is written to point at it. Parents, if any, express
// cross-references to other issues.
func (r *Repository) CreateIssue(author, committer object.Signature, text string, tree plumbing.Hash, parents []plumbing.Hash) (*Issue, error) {
	hash, err := r.createCommit(author, committer, text, tree, parents)
	if err != nil {
		return nil, newError(CannotCreateMessage, "", err)
	}

	issue := NewIssue(r, hash)
	head := plumbing.NewHashReference(refs.NewHeadReferenceName(hash), hash)
	if err := r.git.Storer.SetReference(head); err != nil {
		return nil, newError(CannotSetReference, head.Name().String(), err)
	}

	logging.Debug("issue created", slog.String("issue", issue.String()))
	return issue, nil
}

// FindIssue returns a handle for the issue with the given id. The
// issue's existence is confirmed by the presence of at least one head
// ref, local or remote.
func (r *Repository) FindIssue(id plumbing.Hash) (*Issue, error) {
	issue := NewIssue(r, id)
	heads, err := issue.Heads()
	if err != nil {
		return nil, err
	}
	if len(heads) == 0 {
		return nil, newError(CannotFindIssueHead, id.String(), nil)
	}
	return issue, nil
}

// IssueByHeadRef decodes a head ref into an issue handle.
func (r *Repository) IssueByHeadRef(ref *plumbing.Reference) (*Issue, error) {
	classified, ok := refs.Classify(ref.Name().String())
	if !ok || classified.Kind != refs.Head {
		return nil, newError(MalFormedHeadReference, ref.Name().String(), nil)
	}
	return NewIssue(r, classified.Issue), nil
}

// FindTreeInit walks the chain of first parents from a commit until it
// reaches a message whose id has an issue head, and returns that issue.
func (r *Repository) FindTreeInit(commit *object.Commit) (*Issue, error) {
	start := commit.Hash

	for current := commit; ; {
		issue := NewIssue(r, current.Hash)
		heads, err := issue.Heads()
		if err != nil {
			return nil, err
		}
		if len(heads) > 0 {
			return issue, nil
		}

		if current.NumParents() == 0 {
			return nil, newError(NoTreeInitFound, start.String(), nil)
		}
		parent, err := current.Parent(0)
		if err != nil {
			return nil, newError(CannotGetCommit, current.Hash.String(), err)
		}
		current = parent
	}
}

// headsGlob matches every issue head ref, local or remote.
const headsGlob = "**/dit/*/head"

// Issues enumerates all issues present in the repository by scanning
// head refs, local or mirrored from remotes, deduplicated by issue id.
// Refs matching the head glob but failing structural decoding are
// reported as MalFormedHeadReference errors alongside the successfully
// decoded issues; the caller decides whether to abort or continue.
func (r *Repository) Issues() ([]*Issue, []error) {
	var issues []*Issue
	var errs []error
	seen := make(map[plumbing.Hash]bool)

	iter, err := r.git.References()
	if err != nil {
		return nil, []error{newError(CannotGetReferences, headsGlob, err)}
	}
	defer iter.Close()

	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !refs.Match(headsGlob, name) {
			return nil
		}
		classified, ok := refs.Classify(name)
		if !ok {
			errs = append(errs, newError(MalFormedHeadReference, name, nil))
			return nil
		}
		if !seen[classified.Issue] {
			seen[classified.Issue] = true
			issues = append(issues, NewIssue(r, classified.Issue))
		}
		return nil
	})

	return issues, errs
}

// referencesMatching lists all refs matching a glob.
func (r *Repository) referencesMatching(glob string) ([]*plumbing.Reference, error) {
	iter, err := r.git.References()
	if err != nil {
		return nil, newError(CannotGetReferences, glob, err)
	}
	defer iter.Close()

	var out []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		if refs.Match(glob, ref.Name().String()) {
			out = append(out, ref)
		}
		return nil
	})
	if err != nil {
		return nil, newError(CannotGetReferences, glob, err)
	}
	return out, nil
}

// reference reads a single ref without resolving it further.
func (r *Repository) reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	ref, err := r.git.Reference(name, false)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, err
		}
		return nil, newError(CannotGetReference, name.String(), err)
	}
	return ref, nil
}
