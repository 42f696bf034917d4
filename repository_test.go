package gitdit_test

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdit/gitdit"
	"github.com/gitdit/gitdit/refs"
	"github.com/gitdit/gitdit/testutil"
)

func TestEmptyTree(t *testing.T) {
	repo := newTestRepo(t)

	tree, err := repo.EmptyTree()
	require.NoError(t, err)
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", tree.String())
}

func TestParseID(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.ParseID("ce5c30e933ac2db91e65a4fb951278db14bd1d21")
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewHash("ce5c30e933ac2db91e65a4fb951278db14bd1d21"), id)

	_, err = repo.ParseID("banana")
	require.Error(t, err)
	assert.True(t, gitdit.IsKind(err, gitdit.OidFormat))
}

func TestFindIssue(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")

	found, err := repo.FindIssue(issue.ID())
	require.NoError(t, err)
	assert.Equal(t, issue.ID(), found.ID())

	_, err = repo.FindIssue(plumbing.NewHash("ce5c30e933ac2db91e65a4fb951278db14bd1d21"))
	require.Error(t, err)
	assert.True(t, gitdit.IsKind(err, gitdit.CannotFindIssueHead))
}

func TestFindIssue_RemoteOnly(t *testing.T) {
	repo := newTestRepo(t)

	// An issue known only through a mirrored head still exists.
	issue := newIssue(t, repo, "Subject\n")
	testutil.SetRef(t, repo.Git(),
		"refs/remotes/origin/dit/"+issue.String()+"/head", issue.ID())
	require.NoError(t, repo.Git().Storer.RemoveReference(refs.NewHeadReferenceName(issue.ID())))

	found, err := repo.FindIssue(issue.ID())
	require.NoError(t, err)
	assert.Equal(t, issue.ID(), found.ID())
}

func TestIssueByHeadRef(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	head, err := issue.LocalHead()
	require.NoError(t, err)

	decoded, err := repo.IssueByHeadRef(head)
	require.NoError(t, err)
	assert.Equal(t, issue.ID(), decoded.ID())

	bogus := plumbing.NewHashReference("refs/dit/banana/head", issue.ID())
	_, err = repo.IssueByHeadRef(bogus)
	require.Error(t, err)
	assert.True(t, gitdit.IsKind(err, gitdit.MalFormedHeadReference))
}

func TestFindTreeInit(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	r1 := addReply(t, repo, issue, "Reply 1\n", issue.ID())
	r2 := addReply(t, repo, issue, "Reply 2\n", r1.Hash)

	found, err := repo.FindTreeInit(r2)
	require.NoError(t, err)
	assert.Equal(t, issue.ID(), found.ID())
}

func TestFindTreeInit_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	// A commit without any issue refs anywhere in its first-parent
	// chain.
	tree, err := repo.EmptyTree()
	require.NoError(t, err)

	sig := testutil.Signature()
	stray := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   "stray commit\n",
		TreeHash:  tree,
	}
	obj := repo.Git().Storer.NewEncodedObject()
	require.NoError(t, stray.Encode(obj))
	hash, err := repo.Git().Storer.SetEncodedObject(obj)
	require.NoError(t, err)

	commit, err := repo.Commit(hash)
	require.NoError(t, err)

	_, err = repo.FindTreeInit(commit)
	require.Error(t, err)
	assert.True(t, gitdit.IsKind(err, gitdit.NoTreeInitFound))
}

func TestIssues(t *testing.T) {
	repo := newTestRepo(t)

	first := newIssue(t, repo, "First\n")
	second := newIssue(t, repo, "Second\n")
	addReply(t, repo, second, "Reply\n", second.ID())

	// An issue whose head refs are all gone is not discoverable through
	// its remaining leaf refs.
	headless := newIssue(t, repo, "Headless\n")
	addReply(t, repo, headless, "Reply\n", headless.ID())
	require.NoError(t, repo.Git().Storer.RemoveReference(refs.NewHeadReferenceName(headless.ID())))

	issues, errs := repo.Issues()
	assert.Empty(t, errs)
	require.Len(t, issues, 2)

	ids := map[plumbing.Hash]bool{}
	for _, issue := range issues {
		ids[issue.ID()] = true
	}
	assert.True(t, ids[first.ID()])
	assert.True(t, ids[second.ID()])
}

func TestIssues_MalformedRef(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	testutil.SetRef(t, repo.Git(), "refs/dit/banana/head", issue.ID())

	issues, errs := repo.Issues()
	require.Len(t, issues, 1)
	require.Len(t, errs, 1)
	assert.True(t, gitdit.IsKind(errs[0], gitdit.MalFormedHeadReference))
}

func TestRemotePriorities_Default(t *testing.T) {
	repo := newTestRepo(t)

	p := repo.RemotePriorities()
	assert.Equal(t, 0, p.RefPriority("refs/dit/ce5c30e933ac2db91e65a4fb951278db14bd1d21/head"))
	assert.Equal(t, 1, p.RemotePriority("origin"))
	assert.Equal(t, 1, p.RemotePriority("upstream"))
}
