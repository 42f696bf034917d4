package gitdit_test

import (
	"io"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIter_ForEach(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	r1 := addReply(t, repo, issue, "Reply 1\n", issue.ID())

	iter, err := issue.Messages()
	require.NoError(t, err)
	defer iter.Close()

	var seen []plumbing.Hash
	err = iter.ForEach(func(commit *object.Commit) error {
		seen = append(seen, commit.Hash)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{r1.Hash, issue.ID()}, seen)
}

func TestMessageIter_ForEachStop(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	r1 := addReply(t, repo, issue, "Reply 1\n", issue.ID())

	iter, err := issue.Messages()
	require.NoError(t, err)
	defer iter.Close()

	var seen []plumbing.Hash
	err = iter.ForEach(func(commit *object.Commit) error {
		seen = append(seen, commit.Hash)
		return storer.ErrStop
	})
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{r1.Hash}, seen)
}

func TestMessageIter_Exhausted(t *testing.T) {
	repo := newTestRepo(t)

	issue := newIssue(t, repo, "Subject\n")
	iter, err := issue.Messages()
	require.NoError(t, err)
	defer iter.Close()

	first, err := iter.Next()
	require.NoError(t, err)
	assert.Equal(t, issue.ID(), first.Hash)

	_, err = iter.Next()
	assert.Equal(t, io.EOF, err)

	_, err = iter.Next()
	assert.Equal(t, io.EOF, err)
}
