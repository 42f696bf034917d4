package gitdit_test

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"

	"github.com/gitdit/gitdit"
)

func TestRefspecs(t *testing.T) {
	issue := plumbing.NewHash("ce5c30e933ac2db91e65a4fb951278db14bd1d21")

	spec := gitdit.IssueRefspec("origin", issue)
	assert.Equal(t,
		"+refs/dit/ce5c30e933ac2db91e65a4fb951278db14bd1d21/*:refs/remotes/origin/dit/ce5c30e933ac2db91e65a4fb951278db14bd1d21/*",
		spec.String(),
	)
	assert.NoError(t, spec.Validate())
	assert.True(t, spec.IsForceUpdate())

	all := gitdit.AllIssuesRefspec("origin")
	assert.Equal(t, "+refs/dit/*:refs/remotes/origin/dit/*", all.String())
	assert.NoError(t, all.Validate())
}
