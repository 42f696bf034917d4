package gitdit

import (
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// IssueRefspec returns the refspec mirroring a single issue's refs
// from a remote. The leading "+" permits non-fast-forward updates of
// the mirrored refs.
func IssueRefspec(remote string, issue plumbing.Hash) config.RefSpec {
	return config.RefSpec("+refs/dit/" + issue.String() + "/*:refs/remotes/" + remote + "/dit/" + issue.String() + "/*")
}

// AllIssuesRefspec returns the refspec mirroring every issue's refs
// from a remote.
func AllIssuesRefspec(remote string) config.RefSpec {
	return config.RefSpec("+refs/dit/*:refs/remotes/" + remote + "/dit/*")
}
