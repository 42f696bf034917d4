// Package refs implements the dit ref namespace: classification of ref
// names, construction of canonical names and globs, and remote
// priorities.
//
// The namespace layout is wire-visible and bit-exact:
//
//	refs/dit/<40-hex-id>/head
//	refs/dit/<40-hex-id>/leaves/<40-hex-id>
//	refs/remotes/<remote>/dit/<40-hex-id>/head
//	refs/remotes/<remote>/dit/<40-hex-id>/leaves/<40-hex-id>
package refs

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

const (
	ditSegment    = "dit"
	headSegment   = "head"
	leavesSegment = "leaves"
)

// Kind distinguishes the kinds of refs below an issue's namespace. Any
// is only meaningful as a selector when building globs.
type Kind int

const (
	Any Kind = iota
	Head
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Head:
		return "head"
	case Leaf:
		return "leaf"
	default:
		return "any"
	}
}

// Classified is the decoded form of a dit ref name.
type Classified struct {
	// Issue is the issue id, i.e. the id of the initial message.
	Issue plumbing.Hash

	// Kind is Head or Leaf.
	Kind Kind

	// Message is the pinned message id; set only for leaf refs.
	Message plumbing.Hash
}

// Classify decodes a ref name. It reports false for names outside the
// dit namespace or names whose shape does not match the layout.
func Classify(name string) (Classified, bool) {
	parts := strings.Split(name, "/")
	n := len(parts)

	var c Classified
	var rest []string

	switch {
	case n >= 3 && parts[n-1] == headSegment:
		issue, ok := ParseHash(parts[n-2])
		if !ok {
			return Classified{}, false
		}
		c = Classified{Issue: issue, Kind: Head}
		rest = parts[:n-2]
	case n >= 4:
		message, ok := ParseHash(parts[n-1])
		if !ok || parts[n-2] != leavesSegment {
			return Classified{}, false
		}
		issue, ok := ParseHash(parts[n-3])
		if !ok {
			return Classified{}, false
		}
		c = Classified{Issue: issue, Kind: Leaf, Message: message}
		rest = parts[:n-3]
	default:
		return Classified{}, false
	}

	for _, segment := range rest {
		if segment == ditSegment {
			return c, true
		}
	}
	return Classified{}, false
}

// ParseHash parses a 40-character lowercase hex commit id.
func ParseHash(s string) (plumbing.Hash, bool) {
	if len(s) != 40 {
		return plumbing.ZeroHash, false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.NewHash(s), true
}

// NewHeadReferenceName returns the local head ref name for an issue.
func NewHeadReferenceName(issue plumbing.Hash) plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/dit/" + issue.String() + "/" + headSegment)
}

// NewLeafReferenceName returns the local leaf ref name pinning a
// message of an issue.
func NewLeafReferenceName(issue, message plumbing.Hash) plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/dit/" + issue.String() + "/" + leavesSegment + "/" + message.String())
}

func kindGlob(kind Kind) string {
	switch kind {
	case Head:
		return headSegment
	case Leaf:
		return leavesSegment + "/*"
	default:
		return "**"
	}
}

// Glob returns the glob matching an issue's local refs of a kind.
func Glob(issue plumbing.Hash, kind Kind) string {
	return "refs/dit/" + issue.String() + "/" + kindGlob(kind)
}

// RemoteGlob returns the glob matching an issue's refs on any remote.
func RemoteGlob(issue plumbing.Hash, kind Kind) string {
	return "refs/remotes/*/dit/" + issue.String() + "/" + kindGlob(kind)
}

// AllGlob returns the glob matching an issue's refs in both the local
// and the remote namespaces.
func AllGlob(issue plumbing.Hash, kind Kind) string {
	return "**/dit/" + issue.String() + "/" + kindGlob(kind)
}

// Match reports whether a ref name matches a glob. "*" matches exactly
// one path segment, "**" any number of segments including none.
func Match(glob, name string) bool {
	return matchSegments(strings.Split(glob, "/"), strings.Split(name, "/"))
}

func matchSegments(glob, name []string) bool {
	if len(glob) == 0 {
		return len(name) == 0
	}
	if glob[0] == "**" {
		for i := 0; i <= len(name); i++ {
			if matchSegments(glob[1:], name[i:]) {
				return true
			}
		}
		return false
	}
	if len(name) == 0 {
		return false
	}
	if glob[0] == "*" || glob[0] == name[0] {
		return matchSegments(glob[1:], name[1:])
	}
	return false
}

// Remote extracts the remote name from a remote tracking ref. It
// reports false for refs outside refs/remotes/.
func Remote(name string) (string, bool) {
	parts := strings.SplitN(name, "/", 4)
	if len(parts) < 3 || parts[0] != "refs" || parts[1] != "remotes" {
		return "", false
	}
	return parts[2], true
}
