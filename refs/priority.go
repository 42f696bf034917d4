package refs

import (
	"math"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Priorities is an ordered list of remote names expressing which
// remote's refs to prefer, e.g. parsed from "upstream,origin,*". A
// lower numerical priority wins. Local refs always have priority 0;
// "*" matches any remote not named explicitly.
type Priorities []string

// ParsePriorities parses a comma-separated priority list.
func ParsePriorities(list string) Priorities {
	if list == "" {
		return nil
	}
	return Priorities(strings.Split(list, ","))
}

// RemotePriority returns the priority of a remote name. An exact match
// wins over the "*" wildcard; a remote matched by neither gets the
// lowest possible priority.
func (p Priorities) RemotePriority(remote string) int {
	wildcard := -1
	for i, item := range p {
		if item == remote {
			return i + 1
		}
		if item == "*" && wildcard < 0 {
			wildcard = i + 1
		}
	}
	if wildcard >= 0 {
		return wildcard
	}
	return math.MaxInt
}

// RefPriority returns the priority of a ref name. Refs not under
// refs/remotes/ are local and rank highest.
func (p Priorities) RefPriority(name string) int {
	remote, ok := Remote(name)
	if !ok {
		return 0
	}
	return p.RemotePriority(remote)
}

// Select picks the highest-priority ref. Earlier refs win ties.
func (p Priorities) Select(references []*plumbing.Reference) *plumbing.Reference {
	var best *plumbing.Reference
	bestPrio := math.MaxInt
	for _, ref := range references {
		if prio := p.RefPriority(ref.Name().String()); best == nil || prio < bestPrio {
			best, bestPrio = ref, prio
		}
	}
	return best
}
