package gitdit

import "github.com/gitdit/gitdit/refs"

// remotePriosSection and remotePriosKey locate the remote priority
// list in the repository's git config, e.g.
//
//	[dit]
//	    remote-prios = upstream,origin,*
const (
	remotePriosSection = "dit"
	remotePriosKey     = "remote-prios"
)

// RemotePriorities reads the remote priority list from the repository
// configuration. Without configuration every remote ranks equally
// behind local refs.
func (r *Repository) RemotePriorities() refs.Priorities {
	cfg, err := r.git.Config()
	if err != nil {
		return refs.ParsePriorities("*")
	}

	value := cfg.Raw.Section(remotePriosSection).Option(remotePriosKey)
	if value == "" {
		value = "*"
	}
	return refs.ParsePriorities(value)
}
