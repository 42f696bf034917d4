package gitdit

import (
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitdit/gitdit/message"
	"github.com/gitdit/gitdit/refs"
	"github.com/gitdit/gitdit/trailer"
)

// AuthorField selects a field of the initial message's author for
// matching without a message walk.
type AuthorField int

const (
	AuthorName AuthorField = iota
	AuthorEmail
)

// TrailerAtom constrains the values accumulated for one metadata key.
type TrailerAtom struct {
	Spec    trailer.Spec
	Matcher trailer.Matcher
	Negated bool
}

// AuthorAtom constrains a field of the initial message's author.
type AuthorAtom struct {
	Field   AuthorField
	Matcher trailer.Matcher
	Negated bool
}

// MetadataFilter is a conjunction of atoms evaluated against issues.
// An empty filter passes every issue. Author atoms are evaluated
// first; the message walk only runs when trailer atoms are present.
type MetadataFilter struct {
	priorities refs.Priorities
	authors    []AuthorAtom
	trailers   []TrailerAtom
}

// NewMetadataFilter creates an empty filter. Head selection across
// remotes follows the given priorities.
func NewMetadataFilter(priorities refs.Priorities) *MetadataFilter {
	return &MetadataFilter{priorities: priorities}
}

// WithTrailerAtom adds a trailer constraint.
func (f *MetadataFilter) WithTrailerAtom(atom TrailerAtom) *MetadataFilter {
	f.trailers = append(f.trailers, atom)
	return f
}

// WithAuthorAtom adds an author constraint.
func (f *MetadataFilter) WithAuthorAtom(atom AuthorAtom) *MetadataFilter {
	f.authors = append(f.authors, atom)
	return f
}

// Match evaluates the filter against an issue.
func (f *MetadataFilter) Match(issue *Issue) (bool, error) {
	if len(f.authors) == 0 && len(f.trailers) == 0 {
		return true, nil
	}

	if len(f.authors) > 0 {
		initial, err := issue.InitialMessage()
		if err != nil {
			return false, err
		}
		for _, atom := range f.authors {
			if atom.Matcher.Matches(trailer.StringValue(authorField(initial, atom.Field))) == atom.Negated {
				return false, nil
			}
		}
	}

	if len(f.trailers) == 0 {
		return true, nil
	}

	acc := f.accumulate()
	if err := f.walkTrailers(issue, acc); err != nil {
		return false, err
	}

	for _, atom := range f.trailers {
		if trailer.MatchesAny(atom.Matcher, acc.Values(atom.Spec.Key)) == atom.Negated {
			return false, nil
		}
	}
	return true, nil
}

// accumulate builds the accumulator map from the filter's specs.
func (f *MetadataFilter) accumulate() trailer.MapAccumulator {
	specs := make([]trailer.Spec, 0, len(f.trailers))
	for _, atom := range f.trailers {
		specs = append(specs, atom.Spec)
	}
	return trailer.NewMapAccumulator(specs...)
}

// walkTrailers folds all trailers reachable from the issue's selected
// head into the accumulator.
func (f *MetadataFilter) walkTrailers(issue *Issue, acc trailer.Accumulator) error {
	heads, err := issue.Heads()
	if err != nil {
		return err
	}
	selected := f.priorities.Select(heads)
	if selected == nil {
		return newError(CannotFindIssueHead, issue.String(), nil)
	}

	iter, err := issue.MessagesFrom(selected.Hash())
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(commit *object.Commit) error {
		trailer.ProcessAll(acc, message.Trailers(message.Split(commit.Message)))
		return nil
	})
}

func authorField(commit *object.Commit, field AuthorField) string {
	if field == AuthorEmail {
		return commit.Author.Email
	}
	return commit.Author.Name
}
