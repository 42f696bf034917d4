package gitdit

import (
	"errors"
	"fmt"
)

// Kind classifies the failures surfaced by this library. The core
// never recovers from ref-store or object-store errors internally; they
// are wrapped with a kind and context and handed to the caller.
type Kind int

const (
	// CannotCreateMessage reports a failed commit object write.
	CannotCreateMessage Kind = iota + 1

	// CannotConstructRevwalk reports a revision walk that could not be
	// initialised.
	CannotConstructRevwalk

	// CannotGetCommit reports a failed commit lookup.
	CannotGetCommit

	// CannotGetCommitForRev reports a failed commit lookup for a ref's
	// target.
	CannotGetCommitForRev

	// CannotGetReference reports a failed single-ref read.
	CannotGetReference

	// CannotGetReferences reports a failed ref listing.
	CannotGetReferences

	// CannotSetReference reports a failed ref write.
	CannotSetReference

	// CannotDeleteReference reports a failed ref deletion.
	CannotDeleteReference

	// CannotBuildTree reports a failed empty-tree construction.
	CannotBuildTree

	// CannotFindIssueHead reports that no head ref exists for an issue.
	CannotFindIssueHead

	// NoTreeInitFound reports a first-parent walk that reached a root
	// without finding any issue head.
	NoTreeInitFound

	// OidFormat reports a string that should have been a 40-hex id.
	OidFormat

	// MalFormedHeadReference reports a ref matching the head glob which
	// failed structural decoding.
	MalFormedHeadReference
)

func (k Kind) String() string {
	switch k {
	case CannotCreateMessage:
		return "cannot create message"
	case CannotConstructRevwalk:
		return "cannot construct revision walk"
	case CannotGetCommit:
		return "cannot get commit"
	case CannotGetCommitForRev:
		return "cannot get commit for rev"
	case CannotGetReference:
		return "cannot get reference"
	case CannotGetReferences:
		return "cannot get references"
	case CannotSetReference:
		return "cannot set reference"
	case CannotDeleteReference:
		return "cannot delete reference"
	case CannotBuildTree:
		return "cannot build tree"
	case CannotFindIssueHead:
		return "cannot find issue head"
	case NoTreeInitFound:
		return "no tree init found"
	case OidFormat:
		return "malformed object id"
	case MalFormedHeadReference:
		return "malformed head reference"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is a kind-classified failure with optional context (an id, a
// ref name, a glob) and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, context string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Err: cause}
}

// IsKind reports whether any error in err's chain carries the kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
