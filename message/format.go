package message

import (
	"errors"
	"strings"
)

// Format check failures.
var (
	// ErrEmptyMessage reports a message without any lines.
	ErrEmptyMessage = errors.New("empty message")

	// ErrEmptySubject reports a message whose first line is empty.
	ErrEmptySubject = errors.New("empty subject line")

	// ErrMalformedMessage reports a message whose subject line is not
	// followed by an empty line.
	ErrMalformedMessage = errors.New("subject line not followed by an empty line")
)

// replyPrefix marks subjects of reply messages.
const replyPrefix = "Re: "

// CheckFormat verifies that a message has a non-empty subject line and,
// if more lines follow, an empty second line. The lines should already
// be stripped of comments and trailing whitespace.
func CheckFormat(lines []string) error {
	if len(lines) == 0 {
		return ErrEmptyMessage
	}
	if lines[0] == "" {
		return ErrEmptySubject
	}
	if len(lines) > 1 && lines[1] != "" {
		return ErrMalformedMessage
	}
	return nil
}

// Subject returns the subject line of a message text.
func Subject(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// ReplySubject derives the subject for a reply. Applying it to a
// subject that already carries the reply prefix is a no-op.
func ReplySubject(subject string) string {
	if strings.HasPrefix(subject, replyPrefix) {
		return subject
	}
	return replyPrefix + subject
}
