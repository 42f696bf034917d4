package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{name: "no lines", lines: nil, want: ErrEmptyMessage},
		{name: "empty subject", lines: []string{""}, want: ErrEmptySubject},
		{name: "subject only", lines: []string{"Subject"}},
		{name: "subject and body", lines: []string{"Subject", "", "Body"}},
		{name: "missing separator", lines: []string{"Subject", "Body"}, want: ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFormat(tt.lines)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Subject", Subject("Subject\n\nBody\n"))
	assert.Equal(t, "Subject", Subject("Subject"))
	assert.Equal(t, "", Subject(""))
}

func TestReplySubject(t *testing.T) {
	assert.Equal(t, "Re: broken build", ReplySubject("broken build"))

	// Idempotent on already prefixed subjects.
	assert.Equal(t, "Re: broken build", ReplySubject(ReplySubject("broken build")))
}
