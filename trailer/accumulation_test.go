package trailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccumulator_Latest(t *testing.T) {
	acc := NewValueAccumulator(Latest)
	acc.Process(NewValue("foo-bar"))
	acc.Process(NewValue("baz"))

	values := acc.Values()
	require.Len(t, values, 1)
	assert.Equal(t, "foo-bar", values[0].String())
}

func TestValueAccumulator_List(t *testing.T) {
	acc := NewValueAccumulator(List)
	acc.Process(NewValue("foo-bar"))
	acc.Process(NewValue("baz"))

	values := acc.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "foo-bar", values[0].String())
	assert.Equal(t, "baz", values[1].String())
}

func TestMapAccumulator(t *testing.T) {
	acc := MapAccumulator{
		"Assignee": NewValueAccumulator(Latest),
		"Foo-bar":  NewValueAccumulator(List),
	}

	ProcessAll(acc, []Trailer{
		New("Foo-bar", "baz"),
		New("Assignee", "Foo Bar <foo.bar@example.com>"),
		New("Status", "Red alert"),
		New("Foo-bar", "bam"),
		New("Assignee", "Mee Seeks <meeseeks@rm.com>"),
	})

	assignee := acc.Values("Assignee")
	require.Len(t, assignee, 1)
	assert.Equal(t, "Foo Bar <foo.bar@example.com>", assignee[0].String())

	foobar := acc.Values("Foo-bar")
	require.Len(t, foobar, 2)
	assert.Equal(t, "baz", foobar[0].String())
	assert.Equal(t, "bam", foobar[1].String())

	// Unknown keys are dropped, not accumulated.
	assert.Nil(t, acc.Values("Status"))
}

func TestSingleAccumulator(t *testing.T) {
	trailers := []Trailer{
		New("Foo-bar", "baz"),
		New("Assignee", "Foo Bar <foo.bar@example.com>"),
		New("Foo-bar", "bam"),
		New("Assignee", "Mee Seeks <meeseeks@rm.com>"),
	}

	latest := NewSingleAccumulator("Foo-bar", Latest)
	ProcessAll(latest, trailers)
	values := latest.Values()
	require.Len(t, values, 1)
	assert.Equal(t, "baz", values[0].String())

	list := NewSingleAccumulator("Foo-bar", List)
	ProcessAll(list, trailers)
	values = list.Values()
	require.Len(t, values, 2)
	assert.Equal(t, "baz", values[0].String())
	assert.Equal(t, "bam", values[1].String())
}

func TestSpecAccumulators(t *testing.T) {
	acc := NewMapAccumulator(TypeSpec, StatusSpec)
	ProcessAll(acc, []Trailer{
		New("Dit-status", "closed"),
		New("Dit-type", "bug"),
		New("Dit-status", "open"),
	})

	status := acc.Values(StatusSpec.Key)
	require.Len(t, status, 1)
	assert.Equal(t, "closed", status[0].String())

	typ := acc.Values(TypeSpec.Key)
	require.Len(t, typ, 1)
	assert.Equal(t, "bug", typ[0].String())
}

func TestMatchers(t *testing.T) {
	values := []Value{NewValue("open"), NewValue("42")}

	assert.True(t, MatchesAny(MatchAny{}, values))
	assert.True(t, MatchesAny(MatchEquals{Value: NewValue("open")}, values))
	assert.True(t, MatchesAny(MatchEquals{Value: IntValue(42)}, values))
	assert.False(t, MatchesAny(MatchEquals{Value: NewValue("closed")}, values))
	assert.True(t, MatchesAny(MatchContains{Substring: "pe"}, values))
	assert.False(t, MatchesAny(MatchContains{Substring: "zz"}, values))

	// The textual "42" classified as an integer, so string equality
	// against a string value must not hold.
	assert.False(t, MatchesAny(MatchEquals{Value: StringValue("42")}, values))

	assert.False(t, MatchesAny(MatchAny{}, nil))
}
