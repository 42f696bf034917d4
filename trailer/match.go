package trailer

import "strings"

// Matcher decides whether a single value satisfies a constraint.
type Matcher interface {
	Matches(v Value) bool
}

// MatchAny matches every value.
type MatchAny struct{}

func (MatchAny) Matches(Value) bool { return true }

// MatchEquals matches values equal to a reference value. Integer and
// string values never compare equal, mirroring the classification rule.
type MatchEquals struct {
	Value Value
}

func (m MatchEquals) Matches(v Value) bool { return v == m.Value }

// MatchContains matches values whose textual rendering contains a
// substring.
type MatchContains struct {
	Substring string
}

func (m MatchContains) Matches(v Value) bool {
	return strings.Contains(v.String(), m.Substring)
}

// MatchesAny reports whether any of the values satisfies the matcher.
func MatchesAny(m Matcher, values []Value) bool {
	for _, v := range values {
		if m.Matches(v) {
			return true
		}
	}
	return false
}
