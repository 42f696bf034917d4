package trailer

// Spec names a piece of metadata and the policy used to accumulate it
// across a message chain.
type Spec struct {
	Key          string
	Accumulation Policy
}

// Well-known metadata carried by dit trailers.
var (
	// TypeSpec describes the issue's type ("bug", "feature", ...).
	TypeSpec = Spec{Key: "Dit-type", Accumulation: Latest}

	// StatusSpec describes the issue's status; closure is expressed by
	// a "Dit-status: closed" trailer on a new message, never by ref
	// deletion.
	StatusSpec = Spec{Key: "Dit-status", Accumulation: Latest}
)

// SingleAccumulator creates an accumulator for this spec alone.
func (s Spec) SingleAccumulator() *SingleAccumulator {
	return NewSingleAccumulator(s.Key, s.Accumulation)
}

// NewMapAccumulator builds a map accumulator covering the given specs.
func NewMapAccumulator(specs ...Spec) MapAccumulator {
	m := make(MapAccumulator, len(specs))
	for _, s := range specs {
		m[s.Key] = NewValueAccumulator(s.Accumulation)
	}
	return m
}
