// Package parsing turns free-form model output into interview data. Every parser
// is total: malformed input yields a Fallback result instead of an error.
package parsing

// Outcome reports how a Result was produced.
type Outcome int

const (
	// Parsed means the output matched the expected shape.
	Parsed Outcome = iota
	// Fallback means a best-effort or default value was substituted.
	Fallback
)

func (o Outcome) String() string {
	if o == Parsed {
		return "parsed"
	}
	return "fallback"
}

// Result is the value produced by a parser together with its outcome.
// Reason is set for Fallback results.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Reason  error
}

// OK reports whether the value was parsed as expected.
func (r Result[T]) OK() bool {
	return r.Outcome == Parsed
}

func parsed[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: Parsed}
}

func fallback[T any](v T, msg string, cause error) Result[T] {
	return Result[T]{Value: v, Outcome: Fallback, Reason: &ParseError{Message: msg, Cause: cause}}
}
