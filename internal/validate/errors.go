package validate

import "fmt"

// RangeError reports a parameter that is missing, not numeric, or outside
// its allowed interval.
type RangeError struct {
	Field        string
	Value        any
	Min          float64
	Max          float64
	MinExclusive bool
	Reason       string // set when the value could not be read as a number
}

func (e *RangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %v %s", e.Field, e.Value, e.Reason)
	}
	open := "["
	if e.MinExclusive {
		open = "("
	}
	return fmt.Sprintf("%s: %v is outside %s%g, %g]", e.Field, e.Value, open, e.Min, e.Max)
}

// InconsistentSpanError reports a span shorter than the two first-row
// stirrup ranges together.
type InconsistentSpanError struct {
	Span       float64
	RangeLeft  float64
	RangeRight float64
}

func (e *InconsistentSpanError) Error() string {
	return fmt.Sprintf("beam_span: %g is shorter than the first-row ranges %g + %g",
		e.Span, e.RangeLeft, e.RangeRight)
}

// InvalidNameError reports a name that is empty, too long, or contains a
// character that is not allowed in file names.
type InvalidNameError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.Field, e.Value, e.Reason)
}
