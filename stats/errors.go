package stats

import "fmt"

// InvalidArgumentError indicates a caller-supplied parameter outside the
// domain of a statistical routine (e.g. too few samples, unknown method).
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DegenerateError indicates numerically degenerate input data, such as a
// zero-variance predictor, for which the requested statistic is undefined.
type DegenerateError struct {
	Input  string
	Reason string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("degenerate input %s: %s", e.Input, e.Reason)
}
