package corrplot

import "fmt"

// InvalidArgumentError indicates an unusable option combination, such as
// an unrecognized output mode or an empty dependent-variable list. These
// are deterministic caller errors; retrying cannot help.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
