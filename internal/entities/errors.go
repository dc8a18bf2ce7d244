package entities

import "fmt"

// UnknownTypeError is returned when a type tag is neither "Student" nor "Teacher"
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown person type: %q", e.Type)
}
