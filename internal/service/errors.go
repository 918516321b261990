package service

import "strings"

// NotFoundMessage is reported when no record has the requested id.
const NotFoundMessage = "Equipment not found"

// ValidationError lists every rule an input violated, in rule order.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid equipment: " + strings.Join(e.Errors, "; ")
}

// NotFoundError reports a lookup of an id that does not exist.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return NotFoundMessage
}
