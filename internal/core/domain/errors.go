package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// use errors.Is without caring about the details.
var (
	ErrInvalidCriteria = errors.New("invalid criteria")
	ErrDuplicateID     = errors.New("duplicate campaign id")
	ErrRecordNotFound  = errors.New("campaign record not found")
)

// InvalidCriteriaError is returned when a criteria field holds a value that
// is not recognized or violates a constraint.
type InvalidCriteriaError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidCriteriaError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidCriteriaError) Unwrap() error {
	return ErrInvalidCriteria
}

// DuplicateIDError is returned when a record with the same ID already exists
// in the store.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("campaign id %q already exists", e.ID)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
