package domain

import (
	"errors"
	"fmt"
)

// Data inconsistencies found while evaluating a single schedule. The search
// skips the schedule and keeps going.
var (
	ErrStopMissing     = errors.New("pickup or dropoff stop missing for route")
	ErrInvalidStopTime = errors.New("stop time is not HH:mm")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsDataInconsistency reports whether err only disqualifies one schedule.
func IsDataInconsistency(err error) bool {
	return errors.Is(err, ErrStopMissing) || errors.Is(err, ErrInvalidStopTime)
}
