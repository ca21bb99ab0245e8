package service

import "errors"

var (
	// ErrUnknownExerciseType is returned for exercise types outside the catalog.
	ErrUnknownExerciseType = errors.New("unknown exercise type")
	// ErrInvalidGoalKind is returned when a goal kind does not exist or does
	// not match the exercise's measurement axes.
	ErrInvalidGoalKind = errors.New("invalid goal kind")
	// ErrInvalidTarget is returned for non-positive goal targets.
	ErrInvalidTarget = errors.New("target value must be positive")
	// ErrGoalNotFound is returned when a goal id does not exist.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrInvalidTransition is returned for status changes other than
	// active->achieved and active->archived.
	ErrInvalidTransition = errors.New("invalid goal status transition")
	// ErrSessionInvalid is returned for malformed session submissions before
	// anything is persisted.
	ErrSessionInvalid = errors.New("invalid exercise session")
)
