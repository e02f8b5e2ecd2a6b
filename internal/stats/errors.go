package stats

import (
	"errors"
	"fmt"
)

// InputError reports a settings value the service refused to store.
type InputError struct {
	// Code identifies the error category.
	Code InputErrorCode

	// Field names the rejected setting.
	Field string

	// Message is a human-readable description.
	Message string
}

// InputErrorCode categorizes input errors.
type InputErrorCode string

const (
	// ErrCodeInvalidDifficulty indicates an unknown difficulty level.
	ErrCodeInvalidDifficulty InputErrorCode = "INVALID_DIFFICULTY"

	// ErrCodeInvalidGoal indicates a non-positive step goal.
	ErrCodeInvalidGoal InputErrorCode = "INVALID_GOAL"

	// ErrCodeInvalidSteps indicates a negative step count.
	ErrCodeInvalidSteps InputErrorCode = "INVALID_STEPS"

	// ErrCodeUnknownAchievement indicates no catalog entry has the given id
	// or key.
	ErrCodeUnknownAchievement InputErrorCode = "UNKNOWN_ACHIEVEMENT"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// IsInputError reports whether err is an InputError, optionally with one of
// the given codes. Uses errors.As to handle wrapped errors.
func IsInputError(err error, codes ...InputErrorCode) bool {
	var ie *InputError
	if !errors.As(err, &ie) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if ie.Code == c {
			return true
		}
	}
	return false
}
