package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrLanguageNotFound = errors.New("language not found")
	ErrProgressNotFound = errors.New("progress record not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrPlanItemNotFound = errors.New("plan item not found")
	ErrInvalidScore     = errors.New("score must be between 1 and 5")
	// ErrCursorViolation marks a broken single-cursor invariant. It is a
	// programming defect, logged loudly, never silently patched.
	ErrCursorViolation = errors.New("more than one current plan item")
)
