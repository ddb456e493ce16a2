// Package services defines the business logic for the journal, the tracking
// dashboard, and the meal planner. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrEntryNotFound indicates that the requested journal entry does not
	// exist or is not accessible to the current user.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrEmptyContent is returned when a journal save carries no content
	// after trimming.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when journal content exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("content too long")

	// ErrPlanNotFound indicates that the requested meal plan does not exist
	// or is not accessible to the current user.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrInvalidProfile is returned when a body profile carries a
	// non-positive age, weight, or height.
	ErrInvalidProfile = errors.New("age, weight and height must be positive")

	// ErrInvalidSwap is returned when a meal swap names a day outside the
	// plan or an unknown slot.
	ErrInvalidSwap = errors.New("invalid day or slot for swap")

	// ErrInvalidDate is returned when a tracked log date is not a valid
	// YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrInvalidMetrics is returned when a tracked metric falls outside its
	// accepted range.
	ErrInvalidMetrics = errors.New("metric value out of range")

	// ErrLogNotFound indicates that no daily log exists for the requested
	// date, or it is not accessible to the current user.
	ErrLogNotFound = errors.New("daily log not found")
)
