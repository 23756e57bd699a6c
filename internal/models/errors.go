package models

import (
	"errors"
)

var (
	ErrValidation = errors.New("validation error")

	// ErrFeatureDisabled is returned when an optional feature is not configured.
	ErrFeatureDisabled = errors.New("feature disabled")
)
