package models

import (
	"errors"
)

var (
	// ErrValidation is the only error class surfaced to callers of the pipeline.
	ErrValidation = errors.New("validation error")

	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrContractViolation   = errors.New("upstream contract violation")
	ErrItemFailure         = errors.New("batch item failure")
)
