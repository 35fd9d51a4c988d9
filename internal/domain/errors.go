package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMonthAlreadyOpen = errors.New("month already open")
	ErrMonthNotOpen     = errors.New("month not open")
	ErrLedgerNotFound   = errors.New("ledger not found")
	ErrTemplateNotFound = errors.New("recurring template not found")
)

// Validation errors. Each one matches ErrInvalidInput with errors.Is.
var (
	ErrNameRequired  = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrNameTooLong   = fmt.Errorf("%w: name exceeds maximum length", ErrInvalidInput)
	ErrInvalidAmount = fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	ErrInvalidLimit  = fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxTemplateNameLength = 255
	MaxDescriptionLength  = 255
)
