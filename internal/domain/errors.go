package domain

import "errors"

// Every failure of a single operation is recoverable; none is fatal to the
// process and none leaves a partial write behind.
var (
	ErrValidation      = errors.New("invalid input")
	ErrStageOutOfOrder = errors.New("stage out of order")
	ErrAlreadyDecided  = errors.New("already decided")
	ErrDuplicateRollNo = errors.New("roll number already registered")
	ErrNotFound        = errors.New("record not found")
)
