package vacation

import "errors"

var (
	ErrVacationNotFound = errors.New("vacation not found")
	ErrVacationOverlap  = errors.New("worker already has a vacation in this range")
)
