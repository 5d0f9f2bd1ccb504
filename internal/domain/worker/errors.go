package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrPeriodNotFound = errors.New("employment period not found")
)
