package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSplitTotal  = errors.New("split percentages must total 100")
	ErrRecordsUnavailable = errors.New("booking and worker records are unavailable")
)

// SplitTotalError reports the actual percentage sum of a rejected assignment.
type SplitTotalError struct {
	Total int
}

func (e *SplitTotalError) Error() string {
	return fmt.Sprintf("split percentages must total %d, got %d", RequiredSplitTotal, e.Total)
}

func (e *SplitTotalError) Unwrap() error {
	return ErrInvalidSplitTotal
}
