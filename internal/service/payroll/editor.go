package payroll

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
)

const maxSplitPercentage = 100

// Saver writes a patch to one booking. booking.BookingRepository satisfies it.
type Saver interface {
	Save(ctx context.Context, id string, patch booking.Patch, expectedVersion *int64) (booking.Booking, error)
}

// SplitEditor stages a worker-to-percentage assignment for a single task
// before it is committed. It is not safe for concurrent use.
type SplitEditor struct {
	task   booking.Booking
	splits []booking.PaySplit
}

// NewSplitEditor seeds the working list from the task's pay splits. A task
// that only carries one legacy worker id starts with that worker at 100%.
func NewSplitEditor(task booking.Booking) *SplitEditor {
	e := &SplitEditor{task: task}

	switch {
	case len(task.AssignedWorkersPay) > 0:
		e.splits = append([]booking.PaySplit(nil), task.AssignedWorkersPay...)
	case len(task.AssignedWorkerIDs) == 1:
		e.splits = []booking.PaySplit{{WorkerID: task.AssignedWorkerIDs[0], SplitPercentage: payroll.RequiredSplitTotal}}
	default:
		e.splits = []booking.PaySplit{}
	}
	return e
}

func (e *SplitEditor) Task() booking.Booking {
	return e.task
}

func (e *SplitEditor) indexOf(workerID string) int {
	for i, s := range e.splits {
		if s.WorkerID == workerID {
			return i
		}
	}
	return -1
}

// ToggleWorker removes the worker from the working list, or adds it at 0%.
func (e *SplitEditor) ToggleWorker(workerID string) {
	if i := e.indexOf(workerID); i >= 0 {
		e.splits = append(e.splits[:i], e.splits[i+1:]...)
		return
	}
	e.splits = append(e.splits, booking.PaySplit{WorkerID: workerID, SplitPercentage: 0})
}

// SetSplit sets a selected worker's percentage from raw input. Workers not in
// the working list are ignored.
func (e *SplitEditor) SetSplit(workerID, raw string) {
	i := e.indexOf(workerID)
	if i < 0 {
		return
	}
	e.splits[i].SplitPercentage = ParsePercentage(raw)
}

// Arrange moves the named workers to the front of the working list in the
// given order. Unnamed workers follow in their current order.
func (e *SplitEditor) Arrange(order []string) {
	arranged := make([]booking.PaySplit, 0, len(e.splits))
	for _, id := range order {
		if i := e.indexOf(id); i >= 0 {
			arranged = append(arranged, e.splits[i])
			e.splits = append(e.splits[:i], e.splits[i+1:]...)
		}
	}
	e.splits = append(arranged, e.splits...)
}

// Has reports whether workerID is in the working list.
func (e *SplitEditor) Has(workerID string) bool {
	return e.indexOf(workerID) >= 0
}

// Splits returns a copy of the working list.
func (e *SplitEditor) Splits() []booking.PaySplit {
	return append([]booking.PaySplit{}, e.splits...)
}

// Total is the current percentage sum.
func (e *SplitEditor) Total() int {
	total := 0
	for _, s := range e.splits {
		total += s.SplitPercentage
	}
	return total
}

// Validate allows an empty list (explicit unassignment) or a list summing to
// exactly RequiredSplitTotal.
func (e *SplitEditor) Validate() error {
	if len(e.splits) == 0 {
		return nil
	}
	if total := e.Total(); total != payroll.RequiredSplitTotal {
		return &payroll.SplitTotalError{Total: total}
	}
	return nil
}

// Patch builds the write for the current working list.
func (e *SplitEditor) Patch() (booking.Patch, error) {
	if err := e.Validate(); err != nil {
		return booking.Patch{}, err
	}

	ids := make([]string, 0, len(e.splits))
	for _, s := range e.splits {
		ids = append(ids, s.WorkerID)
	}
	splits := e.Splits()

	return booking.Patch{
		AssignedWorkerIDs:  &ids,
		AssignedWorkersPay: &splits,
	}, nil
}

// Commit validates and writes the assignment. Nothing is written when the
// validation fails. Refreshing the record snapshot afterwards is the
// caller's job.
func (e *SplitEditor) Commit(ctx context.Context, saver Saver, expectedVersion *int64) (booking.Booking, error) {
	patch, err := e.Patch()
	if err != nil {
		return booking.Booking{}, err
	}

	saved, err := saver.Save(ctx, e.task.ID, patch, expectedVersion)
	if err != nil {
		return booking.Booking{}, err
	}
	e.task = saved
	return saved, nil
}

// ParsePercentage reads the leading integer of raw, the way a form field is
// read: "45" and "45.9%" give 45, non-numeric input gives 0. The result is
// clamped to [0, 100].
func ParsePercentage(raw string) int {
	s := strings.TrimSpace(raw)

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// only overflow can fail here
		n = math.MaxInt
	}
	if negative {
		return 0
	}
	return min(n, maxSplitPercentage)
}
