package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. External documents carry an open string; ParseStatus maps it
// onto this closed set.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusUnknown    Status = "unknown"
)

// ParseStatus maps a stored status string onto Status. Unrecognized values
// become StatusUnknown.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled
	case "in-progress", "in_progress", "inprogress", "in progress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// IsActive reports whether a booking with this status still counts as an
// uncompleted task.
func (s Status) IsActive() bool {
	return s != StatusCompleted && s != StatusCancelled
}

// PaySplit - share of a task's worker allocation given to one worker
type PaySplit struct {
	WorkerID        string
	SplitPercentage int
}

// Booking - appointment record owned by the external store
type Booking struct {
	ID              string
	Status          Status
	Amount          decimal.Decimal
	AppointmentDate string // YYYY-MM-DD, empty when the stored value was unparseable
	AppointmentTime string // HH:MM

	CustomerName string
	Email        string
	Phone        string
	ServiceType  string
	Address      string
	Notes        *string

	// AssignedWorkersPay is nil when the field is absent from the stored
	// document; an explicit unassignment stores an empty list.
	AssignedWorkersPay []PaySplit
	// AssignedWorkerIDs is the legacy single-list assignment field.
	AssignedWorkerIDs []string

	Version   int64
	CreatedAt time.Time
}

// ReferencedWorkerIDs returns the de-duplicated worker ids on this booking,
// preferring the pay-split list and falling back to AssignedWorkerIDs when
// the pay-split list is absent.
func (b Booking) ReferencedWorkerIDs() []string {
	var source []string
	if b.AssignedWorkersPay != nil {
		source = make([]string, 0, len(b.AssignedWorkersPay))
		for _, split := range b.AssignedWorkersPay {
			source = append(source, split.WorkerID)
		}
	} else {
		source = b.AssignedWorkerIDs
	}

	seen := make(map[string]struct{}, len(source))
	ids := make([]string, 0, len(source))
	for _, id := range source {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
