package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"scheduled":   StatusScheduled,
		"Scheduled":   StatusScheduled,
		"in-progress": StatusInProgress,
		"in_progress": StatusInProgress,
		"InProgress":  StatusInProgress,
		"completed":   StatusCompleted,
		" COMPLETED ": StatusCompleted,
		"cancelled":   StatusCancelled,
		"canceled":    StatusCancelled,
		"pending":     StatusUnknown,
		"":            StatusUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseStatus(in), in)
	}
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, StatusScheduled.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.True(t, StatusUnknown.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestReferencedWorkerIDs(t *testing.T) {
	t.Run("split list wins over legacy ids", func(t *testing.T) {
		b := Booking{
			AssignedWorkersPay: []PaySplit{{WorkerID: "w1", SplitPercentage: 50}, {WorkerID: "w2", SplitPercentage: 50}},
			AssignedWorkerIDs:  []string{"w9"},
		}
		assert.Equal(t, []string{"w1", "w2"}, b.ReferencedWorkerIDs())
	})

	t.Run("legacy ids when split list is absent", func(t *testing.T) {
		b := Booking{AssignedWorkerIDs: []string{"w3", "w3", "", "w4"}}
		assert.Equal(t, []string{"w3", "w4"}, b.ReferencedWorkerIDs())
	})

	t.Run("explicit empty split list ignores legacy ids", func(t *testing.T) {
		b := Booking{AssignedWorkersPay: []PaySplit{}, AssignedWorkerIDs: []string{"w3"}}
		assert.Empty(t, b.ReferencedWorkerIDs())
	})

	t.Run("duplicates in split list count once", func(t *testing.T) {
		b := Booking{AssignedWorkersPay: []PaySplit{{WorkerID: "w1"}, {WorkerID: "w1"}}}
		assert.Equal(t, []string{"w1"}, b.ReferencedWorkerIDs())
	})
}
