package payroll

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	calls   int
	id      string
	patch   booking.Patch
	version *int64
	err     error
}

func (s *recordingSaver) Save(_ context.Context, id string, patch booking.Patch, expectedVersion *int64) (booking.Booking, error) {
	s.calls++
	s.id = id
	s.patch = patch
	s.version = expectedVersion
	if s.err != nil {
		return booking.Booking{}, s.err
	}
	return booking.Booking{
		ID:                 id,
		AssignedWorkerIDs:  *patch.AssignedWorkerIDs,
		AssignedWorkersPay: *patch.AssignedWorkersPay,
		Version:            1,
	}, nil
}

func TestNewSplitEditor_Seeding(t *testing.T) {
	t.Run("pay splits", func(t *testing.T) {
		e := NewSplitEditor(booking.Booking{
			AssignedWorkersPay: []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 70}, {WorkerID: "w2", SplitPercentage: 30}},
			AssignedWorkerIDs:  []string{"w1", "w2"},
		})
		assert.Equal(t, 100, e.Total())
		assert.Len(t, e.Splits(), 2)
	})

	t.Run("single legacy id", func(t *testing.T) {
		e := NewSplitEditor(booking.Booking{AssignedWorkerIDs: []string{"w9"}})
		assert.Equal(t, []booking.PaySplit{{WorkerID: "w9", SplitPercentage: 100}}, e.Splits())
	})

	t.Run("several legacy ids start empty", func(t *testing.T) {
		e := NewSplitEditor(booking.Booking{AssignedWorkerIDs: []string{"w1", "w2"}})
		assert.Empty(t, e.Splits())
	})

	t.Run("nothing assigned", func(t *testing.T) {
		e := NewSplitEditor(booking.Booking{})
		assert.Empty(t, e.Splits())
		assert.NoError(t, e.Validate())
	})
}

func TestSplitEditor_ToggleAndSet(t *testing.T) {
	e := NewSplitEditor(booking.Booking{ID: "t1"})

	e.ToggleWorker("w1")
	assert.True(t, e.Has("w1"))
	assert.Equal(t, 0, e.Total())

	e.SetSplit("w1", "55")
	e.SetSplit("w2", "45") // not selected, ignored
	assert.False(t, e.Has("w2"))
	assert.Equal(t, 55, e.Total())

	e.ToggleWorker("w2")
	e.SetSplit("w2", "45")
	assert.Equal(t, 100, e.Total())
	assert.NoError(t, e.Validate())

	e.ToggleWorker("w1")
	assert.False(t, e.Has("w1"))
	assert.Equal(t, 45, e.Total())
}

func TestSplitEditor_Arrange(t *testing.T) {
	e := NewSplitEditor(booking.Booking{AssignedWorkersPay: []booking.PaySplit{
		{WorkerID: "w1", SplitPercentage: 50},
		{WorkerID: "w2", SplitPercentage: 30},
		{WorkerID: "w3", SplitPercentage: 20},
	}})

	e.Arrange([]string{"w3", "ghost", "w1", "w3"})

	assert.Equal(t, []booking.PaySplit{
		{WorkerID: "w3", SplitPercentage: 20},
		{WorkerID: "w1", SplitPercentage: 50},
		{WorkerID: "w2", SplitPercentage: 30},
	}, e.Splits())
}

func TestSplitEditor_SplitsReturnsCopy(t *testing.T) {
	e := NewSplitEditor(booking.Booking{AssignedWorkersPay: []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 100}}})

	splits := e.Splits()
	splits[0].SplitPercentage = 5

	assert.Equal(t, 100, e.Total())
}

func TestSplitEditor_CommitRejectsWrongTotal(t *testing.T) {
	for _, total := range []int{99, 101} {
		e := NewSplitEditor(booking.Booking{ID: "t1"})
		e.ToggleWorker("w1")
		e.ToggleWorker("w2")
		e.SetSplit("w1", "50")
		e.SetSplit("w2", strconv.Itoa(total-50))

		saver := &recordingSaver{}
		_, err := e.Commit(context.Background(), saver, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, payroll.ErrInvalidSplitTotal)
		var totalErr *payroll.SplitTotalError
		require.True(t, errors.As(err, &totalErr))
		assert.Equal(t, total, totalErr.Total)
		assert.Zero(t, saver.calls, "no write for total %d", total)
	}
}

func TestSplitEditor_CommitExactHundred(t *testing.T) {
	e := NewSplitEditor(booking.Booking{ID: "t1"})
	e.ToggleWorker("w1")
	e.ToggleWorker("w2")
	e.SetSplit("w1", "60")
	e.SetSplit("w2", "40")

	version := int64(3)
	saver := &recordingSaver{}
	saved, err := e.Commit(context.Background(), saver, &version)

	require.NoError(t, err)
	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "t1", saver.id)
	assert.Equal(t, &version, saver.version)
	assert.Equal(t, []string{"w1", "w2"}, *saver.patch.AssignedWorkerIDs)
	assert.Equal(t, []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 60}, {WorkerID: "w2", SplitPercentage: 40}}, *saver.patch.AssignedWorkersPay)
	assert.Nil(t, saver.patch.Status)
	assert.Equal(t, int64(1), saved.Version)
	assert.Equal(t, saved, e.Task())
}

func TestSplitEditor_CommitEmptyClearsBothFields(t *testing.T) {
	e := NewSplitEditor(booking.Booking{
		ID:                 "t1",
		AssignedWorkersPay: []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 30}},
		AssignedWorkerIDs:  []string{"w1"},
	})
	require.Error(t, e.Validate())

	e.ToggleWorker("w1")

	saver := &recordingSaver{}
	_, err := e.Commit(context.Background(), saver, nil)

	require.NoError(t, err)
	require.NotNil(t, saver.patch.AssignedWorkerIDs)
	require.NotNil(t, saver.patch.AssignedWorkersPay)
	assert.Empty(t, *saver.patch.AssignedWorkerIDs)
	assert.Empty(t, *saver.patch.AssignedWorkersPay)
}

func TestSplitEditor_CommitPropagatesSaveError(t *testing.T) {
	e := NewSplitEditor(booking.Booking{ID: "t1", AssignedWorkerIDs: []string{"w1"}})

	saver := &recordingSaver{err: booking.ErrVersionConflict}
	_, err := e.Commit(context.Background(), saver, nil)

	assert.ErrorIs(t, err, booking.ErrVersionConflict)
	assert.Equal(t, "t1", e.Task().ID)
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"0", 0},
		{"45", 45},
		{" 45 ", 45},
		{"45.9", 45},
		{"45%", 45},
		{"+20", 20},
		{"100", 100},
		{"150", 100},
		{"99999999999999999999999", 100},
		{"-5", 0},
		{"", 0},
		{"abc", 0},
		{"-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePercentage(tt.raw))
		})
	}
}
