package memory

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBookingRepository_List_SortedByDateDesc(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(
		booking.Booking{ID: "a", AppointmentDate: "2024-01-01"},
		booking.Booking{ID: "b", AppointmentDate: "2024-03-01"},
		booking.Booking{ID: "c", AppointmentDate: ""},
	)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestBookingRepository_Create_AssignsIDAndVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	created, err := repo.Create(ctx, booking.Booking{
		Status:       booking.StatusScheduled,
		Amount:       decimal.NewFromInt(150),
		CustomerName: "Dana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(0), created.Version)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.CustomerName)
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	_, err := NewBookingRepository().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingRepository_Save_VersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(booking.Booking{ID: "t1", Status: booking.StatusScheduled})

	status := booking.StatusInProgress
	saved, err := repo.Save(ctx, "t1", booking.Patch{Status: &status}, int64Ptr(0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.Equal(t, booking.StatusInProgress, saved.Status)

	// A second writer still holding version 0 loses.
	completed := booking.StatusCompleted
	_, err = repo.Save(ctx, "t1", booking.Patch{Status: &completed}, int64Ptr(0))
	assert.ErrorIs(t, err, booking.ErrVersionConflict)

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusInProgress, got.Status)
}

func TestBookingRepository_Save_WithoutVersionOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(booking.Booking{ID: "t1", Version: 4})

	splits := []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 100}}
	ids := []string{"w1"}
	saved, err := repo.Save(ctx, "t1", booking.Patch{AssignedWorkersPay: &splits, AssignedWorkerIDs: &ids}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.Version)
	assert.Equal(t, splits, saved.AssignedWorkersPay)

	// Mutating the caller's slice must not reach the store.
	splits[0].SplitPercentage = 1
	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.AssignedWorkersPay[0].SplitPercentage)
}

func TestBookingRepository_Save_EmptyListStaysEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(booking.Booking{
		ID:                 "t1",
		AssignedWorkersPay: []booking.PaySplit{{WorkerID: "w1", SplitPercentage: 100}},
	})

	empty := []booking.PaySplit{}
	saved, err := repo.Save(ctx, "t1", booking.Patch{AssignedWorkersPay: &empty}, nil)
	require.NoError(t, err)
	assert.NotNil(t, saved.AssignedWorkersPay)
	assert.Empty(t, saved.AssignedWorkersPay)
}

func TestBookingRepository_Save_NotFound(t *testing.T) {
	status := booking.StatusCompleted
	_, err := NewBookingRepository().Save(context.Background(), "missing", booking.Patch{Status: &status}, nil)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}
