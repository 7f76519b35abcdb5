package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Snapshot is an immutable view of both collections taken by one refresh.
// Callers must not modify the slices.
type Snapshot struct {
	Bookings  []booking.Booking
	Workers   []worker.Worker
	FetchedAt time.Time
	Stale     bool
}

// Fetcher loads booking and worker records and keeps the last good
// snapshot. A failed refresh never clears it.
type Fetcher struct {
	bookingRepo booking.BookingRepository
	workerRepo  worker.WorkerRepository
	metrics     *metrics.Manager
	now         func() time.Time

	// generation orders refreshes by start; only a newer one may publish.
	generation atomic.Uint64

	mu        sync.RWMutex
	last      *Snapshot
	published uint64
}

func NewFetcher(bookingRepo booking.BookingRepository, workerRepo worker.WorkerRepository, m *metrics.Manager) *Fetcher {
	return &Fetcher{
		bookingRepo: bookingRepo,
		workerRepo:  workerRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// Refresh fetches both collections concurrently. On failure it returns the
// previous snapshot marked Stale together with the error; when there is no
// previous snapshot the error wraps payroll.ErrRecordsUnavailable. A refresh
// that finishes after a later-started one returns the later snapshot instead
// of publishing its own.
func (f *Fetcher) Refresh(ctx context.Context) (Snapshot, error) {
	generation := f.generation.Add(1)

	var (
		bookings []booking.Booking
		workers  []worker.Worker
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := f.bookingRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		bookings = list
		return nil
	})

	g.Go(func() error {
		list, err := f.workerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("list workers: %w", err)
		}
		workers = list
		return nil
	})

	if err := g.Wait(); err != nil {
		f.metrics.RecordRefresh(metrics.OutcomeFailed)

		f.mu.RLock()
		last := f.last
		f.mu.RUnlock()

		if last == nil {
			return Snapshot{}, fmt.Errorf("%w: %w", payroll.ErrRecordsUnavailable, err)
		}
		slog.Warn("record refresh failed, keeping previous snapshot",
			"error", err,
			"snapshot_fetched_at", last.FetchedAt,
		)
		stale := *last
		stale.Stale = true
		return stale, err
	}

	sortBookings(bookings)
	sortWorkers(workers)

	snap := Snapshot{
		Bookings:  bookings,
		Workers:   workers,
		FetchedAt: f.now(),
	}

	f.mu.Lock()
	if generation > f.published {
		f.last = &snap
		f.published = generation
	} else {
		snap = *f.last
	}
	f.mu.Unlock()

	f.metrics.RecordRefresh(metrics.OutcomeOK)
	return snap, nil
}

// Last returns the most recent good snapshot, if any.
func (f *Fetcher) Last() (Snapshot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.last == nil {
		return Snapshot{}, false
	}
	return *f.last, true
}

// sortBookings orders by canonical appointment date, newest first. Stores
// sort on the raw field, which can disagree once dates are canonicalized.
func sortBookings(bookings []booking.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].AppointmentDate > bookings[j].AppointmentDate
	})
}

func sortWorkers(workers []worker.Worker) {
	sort.SliceStable(workers, func(i, j int) bool {
		return workers[i].CreatedAt.After(workers[j].CreatedAt)
	})
}
