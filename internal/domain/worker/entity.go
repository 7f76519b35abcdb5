package worker

import "time"

// Worker - staff member eligible for task assignment and pay.
// Workers are never deleted; stale references degrade to UnknownWorkerLabel.
type Worker struct {
	ID            string
	Name          string
	ContactNumber *string
	CreatedAt     time.Time
}

// UnknownWorkerLabel is shown for worker ids that no longer resolve.
const UnknownWorkerLabel = "Unknown Worker"

// Label returns the display name for id within workers.
func Label(workers []Worker, id string) string {
	for _, w := range workers {
		if w.ID == id {
			return w.Name
		}
	}
	return UnknownWorkerLabel
}
