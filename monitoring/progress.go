package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how far a long-running simulation task has advanced.
// It is safe for concurrent use, as simulation routines update it while the
// monitor serves it.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// AddInProgress marks more items as started but not yet finished.
func (b *ProgressBar) AddInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// AddFinished marks more items as finished.
func (b *ProgressBar) AddFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// FinishInProgress moves items from the in-progress count to the finished
// count.
func (b *ProgressBar) FinishInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// Ratio returns the finished fraction, in the range [0, 1]. A bar with an
// unknown total reports 0.
func (b *ProgressBar) Ratio() float64 {
	b.Lock()
	defer b.Unlock()

	if b.Total == 0 {
		return 0
	}

	return float64(b.Finished) / float64(b.Total)
}
