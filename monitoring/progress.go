package monitoring

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// ProgressBar tracks how many of a coordinator's admission quota have been
// admitted and, of those, how many have finished (been reaped).
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// NewProgressBar returns a bar tracking total items, identified by an xid
// so multiple bars from the same run stay distinguishable client-side.
func NewProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// IncrementInProgress records amount more items as admitted-but-unfinished.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()
	b.InProgress += amount
}

// MoveInProgressToFinished records amount items as reaped.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()
	b.InProgress -= amount
	b.Finished += amount
}
