// Package watchdog enforces the real (wall-clock) time budget of spec.md
// §6, translating oss.cpp's SIGALRM handler — which walks the process
// table killing every occupied pid once its 3-second alarm fires — into
// idiomatic Go: a time.AfterFunc that closes the run's ipc.Channel exactly
// once, which in turn unblocks every worker goroutine's blocking
// AwaitResponse call with ipc.ErrClosed so each Agent.Run loop returns on
// its own.
package watchdog

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tebeka/atexit"
)

// Killer is satisfied by ipc.Channel: closing it cooperatively terminates
// every worker still blocked on it.
type Killer interface {
	Close() error
}

// Watchdog fires its Killer's Close exactly once, either when its deadline
// elapses or when Trip is called first. Stop cancels the deadline without
// closing the Killer.
type Watchdog struct {
	timer  *time.Timer
	once   sync.Once
	killer Killer
	logger *log.Logger
	fired  atomic.Bool
}

// New starts a Watchdog with the given deadline. It also registers itself
// with tebeka/atexit so a process that exits early (a fatal Fault
// elsewhere) still releases the killer's resources exactly once.
func New(deadline time.Duration, killer Killer, logger *log.Logger) *Watchdog {
	if logger == nil {
		logger = log.Default()
	}

	w := &Watchdog{killer: killer, logger: logger}
	w.timer = time.AfterFunc(deadline, w.fire)

	atexit.Register(func() {
		w.Stop()
		w.once.Do(func() {
			if err := w.killer.Close(); err != nil {
				w.logger.Printf("watchdog: close at exit: %v", err)
			}
		})
	})

	return w
}

func (w *Watchdog) fire() {
	w.once.Do(func() {
		w.fired.Store(true)
		w.logger.Printf("watchdog: deadline exceeded, terminating outstanding workers")
		if err := w.killer.Close(); err != nil {
			w.logger.Printf("watchdog: close on expiry: %v", err)
		}
	})
}

// Fired reports whether the deadline has expired (via natural expiry or
// Trip). A coordinator loop that observes Fired after Run returns must
// treat the run as failed per spec.md §4.7, since a normal Done() also
// becomes true once every watchdog-killed worker has been reaped.
func (w *Watchdog) Fired() bool {
	return w.fired.Load()
}

// Stop cancels the pending timer if it has not yet fired, returning true
// if the cancellation was in time. It does not itself close the killer;
// a caller that finished normally should close its own channel.
func (w *Watchdog) Stop() bool {
	return w.timer.Stop()
}

// Trip forces immediate expiry, for tests and for a coordinator that wants
// to fail fast on a fatal Fault rather than wait out the deadline.
func (w *Watchdog) Trip() {
	w.fire()
}
