package worker

import (
	"sync"

	"github.com/oss6/pagesim/ipc"
)

// Pool spawns each admitted Agent as its own goroutine and reports
// terminations back to the coordinator. It implements both
// pagesim.Spawner and pagesim.Reaper, adapted from parallelengine.go's
// WaitGroup-guarded dispatch: where that engine waits for every dispatched
// unit before returning, Pool instead surfaces completions one at a time
// through a buffered channel so the coordinator can reap non-blockingly.
type Pool struct {
	channel ipc.Channel
	factory func(pid int32) Agent

	done chan int32

	mu      sync.Mutex
	running map[int32]bool
}

// NewPool returns a Pool that hands every spawned agent ch, constructing
// each agent with factory.
func NewPool(ch ipc.Channel, factory func(pid int32) Agent) *Pool {
	return &Pool{
		channel: ch,
		factory: factory,
		done:    make(chan int32, 256),
		running: make(map[int32]bool),
	}
}

// Spawn starts a new goroutine running factory(pid).Run against the pool's
// channel, satisfying pagesim.Spawner.
func (p *Pool) Spawn(pid int32) error {
	agent := p.factory(pid)

	p.mu.Lock()
	p.running[pid] = true
	p.mu.Unlock()

	go func() {
		agent.Run(p.channel, pid)
		p.done <- pid
	}()
	return nil
}

// TryReap returns the pid of one terminated agent and true, or (0, false)
// if none has finished yet, satisfying pagesim.Reaper.
func (p *Pool) TryReap() (int32, bool) {
	select {
	case pid := <-p.done:
		p.mu.Lock()
		delete(p.running, pid)
		p.mu.Unlock()
		return pid, true
	default:
		return 0, false
	}
}

// Running returns the number of agents currently believed to be running.
func (p *Pool) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.running)
}
