package ipc

import (
	"sync"

	"github.com/oss6/pagesim"
)

// MemChannel is the in-process Channel implementation: requests land in a
// single bounded FIFO (the coordinator's incoming queue, mirroring
// incomingqueue.go's IncomingQueue), and each worker pid gets its own
// buffered response mailbox (mirroring port.go's per-component buffering).
// Delivery is immediate, the way directconnection.go moves a Req straight
// into its destination's Recv with no simulated transmission delay.
//
// MemChannel is the transport used when workers are modeled as goroutines
// in the same process (the default for cmd/oss); NetChannel is used when
// they are modeled as literal separate OS processes.
type MemChannel struct {
	mu        sync.Mutex
	capacity  int
	requests  []pagesim.Request
	closed    bool
	mailboxes map[int32]chan pagesim.Response
}

// NewMemChannel returns a MemChannel whose incoming request queue can hold
// at most capacity requests; once it is full, SendRequest rejects further
// requests until the coordinator drains some.
func NewMemChannel(capacity int) *MemChannel {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemChannel{
		capacity:  capacity,
		requests:  make([]pagesim.Request, 0, capacity),
		mailboxes: make(map[int32]chan pagesim.Response),
	}
}

// SendRequest enqueues req. It never blocks: it returns ErrClosed if the
// channel is closed, and ErrNoMessage without enqueueing req if the queue
// is at capacity. In practice the
// coordinator drains one request per tick, so a well-behaved synthetic
// workload never approaches capacity.
func (c *MemChannel) SendRequest(req pagesim.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if len(c.requests) >= c.capacity {
		return ErrNoMessage
	}
	c.requests = append(c.requests, req)
	return nil
}

// ReceiveRequest pops the oldest pending request, or returns ErrNoMessage.
func (c *MemChannel) ReceiveRequest() (pagesim.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.requests) == 0 {
		return pagesim.Request{}, ErrNoMessage
	}
	req := c.requests[0]
	c.requests = c.requests[1:]
	return req, nil
}

// mailbox returns pid's response mailbox, creating it if necessary. If the
// channel is already closed, the mailbox is created pre-closed so a
// worker that has not yet called AwaitResponse never blocks on a channel
// nobody will ever close for it. It reports whether the channel was
// closed at the time of the call.
func (c *MemChannel) mailbox(pid int32) (chan pagesim.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	box, ok := c.mailboxes[pid]
	if !ok {
		box = make(chan pagesim.Response, 1)
		if c.closed {
			close(box)
		}
		c.mailboxes[pid] = box
	}
	return box, c.closed
}

// SendResponse delivers resp to the mailbox of resp.ToPid.
func (c *MemChannel) SendResponse(resp pagesim.Response) error {
	box, closed := c.mailbox(resp.ToPid)
	if closed {
		return ErrClosed
	}
	box <- resp
	return nil
}

// AwaitResponse blocks the calling worker goroutine until a response for
// pid is available.
func (c *MemChannel) AwaitResponse(pid int32) (pagesim.Response, error) {
	box, _ := c.mailbox(pid)
	resp, ok := <-box
	if !ok {
		return pagesim.Response{}, ErrClosed
	}
	return resp, nil
}

// Close marks the channel closed and unblocks every waiting AwaitResponse
// call, including ones for pids that have not registered a mailbox yet.
// Safe to call more than once.
func (c *MemChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	for _, box := range c.mailboxes {
		close(box)
	}
	return nil
}
