package ipc

import (
	"sync"

	"github.com/oss6/pagesim"
)

// FakeChannel is a hand-rolled test double in the style of the teacher's
// mockconnection.go: a test enqueues the requests it wants the coordinator
// to observe with Enqueue, then asserts on the responses the coordinator
// sent via Sent(). It does not implement AwaitResponse's blocking
// semantics realistically — tests that need that use MemChannel directly.
type FakeChannel struct {
	mu      sync.Mutex
	pending []pagesim.Request
	sent    []pagesim.Response
	closed  bool
}

// NewFakeChannel returns an empty FakeChannel.
func NewFakeChannel() *FakeChannel {
	return &FakeChannel{}
}

// Enqueue makes req available to the next ReceiveRequest call.
func (c *FakeChannel) Enqueue(req pagesim.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, req)
}

// SendRequest behaves like Enqueue; it exists so FakeChannel satisfies
// Channel from a worker's point of view too.
func (c *FakeChannel) SendRequest(req pagesim.Request) error {
	c.Enqueue(req)
	return nil
}

// ReceiveRequest pops the oldest enqueued request.
func (c *FakeChannel) ReceiveRequest() (pagesim.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return pagesim.Request{}, ErrNoMessage
	}
	req := c.pending[0]
	c.pending = c.pending[1:]
	return req, nil
}

// SendResponse records resp for later assertions via Sent.
func (c *FakeChannel) SendResponse(resp pagesim.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, resp)
	return nil
}

// AwaitResponse returns the oldest recorded response addressed to pid, or
// ErrNoMessage if none has been sent yet. Non-blocking, unlike the real
// Channel contract; adequate for coordinator-side tests which only need to
// assert what was sent.
func (c *FakeChannel) AwaitResponse(pid int32) (pagesim.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.sent {
		if r.ToPid == pid {
			c.sent = append(c.sent[:i], c.sent[i+1:]...)
			return r, nil
		}
	}
	return pagesim.Response{}, ErrNoMessage
}

// Sent returns every response sent so far, oldest first.
func (c *FakeChannel) Sent() []pagesim.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]pagesim.Response, len(c.sent))
	copy(out, c.sent)
	return out
}

// Close marks the fake closed. Subsequent Sent()/ReceiveRequest() calls
// still work; Close exists only so FakeChannel satisfies Channel.
func (c *FakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
