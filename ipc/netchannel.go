package ipc

import (
	"encoding/gob"
	"errors"
	"net"
	"os"
	"sync"

	"github.com/oss6/pagesim"
)

// wireFrame is the on-the-wire envelope for both flows a Channel carries.
// Exactly one of Req or Resp is set, mirroring the message-type convention
// of spec.md §6 (type=1 for requests, type=pid for responses) without
// needing a literal System V message queue.
type wireFrame struct {
	Req  *pagesim.Request
	Resp *pagesim.Response
}

// NetChannel is a Channel carried over a Unix domain socket, for the case
// where workers are run as genuinely separate OS processes (cmd/worker)
// rather than goroutines sharing a MemChannel. It generalizes the
// commented-out FixedLatencyConnection sketch of the teacher into a
// transport with real (not simulated) delivery latency.
//
// One NetChannel is the server (bound with Listen, used by cmd/oss); each
// worker process constructs its own client NetChannel with Dial.
type NetChannel struct {
	mu      sync.Mutex
	closed  bool
	inbox   chan pagesim.Request
	inboxMu sync.Mutex

	// server-side state: one encoder per connected worker pid. conns holds
	// every accepted connection (server side) or the dialed one (client
	// side).
	peers map[int32]*gob.Encoder
	conns []net.Conn

	// client-side state.
	enc *gob.Encoder
	dec *gob.Decoder

	respMu   sync.Mutex
	respBox  map[int32]chan pagesim.Response
	listener net.Listener
	sockPath string
}

// Listen starts a NetChannel bound to a Unix domain socket at path, ready
// to accept worker connections. The coordinator calls ReceiveRequest and
// SendResponse on the returned channel.
func Listen(path string) (*NetChannel, error) {
	_ = os.Remove(path)

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, &pagesim.Fault{Kind: pagesim.ErrResource, Message: err.Error()}
	}

	c := &NetChannel{
		inbox:    make(chan pagesim.Request, 4096),
		peers:    make(map[int32]*gob.Encoder),
		listener: l,
		sockPath: path,
	}

	go c.acceptLoop()
	return c, nil
}

func (c *NetChannel) acceptLoop() {
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			return
		}
		c.mu.Lock()
		c.conns = append(c.conns, conn)
		c.mu.Unlock()
		go c.serveConn(conn)
	}
}

func (c *NetChannel) serveConn(conn net.Conn) {
	dec := gob.NewDecoder(conn)
	enc := gob.NewEncoder(conn)

	for {
		var frame wireFrame
		if err := dec.Decode(&frame); err != nil {
			return
		}
		if frame.Req == nil {
			continue
		}

		c.mu.Lock()
		c.peers[frame.Req.Pid] = enc
		c.mu.Unlock()

		select {
		case c.inbox <- *frame.Req:
		default:
		}
	}
}

// Dial connects a worker process to a coordinator's NetChannel listening at
// path.
func Dial(path string) (*NetChannel, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, &pagesim.Fault{Kind: pagesim.ErrResource, Message: err.Error()}
	}

	c := &NetChannel{
		conns:   []net.Conn{conn},
		enc:     gob.NewEncoder(conn),
		dec:     gob.NewDecoder(conn),
		respBox: make(map[int32]chan pagesim.Response),
	}
	go c.clientReadLoop()
	return c, nil
}

func (c *NetChannel) clientReadLoop() {
	for {
		var frame wireFrame
		if err := c.dec.Decode(&frame); err != nil {
			return
		}
		if frame.Resp == nil {
			continue
		}

		c.respMu.Lock()
		box, ok := c.respBox[frame.Resp.ToPid]
		if !ok {
			box = make(chan pagesim.Response, 1)
			c.respBox[frame.Resp.ToPid] = box
		}
		c.respMu.Unlock()

		box <- *frame.Resp
	}
}

// SendRequest is called by a worker process to submit a memory reference.
func (c *NetChannel) SendRequest(req pagesim.Request) error {
	if c.enc == nil {
		return errors.New("ipc: SendRequest called on a server-side NetChannel")
	}
	return c.enc.Encode(wireFrame{Req: &req})
}

// ReceiveRequest is called by the coordinator once per loop iteration.
func (c *NetChannel) ReceiveRequest() (pagesim.Request, error) {
	select {
	case req := <-c.inbox:
		return req, nil
	default:
		return pagesim.Request{}, ErrNoMessage
	}
}

// SendResponse is called by the coordinator to reply to resp.ToPid.
func (c *NetChannel) SendResponse(resp pagesim.Response) error {
	c.mu.Lock()
	enc, ok := c.peers[resp.ToPid]
	c.mu.Unlock()
	if !ok {
		return errors.New("ipc: no known peer for pid")
	}
	return enc.Encode(wireFrame{Resp: &resp})
}

// AwaitResponse is called by a worker process; it blocks until a response
// addressed to pid arrives.
func (c *NetChannel) AwaitResponse(pid int32) (pagesim.Response, error) {
	c.respMu.Lock()
	box, ok := c.respBox[pid]
	if !ok {
		box = make(chan pagesim.Response, 1)
		c.respBox[pid] = box
	}
	c.respMu.Unlock()

	resp, ok := <-box
	if !ok {
		return pagesim.Response{}, ErrClosed
	}
	return resp, nil
}

// Close shuts down the listener (server side) or the connection (client
// side). Safe to call more than once.
func (c *NetChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.listener != nil {
		_ = c.listener.Close()
	}
	for _, conn := range c.conns {
		_ = conn.Close()
	}
	if c.listener != nil && c.sockPath != "" {
		_ = os.Remove(c.sockPath)
	}
	return nil
}
