// Package ipc provides the message-channel contract between the
// coordinator and its workers: an interface plus concrete transports, so
// that a Coordinator can be driven end to end without a literal System V
// message queue. No shared clock region is modeled; workers have no view
// of the coordinator's clock.
package ipc

import (
	"errors"

	"github.com/oss6/pagesim"
)

// ErrNoMessage is returned by ReceiveRequest when no request is currently
// pending. spec.md §7 classifies this as a transient, non-error condition;
// it is still typed as an error here (rather than a bare bool) so the
// Channel interface composes cleanly with NetChannel's I/O errors, but
// callers must check errors.Is(err, ErrNoMessage) before treating it as
// fatal.
var ErrNoMessage = errors.New("ipc: no message ready")

// ErrClosed is returned once a Channel has been closed and can no longer
// move messages in either direction.
var ErrClosed = errors.New("ipc: channel closed")

// Channel is the message-queue contract of spec.md §6. A Channel carries
// two independent flows: requests addressed to the coordinator
// (message-type=1 on the wire) and responses addressed to a specific
// worker pid (message-type=pid on the wire). Both MemChannel (in-process)
// and NetChannel (a real Unix domain socket, for literal separate worker
// processes) implement it identically from the coordinator's point of
// view.
type Channel interface {
	// SendRequest is called by a worker to submit a memory reference. It
	// does not block on the coordinator picking it up.
	SendRequest(req pagesim.Request) error

	// ReceiveRequest is called by the coordinator once per loop iteration.
	// It never blocks: if nothing is pending it returns ErrNoMessage.
	ReceiveRequest() (pagesim.Request, error)

	// SendResponse is called by the coordinator to deliver a reply to the
	// worker identified by resp.ToPid.
	SendResponse(resp pagesim.Response) error

	// AwaitResponse is called by a worker after SendRequest; it blocks
	// until a response addressed to pid arrives or the channel closes.
	AwaitResponse(pid int32) (pagesim.Response, error)

	// Close releases the channel's resources. Safe to call more than once.
	Close() error
}
