package pagesim

import "github.com/rs/xid"

// Request is a worker's memory reference, addressed to the coordinator.
// On the wire (spec.md §6) this is a message-type=1 message carrying
// {pid, address, is_write, granted=false}; Request is its in-process Go
// shape, moved by an ipc.Channel.
type Request struct {
	ID       string
	Pid      int32
	Address  uint32
	IsWrite  bool
	SendTime Clock
}

// NewRequest builds a Request with a fresh correlation ID, mirroring
// req.go's ReqBase.ID convention (an xid, not a counter, so IDs stay unique
// across coordinator restarts within a test run).
func NewRequest(pid int32, address uint32, isWrite bool) Request {
	return Request{
		ID:      xid.New().String(),
		Pid:     pid,
		Address: address,
		IsWrite: isWrite,
	}
}

// Page returns the page index this request addresses. Callers must first
// check Validate.
func (r Request) Page() int {
	return pageOf(r.Address)
}

// Validate reports the protocol violation of spec.md §4.4: an address whose
// page index falls outside the process's 32-entry page table.
func (r Request) Validate() error {
	if r.Address >= AddressSpaceSize {
		return &Fault{
			Kind:    ErrProtocol,
			Message: "address out of range",
		}
	}
	return nil
}

// Response is the coordinator's reply to a worker's Request. On the wire
// this is a message-type=pid message carrying {granted}.
type Response struct {
	ID      string
	ToPid   int32
	Granted bool
}

// NewResponse builds a granted response addressed to req's sender.
func NewResponse(req Request) Response {
	return Response{ID: req.ID, ToPid: req.Pid, Granted: true}
}
