// Package worker implements the population of memory-referencing workers a
// Coordinator services: each holds one process slot for its lifetime,
// alternating between deciding when to act and blocking on the
// coordinator's reply, exactly as worker.cpp's message-queue loop does over
// a shared-memory clock, translated to an ipc.Channel and Go's blocking
// channel receive in place of msgsnd/msgrcv.
package worker

import "github.com/oss6/pagesim/ipc"

// Agent is one worker's behavior: given a channel to the coordinator and
// its own pid, Run drives the send/await loop until the agent decides to
// terminate, then returns.
type Agent interface {
	Run(ch ipc.Channel, pid int32)
}
