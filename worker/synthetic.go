package worker

import (
	"math/rand"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/ipc"
)

// The termination policy is worker.cpp's, translated from wall-clock
// checkpoints (TERM_CHECK_NS every 250ms, LIFE_NS of 2s, 40% die
// probability) into reference-count checkpoints: a worker with no clock of
// its own instead checks every termCheckRefs sent references, and only
// becomes eligible to terminate after lifeRefs references.
const (
	termCheckRefs   = 25
	lifeRefs        = 200
	termProbPercent = 40
)

// SyntheticAgent is a deterministic, PRNG-driven Agent: it generates
// uniformly distributed addresses across the full address space and an
// even read/write split, exactly as worker.cpp's `rand() % 32768` and
// `rand() % 2` do, but seeded so a test run is reproducible.
type SyntheticAgent struct {
	rng  *rand.Rand
	sent int
}

// NewSyntheticAgent returns a SyntheticAgent seeded with seed. Two agents
// built with the same seed produce the same sequence of references.
func NewSyntheticAgent(seed int64) *SyntheticAgent {
	return &SyntheticAgent{rng: rand.New(rand.NewSource(seed))}
}

// Run sends memory references to ch on behalf of pid until the
// termination policy fires or the channel reports an error (the
// coordinator closed the transport, or the agent was asked to stop).
func (a *SyntheticAgent) Run(ch ipc.Channel, pid int32) {
	for {
		addr := uint32(a.rng.Intn(pagesim.AddressSpaceSize))
		isWrite := a.rng.Intn(2) == 0

		req := pagesim.NewRequest(pid, addr, isWrite)
		if err := ch.SendRequest(req); err != nil {
			return
		}
		if _, err := ch.AwaitResponse(pid); err != nil {
			return
		}

		a.sent++
		if a.sent >= lifeRefs && a.sent%termCheckRefs == 0 {
			if a.rng.Intn(100) < termProbPercent {
				return
			}
		}
	}
}
