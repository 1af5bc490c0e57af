package pagesim

// Replacer implements the LRU victim-selection algorithm of spec.md §4.6.
// It does not itself install the new page: the coordinator's loop is the
// single site that calls Install afterwards, so invariant 1 of spec.md §3
// only has one place where it can be violated and one place where it needs
// to be rechecked.
type Replacer struct {
	frames *FrameTable
	pcbs   *PCBTable
}

// NewReplacer builds a Replacer over the given tables.
func NewReplacer(frames *FrameTable, pcbs *PCBTable) *Replacer {
	return &Replacer{frames: frames, pcbs: pcbs}
}

// EvictionEvent describes a clearing-frame-j event, for observability and
// for the fault-service hook.
type EvictionEvent struct {
	Frame      int
	VictimPid  int32
	VictimPage int
	NewPid     int32
	NewPage    int
}

// SelectFrame returns a frame ready to receive the page the PCB slot
// `waiterSlot` faulted on. If a free frame exists it is returned directly.
// Otherwise the frame with the smallest LastRef is chosen, its owner's
// page-table entry is cleared, and an EvictionEvent describing the swap is
// returned so the caller can log it; a nil ev signals no eviction occurred
// (a free frame was used).
func (r *Replacer) SelectFrame(waiterSlot int) (frame int, ev *EvictionEvent) {
	if j := r.frames.FindFree(); j >= 0 {
		return j, nil
	}

	j := r.frames.Victim()
	ownerPid, victimPage := r.frames.EvictOwner(j)

	ownerSlot := r.pcbs.FindByPid(ownerPid)
	if ownerSlot >= 0 {
		r.pcbs.SetPage(ownerSlot, victimPage, notResident)
	}

	waiter := r.pcbs.Slot(waiterSlot)
	return j, &EvictionEvent{
		Frame:      j,
		VictimPid:  ownerPid,
		VictimPage: victimPage,
		NewPid:     waiter.Pid,
		NewPage:    waiter.WaitPage,
	}
}
