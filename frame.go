package pagesim

// Frame is a single physical frame slot. Occupied, OwnerPid, and PageNum
// are only meaningful when Occupied is true, per spec.md §3.
type Frame struct {
	Occupied bool
	OwnerPid int32
	PageNum  int
	Dirty    bool
	LastRef  Clock
}

// FrameTable is the fixed FrameNum-sized array of physical frames. It is
// private to the coordinator; every mutation goes through one of its
// methods so that invariant 1 of spec.md §3 (occupancy implies exactly one
// referencing page-table entry) can only be violated by the coordinator's
// own control flow, never by a stray write.
type FrameTable struct {
	frames [FrameNum]Frame
}

// NewFrameTable returns a table with every frame free.
func NewFrameTable() *FrameTable {
	return &FrameTable{}
}

// Frame returns a copy of frame j's state for inspection (snapshotting,
// tests). Mutation must go through the table's methods.
func (t *FrameTable) Frame(j int) Frame {
	return t.frames[j]
}

// Len returns the number of frame slots.
func (t *FrameTable) Len() int {
	return len(t.frames)
}

// FindFree performs the linear scan of spec.md §4.2 and returns the first
// free frame index, or -1 if the table is full.
func (t *FrameTable) FindFree() int {
	for j := range t.frames {
		if !t.frames[j].Occupied {
			return j
		}
	}
	return -1
}

// Victim performs the linear scan of spec.md §4.2 and returns the occupied
// frame with the smallest LastRef, breaking ties by the lowest index. The
// frame table must contain at least one occupied frame.
func (t *FrameTable) Victim() int {
	best := -1
	for j := range t.frames {
		if !t.frames[j].Occupied {
			continue
		}
		if best == -1 || t.frames[j].LastRef.NowNS() < t.frames[best].LastRef.NowNS() {
			best = j
		}
	}
	return best
}

// Install places a page in frame j, overwriting whatever was there.
func (t *FrameTable) Install(j int, pid int32, page int, isWrite bool, now Clock) {
	t.frames[j] = Frame{
		Occupied: true,
		OwnerPid: pid,
		PageNum:  page,
		Dirty:    isWrite,
		LastRef:  now,
	}
}

// Touch updates frame j's LastRef without touching any other field.
func (t *FrameTable) Touch(j int, now Clock) {
	t.frames[j].LastRef = now
}

// MarkDirty sets frame j's dirty bit.
func (t *FrameTable) MarkDirty(j int) {
	t.frames[j].Dirty = true
}

// EvictOwner returns the (pid, page) currently occupying frame j, so the
// caller can clear the corresponding page-table entry before reinstalling
// the frame. It does not itself clear the frame; the caller's subsequent
// Install call does that.
func (t *FrameTable) EvictOwner(j int) (pid int32, page int) {
	f := t.frames[j]
	return f.OwnerPid, f.PageNum
}

// ClearByPid frees every frame owned by pid, satisfying invariant 4 of
// spec.md §3 on worker termination.
func (t *FrameTable) ClearByPid(pid int32) {
	for j := range t.frames {
		if t.frames[j].Occupied && t.frames[j].OwnerPid == pid {
			t.frames[j] = Frame{}
		}
	}
}
