package pagesim

import (
	"log"
	"time"
)

// Channel is the minimal contract the Coordinator needs from a message
// transport: pull the next pending request, and push a reply. It is
// satisfied structurally by ipc.MemChannel, ipc.NetChannel, and
// ipc.FakeChannel without pagesim importing ipc (which itself imports
// pagesim for the Request/Response wire types).
type Channel interface {
	ReceiveRequest() (Request, error)
	SendResponse(resp Response) error
}

// Reaper reports worker terminations to the coordinator without blocking,
// modeling the non-blocking wait of spec.md §4.5 step 2 over whatever
// underlying process or goroutine model the caller chose.
type Reaper interface {
	// TryReap returns the pid of one terminated worker and true, or
	// (0, false) if none is currently available.
	TryReap() (pid int32, ok bool)
}

// Spawner starts a new worker with the given pid, once the Coordinator has
// decided to admit it.
type Spawner interface {
	Spawn(pid int32) error
}

// Config holds the admission parameters of spec.md §6: n (total quota,
// capped at 100), s (max concurrent, capped at 18), i (spawn interval).
type Config struct {
	Quota         int
	MaxSimul      int
	SpawnInterval time.Duration
}

// Snapshot is the formatted-dump payload of spec.md §4.5 step 3, produced
// on request and consumed by monitoring hooks; the coordinator itself
// never formats text.
type Snapshot struct {
	Now         Clock
	PCBs        [MaxProc]PCB
	Frames      [FrameNum]Frame
	TotalRefs   uint64
	TotalFaults uint64
}

// Coordinator is the single owned value that threads the whole simulation
// loop: one Clock, one FrameTable, one PCBTable, one FaultQueue, each
// exposed only through narrow methods, per the design note replacing the
// original program's global mutable tables.
type Coordinator struct {
	HookableBase

	name string

	clock    Clock
	frames   *FrameTable
	pcbs     *PCBTable
	queue    *FaultQueue
	replacer *Replacer

	channel Channel
	reaper  Reaper
	spawner Spawner

	cfg Config

	nextPid           int32
	admitted          int
	running           int
	nextSpawnDeadline Clock
	lastSnapshot      Clock

	totalRefs   uint64
	totalFaults uint64

	logger *log.Logger
}

// NewCoordinator builds a Coordinator ready to Run. cfg's zero values are
// invalid; callers build Config from validated config.Options (as cmd/oss
// does) or set it explicitly in tests.
func NewCoordinator(name string, cfg Config, ch Channel, reaper Reaper, spawner Spawner, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		name:    name,
		frames:  NewFrameTable(),
		pcbs:    NewPCBTable(),
		queue:   NewFaultQueue(),
		channel: ch,
		reaper:  reaper,
		spawner: spawner,
		cfg:     cfg,
		nextPid: 1,
		logger:  logger,
	}
}

// Name identifies the coordinator for monitoring registration.
func (c *Coordinator) Name() string { return c.name }

// Now returns the coordinator's current virtual time.
func (c *Coordinator) Now() Clock { return c.clock }

// Stats returns the running total-references / total-faults counters.
func (c *Coordinator) Stats() (refs, faults uint64) {
	return c.totalRefs, c.totalFaults
}

// Done reports whether the loop's termination condition of spec.md §4.5 has
// been reached: every admission has happened and no worker remains
// running.
func (c *Coordinator) Done() bool {
	return c.admitted >= c.cfg.Quota && c.running == 0
}

// Snapshot captures the current PCB/frame/statistics state for
// observability, per spec.md §4.5 step 3.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{Now: c.clock, TotalRefs: c.totalRefs, TotalFaults: c.totalFaults}
	for i := 0; i < MaxProc; i++ {
		s.PCBs[i] = c.pcbs.Slot(i)
	}
	for j := 0; j < FrameNum; j++ {
		s.Frames[j] = c.frames.Frame(j)
	}
	return s
}

func (c *Coordinator) replacerLazy() *Replacer {
	if c.replacer == nil {
		c.replacer = NewReplacer(c.frames, c.pcbs)
	}
	return c.replacer
}

// Step runs exactly one iteration of the simulation loop, in the order
// fixed by spec.md §4.5: tick, reap, snapshot, admit, receive, service.
// Run calls Step until Done(); tests call Step directly to observe each
// iteration's effect.
func (c *Coordinator) Step() {
	c.tick()
	c.reap()
	c.maybeSnapshot()
	c.maybeAdmit()
	c.receiveOne()
	c.serviceFaultHead()
}

// Run drives Step until the termination condition holds.
func (c *Coordinator) Run() {
	for !c.Done() {
		c.Step()
	}
}

func (c *Coordinator) tick() {
	c.clock.Tick()
	c.InvokeHook(HookCtx{Pos: BeforeTick, Now: c.clock})
}

func (c *Coordinator) reap() {
	for {
		pid, ok := c.reaper.TryReap()
		if !ok {
			return
		}

		slot := c.pcbs.FindByPid(pid)
		if slot < 0 {
			continue
		}

		c.frames.ClearByPid(pid)
		c.queue.Remove(slot)
		c.pcbs.Release(slot)
		c.running--

		c.InvokeHook(HookCtx{Pos: OnReap, Now: c.clock, Item: pid})
	}
}

func (c *Coordinator) maybeSnapshot() {
	if c.clock.Sub(c.lastSnapshot) < SnapshotPeriod.Nanoseconds() {
		return
	}
	c.lastSnapshot = c.clock
	c.InvokeHook(HookCtx{Pos: OnSnapshot, Now: c.clock, Item: c.Snapshot()})
}

func (c *Coordinator) maybeAdmit() {
	if c.admitted >= c.cfg.Quota {
		return
	}
	if c.running >= c.cfg.MaxSimul {
		return
	}
	if c.admitted > 0 && c.clock.NowNS() < c.nextSpawnDeadline.NowNS() {
		return
	}

	pid := c.nextPid
	c.nextPid++

	if err := c.spawner.Spawn(pid); err != nil {
		panic(&Fault{Kind: ErrResource, Message: "spawn failed: " + err.Error()})
	}

	c.clock.Tick()

	slot := c.pcbs.Admit(pid, c.clock)
	if slot < 0 {
		panic(&Fault{Kind: ErrResource, Message: "process table full on admission"})
	}

	c.admitted++
	c.running++
	c.nextSpawnDeadline = c.clock
	c.nextSpawnDeadline.Add(uint64(c.cfg.SpawnInterval.Nanoseconds()))

	c.InvokeHook(HookCtx{Pos: OnAdmit, Now: c.clock, Item: pid})
}

func (c *Coordinator) receiveOne() {
	req, err := c.channel.ReceiveRequest()
	if err != nil {
		return
	}

	c.totalRefs++

	if verr := req.Validate(); verr != nil {
		panic(verr)
	}

	slot := c.pcbs.FindByPid(req.Pid)
	if slot < 0 {
		return
	}

	page := req.Page()
	if frame, hit := c.pcbs.IsHit(slot, page); hit {
		c.clock.Overhead()
		c.clock.Add(uint64(HitCost.Nanoseconds()))

		c.frames.Touch(frame, c.clock)
		if req.IsWrite {
			c.frames.MarkDirty(frame)
		}

		c.InvokeHook(HookCtx{Pos: OnHit, Now: c.clock, Item: req})

		if err := c.channel.SendResponse(NewResponse(req)); err != nil {
			c.logger.Printf("pagesim: send response to pid %d: %v", req.Pid, err)
		}
		return
	}

	c.totalFaults++
	c.pcbs.RecordFault(slot, page, req.IsWrite, c.clock)
	c.queue.Push(slot)

	c.InvokeHook(HookCtx{Pos: OnFaultRecorded, Now: c.clock, Item: req})
}

func (c *Coordinator) serviceFaultHead() {
	if c.queue.Len() == 0 {
		return
	}

	slot := c.queue.Front()
	pcb := c.pcbs.Slot(slot)

	elapsed := c.clock.Sub(pcb.WaitTime)
	required := faultLatency(pcb.WaitIsWrite).Nanoseconds()
	if elapsed < required {
		return
	}

	c.queue.PopFront()

	frame, ev := c.replacerLazy().SelectFrame(slot)
	if ev != nil {
		c.InvokeHook(HookCtx{Pos: OnEvict, Now: c.clock, Item: *ev})
	}

	c.pcbs.ResolveFault(slot, frame)
	c.frames.Install(frame, pcb.Pid, pcb.WaitPage, pcb.WaitIsWrite, c.clock)

	c.clock.Overhead()
	if pcb.WaitIsWrite {
		c.clock.Overhead()
	}

	req := Request{Pid: pcb.Pid, Address: uint32(pcb.WaitPage) * PageSize, IsWrite: pcb.WaitIsWrite}
	c.InvokeHook(HookCtx{Pos: OnFaultServiced, Now: c.clock, Item: req})

	if err := c.channel.SendResponse(Response{ToPid: pcb.Pid, Granted: true}); err != nil {
		c.logger.Printf("pagesim: send response to pid %d: %v", pcb.Pid, err)
	}
}
