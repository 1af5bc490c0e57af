package monitoring

import (
	"fmt"
	"log"

	pagesim "github.com/oss6/pagesim"
)

// SnapshotPrinter formats the periodic table dump spec.md's coordinator
// emits at OnSnapshot and writes it through logger, whose output the
// caller has typically wired to io.MultiWriter(os.Stdout, logfile) so the
// console and the run's logfile see the identical lines.
type SnapshotPrinter struct {
	logger *log.Logger
}

// NewSnapshotPrinter returns a printer writing through logger.
func NewSnapshotPrinter(logger *log.Logger) *SnapshotPrinter {
	return &SnapshotPrinter{logger: logger}
}

// Attach subscribes the printer to c's OnSnapshot hook.
func (p *SnapshotPrinter) Attach(c *pagesim.Coordinator) {
	c.AcceptHook(pagesim.HookFunc{At: pagesim.OnSnapshot, Fn: func(ctx pagesim.HookCtx) {
		snap, ok := ctx.Item.(pagesim.Snapshot)
		if !ok {
			return
		}
		p.Print(snap)
	}})
}

// Print writes one formatted dump of snap's process and frame tables.
func (p *SnapshotPrinter) Print(snap pagesim.Snapshot) {
	p.logger.Printf("=== snapshot at %d.%09ds (refs=%d faults=%d) ===",
		snap.Now.Secs, snap.Now.Nanos, snap.TotalRefs, snap.TotalFaults)

	for i, pcb := range snap.PCBs {
		if !pcb.Occupied {
			continue
		}
		p.logger.Print(formatPCBLine(i, pcb))
	}

	for j, f := range snap.Frames {
		if !f.Occupied {
			continue
		}
		p.logger.Print(formatFrameLine(j, f))
	}
}

func formatPCBLine(slot int, pcb pagesim.PCB) string {
	line := fmt.Sprintf("proc[%02d] pid=%-4d start=%d.%09ds pages=[", slot, pcb.Pid, pcb.StartTime.Secs, pcb.StartTime.Nanos)
	for i, frame := range pcb.PageTable {
		if i > 0 {
			line += " "
		}
		if frame < 0 {
			line += "-"
		} else {
			line += fmt.Sprintf("%d", frame)
		}
	}
	line += "]"
	if pcb.Waiting {
		line += fmt.Sprintf(" waiting-on-page=%d write=%v", pcb.WaitPage, pcb.WaitIsWrite)
	}
	return line
}

func formatFrameLine(frame int, f pagesim.Frame) string {
	return fmt.Sprintf("frame[%03d] pid=%d page=%d dirty=%v last-ref=%d.%09ds",
		frame, f.OwnerPid, f.PageNum, f.Dirty, f.LastRef.Secs, f.LastRef.Nanos)
}
