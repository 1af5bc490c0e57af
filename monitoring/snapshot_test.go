package monitoring_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/monitoring"
)

func TestSnapshotPrinterPrintsOccupiedSlotsOnly(t *testing.T) {
	var buf bytes.Buffer
	printer := monitoring.NewSnapshotPrinter(log.New(&buf, "", 0))

	var snap pagesim.Snapshot
	snap.PCBs[0].Occupied = true
	snap.PCBs[0].Pid = 5
	for i := range snap.PCBs[0].PageTable {
		snap.PCBs[0].PageTable[i] = -1
	}
	snap.Frames[2].Occupied = true
	snap.Frames[2].OwnerPid = 5

	printer.Print(snap)

	out := buf.String()
	require.Contains(t, out, "pid=5")
	require.Contains(t, out, "frame[002]")
	require.NotContains(t, out, "proc[01]")
}

func TestSnapshotPrinterAttachFiresOnSnapshotHook(t *testing.T) {
	var buf bytes.Buffer
	printer := monitoring.NewSnapshotPrinter(log.New(&buf, "", 0))

	coord := pagesim.NewCoordinator("test", pagesim.Config{Quota: 0, MaxSimul: 0}, noopChannel{}, noopReaper{}, noopSpawner{}, nil)
	printer.Attach(coord)

	coord.InvokeHook(pagesim.HookCtx{Pos: pagesim.OnSnapshot, Item: coord.Snapshot()})

	require.Contains(t, buf.String(), "snapshot at")
}

type noopChannel struct{}

func (noopChannel) ReceiveRequest() (pagesim.Request, error) { return pagesim.Request{}, errNoMessage }
func (noopChannel) SendResponse(pagesim.Response) error      { return nil }

type noopReaper struct{}

func (noopReaper) TryReap() (int32, bool) { return 0, false }

type noopSpawner struct{}

func (noopSpawner) Spawn(int32) error { return nil }

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }

const errNoMessage = sentinelErr("no message")
