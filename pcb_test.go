package pagesim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPCBTableAdmitAssignsFreeSlotWithResetPageTable(t *testing.T) {
	pt := NewPCBTable()

	slot := pt.Admit(42, Clock{Secs: 3})
	require.Equal(t, 0, slot)

	pcb := pt.Slot(slot)
	require.True(t, pcb.Occupied)
	require.Equal(t, int32(42), pcb.Pid)
	require.Equal(t, uint32(3), pcb.StartTime.Secs)
	for _, f := range pcb.PageTable {
		require.Equal(t, notResident, f)
	}
}

func TestPCBTableAdmitFailsWhenFull(t *testing.T) {
	pt := NewPCBTable()
	for i := 0; i < MaxProc; i++ {
		require.NotEqual(t, -1, pt.Admit(int32(i+1), Clock{}))
	}
	require.Equal(t, -1, pt.Admit(999, Clock{}))
}

func TestPCBTableFindByPid(t *testing.T) {
	pt := NewPCBTable()
	pt.Admit(5, Clock{})
	pt.Admit(6, Clock{})

	require.Equal(t, 1, pt.FindByPid(6))
	require.Equal(t, -1, pt.FindByPid(999))
}

func TestPCBTableReleaseResetsSlotForReuse(t *testing.T) {
	pt := NewPCBTable()
	slot := pt.Admit(5, Clock{})
	pt.SetPage(slot, 3, 10)

	pt.Release(slot)

	pcb := pt.Slot(slot)
	require.False(t, pcb.Occupied)
	require.Equal(t, notResident, pcb.PageTable[3])
}

func TestPCBTableFaultRecordAndResolveCycle(t *testing.T) {
	pt := NewPCBTable()
	slot := pt.Admit(5, Clock{})

	pt.RecordFault(slot, 7, true, Clock{Secs: 1})
	pcb := pt.Slot(slot)
	require.True(t, pcb.Waiting)
	require.Equal(t, 7, pcb.WaitPage)
	require.True(t, pcb.WaitIsWrite)

	pt.ResolveFault(slot, 12)
	pcb = pt.Slot(slot)
	require.False(t, pcb.Waiting)
	require.Equal(t, 12, pcb.PageTable[7])
}

func TestPCBTableIsHit(t *testing.T) {
	pt := NewPCBTable()
	slot := pt.Admit(5, Clock{})

	_, hit := pt.IsHit(slot, 0)
	require.False(t, hit)

	pt.SetPage(slot, 0, 4)
	frame, hit := pt.IsHit(slot, 0)
	require.True(t, hit)
	require.Equal(t, 4, frame)
}
