package pagesim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameTableFindFreeThenFull(t *testing.T) {
	ft := NewFrameTable()

	for j := 0; j < FrameNum; j++ {
		free := ft.FindFree()
		require.Equal(t, j, free)
		ft.Install(free, int32(j), 0, false, Clock{})
	}

	require.Equal(t, -1, ft.FindFree())
}

func TestFrameTableVictimPicksSmallestLastRefBreakingTiesLow(t *testing.T) {
	ft := NewFrameTable()
	ft.Install(0, 1, 0, false, Clock{Secs: 5})
	ft.Install(1, 2, 0, false, Clock{Secs: 1})
	ft.Install(2, 3, 0, false, Clock{Secs: 1})

	require.Equal(t, 1, ft.Victim())
}

func TestFrameTableTouchUpdatesOnlyLastRef(t *testing.T) {
	ft := NewFrameTable()
	ft.Install(0, 1, 4, true, Clock{Secs: 1})
	ft.Touch(0, Clock{Secs: 9})

	f := ft.Frame(0)
	require.Equal(t, uint32(9), f.LastRef.Secs)
	require.True(t, f.Dirty)
	require.Equal(t, int32(1), f.OwnerPid)
	require.Equal(t, 4, f.PageNum)
}

func TestFrameTableMarkDirty(t *testing.T) {
	ft := NewFrameTable()
	ft.Install(0, 1, 0, false, Clock{})
	require.False(t, ft.Frame(0).Dirty)

	ft.MarkDirty(0)
	require.True(t, ft.Frame(0).Dirty)
}

func TestFrameTableClearByPidFreesOnlyOwnedFrames(t *testing.T) {
	ft := NewFrameTable()
	ft.Install(0, 1, 0, false, Clock{})
	ft.Install(1, 2, 0, false, Clock{})

	ft.ClearByPid(1)

	require.False(t, ft.Frame(0).Occupied)
	require.True(t, ft.Frame(1).Occupied)
}

func TestFrameTableEvictOwnerReportsWithoutClearing(t *testing.T) {
	ft := NewFrameTable()
	ft.Install(3, 7, 2, false, Clock{})

	pid, page := ft.EvictOwner(3)
	require.Equal(t, int32(7), pid)
	require.Equal(t, 2, page)
	require.True(t, ft.Frame(3).Occupied)
}
