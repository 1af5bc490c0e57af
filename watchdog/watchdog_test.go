package watchdog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oss6/pagesim/watchdog"
)

type countingKiller struct {
	closes int
}

func (k *countingKiller) Close() error {
	k.closes++
	return nil
}

func TestWatchdogTripClosesKillerExactlyOnce(t *testing.T) {
	killer := &countingKiller{}
	wd := watchdog.New(time.Hour, killer, nil)

	wd.Trip()
	wd.Trip()

	require.Equal(t, 1, killer.closes)
	require.True(t, wd.Fired())
}

func TestWatchdogStopPreventsExpiry(t *testing.T) {
	killer := &countingKiller{}
	wd := watchdog.New(10*time.Millisecond, killer, nil)

	stopped := wd.Stop()
	require.True(t, stopped)

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 0, killer.closes)
	require.False(t, wd.Fired())
}

func TestWatchdogFiresAfterDeadline(t *testing.T) {
	killer := &countingKiller{}
	watchdog.New(5*time.Millisecond, killer, nil)

	require.Eventually(t, func() bool {
		return killer.closes == 1
	}, time.Second, time.Millisecond)
}
