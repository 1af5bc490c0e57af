package worker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oss6/pagesim/ipc"
	"github.com/oss6/pagesim/worker"
)

type oneShotAgent struct {
	ran chan int32
}

func (a *oneShotAgent) Run(ch ipc.Channel, pid int32) {
	a.ran <- pid
}

func TestPoolSpawnThenReapReportsThePid(t *testing.T) {
	ch := ipc.NewFakeChannel()
	ran := make(chan int32, 1)

	pool := worker.NewPool(ch, func(pid int32) worker.Agent {
		return &oneShotAgent{ran: ran}
	})

	require.NoError(t, pool.Spawn(5))
	require.Equal(t, int32(5), <-ran)

	require.Eventually(t, func() bool {
		pid, ok := pool.TryReap()
		return ok && pid == 5
	}, time.Second, time.Millisecond)
}

func TestPoolTryReapOnEmptyReturnsFalse(t *testing.T) {
	ch := ipc.NewFakeChannel()
	pool := worker.NewPool(ch, func(pid int32) worker.Agent {
		return &oneShotAgent{ran: make(chan int32, 1)}
	})

	_, ok := pool.TryReap()
	require.False(t, ok)
}

func TestPoolRunningCountsInFlightAgents(t *testing.T) {
	ch := ipc.NewFakeChannel()
	block := make(chan struct{})
	pool := worker.NewPool(ch, func(pid int32) worker.Agent {
		return blockingAgent{block: block}
	})

	require.NoError(t, pool.Spawn(1))
	require.Eventually(t, func() bool { return pool.Running() == 1 }, time.Second, time.Millisecond)

	close(block)
	require.Eventually(t, func() bool {
		pid, ok := pool.TryReap()
		return ok && pid == 1
	}, time.Second, time.Millisecond)
	require.Equal(t, 0, pool.Running())
}

type blockingAgent struct {
	block chan struct{}
}

func (a blockingAgent) Run(ch ipc.Channel, pid int32) {
	<-a.block
}
