package pagesim_test

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	gomega "github.com/onsi/gomega"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/ipc"
)

type stubReaper struct {
	pending []int32
}

func (r *stubReaper) TryReap() (int32, bool) {
	if len(r.pending) == 0 {
		return 0, false
	}
	pid := r.pending[0]
	r.pending = r.pending[1:]
	return pid, true
}

type stubSpawner struct {
	spawned []int32
}

func (s *stubSpawner) Spawn(pid int32) error {
	s.spawned = append(s.spawned, pid)
	return nil
}

var _ = ginkgo.Describe("Coordinator", func() {
	var (
		channel *ipc.FakeChannel
		reaper  *stubReaper
		spawner *stubSpawner
		coord   *pagesim.Coordinator
	)

	ginkgo.BeforeEach(func() {
		channel = ipc.NewFakeChannel()
		reaper = &stubReaper{}
		spawner = &stubSpawner{}
		coord = pagesim.NewCoordinator("test", pagesim.Config{
			Quota:         1,
			MaxSimul:      1,
			SpawnInterval: 0,
		}, channel, reaper, spawner, nil)
	})

	ginkgo.It("admits exactly one worker on the first eligible step", func() {
		coord.Step()
		gomega.Expect(spawner.spawned).To(gomega.Equal([]int32{1}))
	})

	ginkgo.It("does not admit past the configured quota", func() {
		coord.Step()
		coord.Step()
		gomega.Expect(spawner.spawned).To(gomega.HaveLen(1))
	})

	ginkgo.It("records a fault on first reference to a page and eventually services it", func() {
		coord.Step() // admits pid 1
		channel.Enqueue(pagesim.NewRequest(1, 0, false))
		coord.Step() // receives the request: page not resident, fault recorded

		serviced := false
		for i := 0; i < 5; i++ {
			coord.Step()
			if resp, err := channel.AwaitResponse(1); err == nil {
				gomega.Expect(resp.Granted).To(gomega.BeTrue())
				serviced = true
				break
			}
		}
		gomega.Expect(serviced).To(gomega.BeTrue())
	})

	ginkgo.It("grants an immediate hit once the page is resident", func() {
		coord.Step()
		channel.Enqueue(pagesim.NewRequest(1, 0, false))
		coord.Step()
		for i := 0; i < 5; i++ {
			coord.Step()
			if _, err := channel.AwaitResponse(1); err == nil {
				break
			}
		}

		channel.Enqueue(pagesim.NewRequest(1, 0, false))
		coord.Step()

		resp, err := channel.AwaitResponse(1)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(resp.Granted).To(gomega.BeTrue())
	})

	ginkgo.It("reports Done once the quota is admitted and every worker is reaped", func() {
		coord.Step()
		gomega.Expect(coord.Done()).To(gomega.BeFalse())

		reaper.pending = append(reaper.pending, 1)
		coord.Step()
		gomega.Expect(coord.Done()).To(gomega.BeTrue())
	})

	ginkgo.It("removes a reaped worker's outstanding fault from the queue", func() {
		coord.Step()
		channel.Enqueue(pagesim.NewRequest(1, 0, false))
		coord.Step() // fault recorded, queued

		reaper.pending = append(reaper.pending, 1)
		coord.Step() // reaped before the fault could be serviced

		gomega.Expect(channel.Sent()).To(gomega.BeEmpty())

		snap := coord.Snapshot()
		gomega.Expect(snap.PCBs[0].Occupied).To(gomega.BeFalse())
	})
})
