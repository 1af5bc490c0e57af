package main

import (
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"sync"
)

// execSpawner launches each worker as a genuine child process (cmd/worker)
// connected back over the coordinator's unix socket, the literal
// translation of oss.cpp's fork/exec of the worker binary. It implements
// both pagesim.Spawner and pagesim.Reaper the same way worker.Pool does
// for goroutines: a buffered done channel, here fed by a goroutine that
// returns from os/exec.Cmd.Wait rather than from Agent.Run.
type execSpawner struct {
	workerPath string
	socketPath string
	logger     *log.Logger

	done chan int32

	mu    sync.Mutex
	procs map[int32]*exec.Cmd
}

func newExecSpawner(workerPath, socketPath string, logger *log.Logger) *execSpawner {
	return &execSpawner{
		workerPath: workerPath,
		socketPath: socketPath,
		logger:     logger,
		done:       make(chan int32, 256),
		procs:      make(map[int32]*exec.Cmd),
	}
}

func (s *execSpawner) Spawn(pid int32) error {
	cmd := exec.Command(s.workerPath, "--socket", s.socketPath, "--pid", strconv.Itoa(int(pid)))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("execSpawner: start worker for pid %d: %w", pid, err)
	}

	s.mu.Lock()
	s.procs[pid] = cmd
	s.mu.Unlock()

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Printf("worker pid %d exited: %v", pid, err)
		}
		s.done <- pid
	}()

	return nil
}

func (s *execSpawner) TryReap() (int32, bool) {
	select {
	case pid := <-s.done:
		s.mu.Lock()
		delete(s.procs, pid)
		s.mu.Unlock()
		return pid, true
	default:
		return 0, false
	}
}

// Close kills every process still running, satisfying watchdog.Killer.
func (s *execSpawner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for pid, cmd := range s.procs {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		delete(s.procs, pid)
	}
	return nil
}
