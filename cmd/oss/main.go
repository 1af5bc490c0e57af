// Command oss is the coordinator process of a pagesim run: it parses
// configuration, launches worker processes (goroutines by default, or
// separate cmd/worker OS processes with --net), and drives the
// simulation loop to completion, mirroring oss.cpp's role as the parent
// process that owns the shared clock and message queue.
package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/browser"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/config"
	"github.com/oss6/pagesim/ipc"
	"github.com/oss6/pagesim/monitoring"
	"github.com/oss6/pagesim/telemetry"
	"github.com/oss6/pagesim/watchdog"
	"github.com/oss6/pagesim/worker"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fatal(err)
	}

	var opts config.Options
	cmd := config.NewCommand(&opts, run)
	if err := cmd.Execute(); err != nil {
		fatal(err)
	}
}

func run(opts config.Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*pagesim.Fault); ok {
				err = f
				return
			}
			panic(r)
		}
	}()

	logger, closeLogger := newLogger(opts.LogToFile)
	defer closeLogger()

	channel, killer, spawner, reaper, cleanup, err := buildTransport(opts, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := pagesim.Config{
		Quota:         opts.Quota,
		MaxSimul:      opts.MaxSimul,
		SpawnInterval: time.Duration(opts.IntervalMs) * time.Millisecond,
	}
	coord := pagesim.NewCoordinator("oss", cfg, channel, reaper, spawner, logger)

	mon := monitoring.NewMonitor(logger)
	mon.WithPortNumber(opts.MonitorPort)
	mon.RegisterCoordinator(coord)
	url, serr := mon.StartServer()
	if serr != nil {
		return serr
	}
	if opts.OpenBrowser {
		openDashboard(url)
	}
	monitoring.NewSnapshotPrinter(logger).Attach(coord)

	wd := watchdog.New(pagesim.DefaultWatchdogDeadline, killer, logger)
	defer wd.Stop()

	coord.Run()
	wd.Stop()

	if wd.Fired() {
		return &pagesim.Fault{Kind: pagesim.ErrWatchdog, Message: "watchdog deadline exceeded before the run completed"}
	}

	recorder, rerr := telemetry.NewSQLiteRecorder(opts.SQLitePath)
	if rerr != nil {
		return rerr
	}
	defer recorder.Close()

	stats := telemetry.Collect(coord, cfg)
	recorder.Record(stats)
	logger.Printf("run complete: refs=%d faults=%d hit-rate=%.4f", stats.TotalRefs, stats.TotalFaults, stats.HitRate())

	return nil
}

func newLogger(toFile bool) (*log.Logger, func()) {
	if !toFile {
		return log.New(os.Stdout, "", log.LstdFlags), func() {}
	}

	f, err := os.Create("ossLog.txt")
	if err != nil {
		fatal(&pagesim.Fault{Kind: pagesim.ErrResource, Message: "opening logfile: " + err.Error()})
	}
	writer := io.MultiWriter(os.Stdout, f)
	return log.New(writer, "", log.LstdFlags), func() { f.Close() }
}

// compositeKiller satisfies watchdog.Killer by closing every closer it
// wraps, so a watchdog trip in --net mode both tears down the listening
// socket and kills the child worker processes execSpawner owns, matching
// oss.cpp's signal handler killing every occupied process table entry.
type compositeKiller struct {
	closers []interface{ Close() error }
}

func (k compositeKiller) Close() error {
	var firstErr error
	for _, c := range k.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildTransport(opts config.Options, logger *log.Logger) (
	channel pagesim.Channel, killer watchdog.Killer, spawner pagesim.Spawner, reaper pagesim.Reaper, cleanup func(), err error,
) {
	if opts.UseNetChannel {
		nc, lerr := ipc.Listen(opts.SocketPath)
		if lerr != nil {
			return nil, nil, nil, nil, nil, lerr
		}
		spawn := newExecSpawner(workerBinaryPath(), opts.SocketPath, logger)
		killer := compositeKiller{closers: []interface{ Close() error }{nc, spawn}}
		return nc, killer, spawn, spawn, func() { nc.Close(); spawn.Close() }, nil
	}

	mc := ipc.NewMemChannel(4096)
	pool := worker.NewPool(mc, func(pid int32) worker.Agent {
		return worker.NewSyntheticAgent(int64(pid))
	})
	return mc, mc, pool, pool, func() { mc.Close() }, nil
}

func workerBinaryPath() string {
	if p := os.Getenv("PAGESIM_WORKER_BIN"); p != "" {
		return p
	}
	return "pagesim-worker"
}

func fatal(err error) {
	log.Print(err)
	if f, ok := err.(*pagesim.Fault); ok {
		os.Exit(f.ExitCode())
	}
	os.Exit(1)
}

func openDashboard(url string) {
	_ = browser.OpenURL(url)
}
