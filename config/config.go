// Package config parses the command-line and .env-file configuration of a
// pagesim run, translating oss.cpp's getopt(optstr="hn:s:i:f") parsing and
// its per-flag digit/range validation into cobra flags, with joho/godotenv
// supplying environment-file defaults so a run's parameters do not all
// have to be repeated on every invocation.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	pagesim "github.com/oss6/pagesim"
)

// Options mirrors oss.cpp's `options` struct: -n (total processes to
// launch), -s (max simultaneous), -i (spawn interval in ms), and -f
// (mirror console output to a logfile).
type Options struct {
	Quota         int
	MaxSimul      int
	IntervalMs    int
	LogToFile     bool
	MonitorPort   int
	SQLitePath    string
	SocketPath    string
	UseNetChannel bool
	OpenBrowser   bool
}

const (
	defaultQuota      = 20
	defaultMaxSimul   = 5
	defaultIntervalMs = 100
)

// Validate enforces the caps of spec.md §6: quota <= 100, max-simul <= 18
// (oss.cpp's own MAX_PROC), and both strictly positive.
func (o Options) Validate() error {
	if o.Quota <= 0 || o.Quota > 100 {
		return &pagesim.Fault{Kind: pagesim.ErrConfig, Message: fmt.Sprintf("-n must be in [1, 100], got %d", o.Quota)}
	}
	if o.MaxSimul <= 0 || o.MaxSimul > pagesim.MaxProc {
		return &pagesim.Fault{Kind: pagesim.ErrConfig, Message: fmt.Sprintf("-s must be in [1, %d], got %d", pagesim.MaxProc, o.MaxSimul)}
	}
	if o.IntervalMs < 0 {
		return &pagesim.Fault{Kind: pagesim.ErrConfig, Message: fmt.Sprintf("-i must be non-negative, got %d", o.IntervalMs)}
	}
	return nil
}

// LoadDotEnv overlays process defaults from a .env file at path, if
// present. A missing file is not an error: godotenv.Load's error is only
// surfaced when the file exists but cannot be parsed.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &pagesim.Fault{Kind: pagesim.ErrConfig, Message: "parsing .env: " + err.Error()}
	}
	return nil
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(v, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

// NewCommand builds the cobra command that parses pagesim's flags into
// opts and invokes run once parsing and validation both succeed.
func NewCommand(opts *Options, run func(Options) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oss",
		Short: "Run a demand-paged virtual memory simulation",
		Long: "oss launches simulated worker processes that reference a shared " +
			"paged address space, servicing hits and faults against a fixed pool " +
			"of physical frames with an LRU global replacement policy.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(*opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Quota, "proc", "n", envInt("PAGESIM_PROC", defaultQuota),
		"total number of worker processes to launch")
	cmd.Flags().IntVarP(&opts.MaxSimul, "simul", "s", envInt("PAGESIM_SIMUL", defaultMaxSimul),
		"maximum number of worker processes to run simultaneously")
	cmd.Flags().IntVarP(&opts.IntervalMs, "interval", "i", envInt("PAGESIM_INTERVAL_MS", defaultIntervalMs),
		"time in milliseconds between launching successive workers")
	cmd.Flags().BoolVarP(&opts.LogToFile, "logfile", "f", false,
		"mirror console output to ossLog.txt")
	cmd.Flags().IntVar(&opts.MonitorPort, "monitor-port", 0,
		"port for the monitoring HTTP server (0 picks a random port)")
	cmd.Flags().StringVar(&opts.SQLitePath, "db", "pagesim.sqlite",
		"path to the SQLite database recording run statistics")
	cmd.Flags().StringVar(&opts.SocketPath, "socket", "/tmp/pagesim.sock",
		"unix domain socket path used when --net is set")
	cmd.Flags().BoolVar(&opts.UseNetChannel, "net", false,
		"run workers as separate OS processes connected over a unix socket, instead of goroutines")
	cmd.Flags().BoolVar(&opts.OpenBrowser, "open", false,
		"open the monitoring dashboard in a browser once the server starts")

	return cmd
}
