// Package telemetry accumulates and persists the end-of-run statistics of
// a pagesim Coordinator: reference and fault counts read from the
// coordinator's Stats, and a durable history of completed runs in SQLite.
package telemetry

import pagesim "github.com/oss6/pagesim"

// RunStats is a snapshot of one run's counters, taken once the coordinator
// reports Done.
type RunStats struct {
	Name        string
	Quota       int
	MaxSimul    int
	TotalRefs   uint64
	TotalFaults uint64
}

// HitRate returns the fraction of references that did not fault, or 0 if
// no references were observed.
func (s RunStats) HitRate() float64 {
	if s.TotalRefs == 0 {
		return 0
	}
	hits := s.TotalRefs - s.TotalFaults
	return float64(hits) / float64(s.TotalRefs)
}

// Collect reads c's current counters into a RunStats. Call it after
// c.Done() to capture the final tally.
func Collect(c *pagesim.Coordinator, cfg pagesim.Config) RunStats {
	refs, faults := c.Stats()
	return RunStats{
		Name:        c.Name(),
		Quota:       cfg.Quota,
		MaxSimul:    cfg.MaxSimul,
		TotalRefs:   refs,
		TotalFaults: faults,
	}
}
