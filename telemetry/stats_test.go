package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oss6/pagesim/telemetry"
)

func TestRunStatsHitRate(t *testing.T) {
	s := telemetry.RunStats{TotalRefs: 100, TotalFaults: 25}
	require.InDelta(t, 0.75, s.HitRate(), 1e-9)
}

func TestRunStatsHitRateWithNoReferencesIsZero(t *testing.T) {
	s := telemetry.RunStats{}
	require.Equal(t, 0.0, s.HitRate())
}
