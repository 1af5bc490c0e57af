package telemetry_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oss6/pagesim/telemetry"
)

func TestSQLiteRecorderRecordThenFlushDoesNotPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")

	rec, err := telemetry.NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	rec.Record(telemetry.RunStats{Name: "test", Quota: 10, MaxSimul: 4, TotalRefs: 500, TotalFaults: 40})
	require.NotPanics(t, rec.Flush)
}

func TestSQLiteRecorderFlushWithNothingPendingIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")

	rec, err := telemetry.NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	require.NotPanics(t, rec.Flush)
}
