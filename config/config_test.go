package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pagesim "github.com/oss6/pagesim"
	"github.com/oss6/pagesim/config"
)

func TestOptionsValidateRejectsQuotaOutOfRange(t *testing.T) {
	opts := config.Options{Quota: 0, MaxSimul: 1}
	err := opts.Validate()
	require.Error(t, err)
	require.Equal(t, pagesim.ErrConfig, err.(*pagesim.Fault).Kind)

	opts.Quota = 101
	require.Error(t, opts.Validate())
}

func TestOptionsValidateRejectsMaxSimulAboveMaxProc(t *testing.T) {
	opts := config.Options{Quota: 1, MaxSimul: pagesim.MaxProc + 1}
	require.Error(t, opts.Validate())
}

func TestOptionsValidateAcceptsBoundaryValues(t *testing.T) {
	opts := config.Options{Quota: 100, MaxSimul: pagesim.MaxProc, IntervalMs: 0}
	require.NoError(t, opts.Validate())
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnvAppliesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAGESIM_PROC=42\n"), 0o644))

	require.NoError(t, config.LoadDotEnv(path))
	require.Equal(t, "42", os.Getenv("PAGESIM_PROC"))
}
