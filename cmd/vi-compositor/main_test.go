package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestResolveAppliesChangedFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("border = \"box\"\nlog_level = \"warn\"\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--run-for", "2s", "--log-level", "debug"}))

	o := optionsOf(t, cmd)
	cfg, err := o.resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, cfg.RunFor.Duration)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "box", cfg.Border, "unset flag keeps the file value")
	require.Equal(t, "vi-compositor.log", cfg.LogFile)
}

func TestResolveRejectsBadFlag(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--border", "double"}))
	_, err := optionsOf(t, cmd).resolve(cmd)
	require.Error(t, err)
}

// optionsOf rebuilds the options bound to cmd's flags
func optionsOf(t *testing.T, cmd *cobra.Command) *options {
	t.Helper()
	f := cmd.Flags()
	o := &options{}
	var err error
	o.configPath, err = f.GetString("config")
	require.NoError(t, err)
	o.runFor, err = f.GetDuration("run-for")
	require.NoError(t, err)
	o.logFile, err = f.GetString("log-file")
	require.NoError(t, err)
	o.logLevel, err = f.GetString("log-level")
	require.NoError(t, err)
	o.border, err = f.GetString("border")
	require.NoError(t, err)
	o.metricsAddr, err = f.GetString("metrics-addr")
	require.NoError(t, err)
	return o
}
