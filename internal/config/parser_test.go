package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plotweave/plotweave/internal/toolkit"
	weaveerrors "github.com/plotweave/plotweave/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plotweave.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
parallel: true
matplotlib:
  directory: figures/mpl
  dpi: 150
`)

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.Parallel)
	require.Equal(t, "figures/mpl", cfg.Matplotlib.Directory)
	require.Equal(t, 150, cfg.Matplotlib.DPI)

	// Untouched fields keep the built-in defaults.
	require.Equal(t, FallbackDirectory, cfg.Defaults.Directory)
	require.Equal(t, FallbackDPI, cfg.Defaults.DPI)
	require.Equal(t, FallbackCaptionFormat, cfg.CaptionFormat)
}

func TestParseConfigRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
defaults:
  format: bmp
`)

	_, err := ParseConfig(path)
	var validationErr *weaveerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseConfigRejectsFormatUnsupportedByToolkit(t *testing.T) {
	t.Parallel()

	// gnuplot has no interactive HTML terminal.
	path := writeConfig(t, `
gnuplot:
  format: html
`)

	_, err := ParseConfig(path)
	var validationErr *weaveerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Field, "gnuplot")
}

func TestParseConfigRejectsBadDPI(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
defaults:
  dpi: -3
`)

	_, err := ParseConfig(path)
	var validationErr *weaveerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseConfigRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "log_level: shout\n")

	_, err := ParseConfig(path)
	var validationErr *weaveerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseConfigMissingFileIsParseError(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yml"))
	var parseErr *weaveerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseConfigReportsYAMLLine(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "defaults:\n  dpi: [\n")

	_, err := ParseConfig(path)
	var parseErr *weaveerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestToolkitSectionLookup(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Octave.Executable = "/opt/octave/bin/octave"

	require.Equal(t, "/opt/octave/bin/octave", cfg.Toolkit(toolkit.Octave).Executable)
	require.Equal(t, ToolkitConfig{}, cfg.Toolkit(toolkit.GNUPlot))
}
