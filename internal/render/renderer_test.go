package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/figure"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/toolkit"
	weaveerrors "github.com/plotweave/plotweave/pkg/errors"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error", Writer: os.Stderr})
	require.NoError(t, err)
	return log
}

// stubConfig wires the matplotlib toolkit to a shell stub that reports
// success without doing anything; the runner only checks the exit code.
func stubConfig(t *testing.T) *config.Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell stubs do not run on Windows")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stub-toolkit"), []byte("#!/bin/sh\nexit 0\n"), 0o755))

	cfg := config.Default()
	cfg.Defaults.Directory = filepath.Join(t.TempDir(), "out")
	cfg.Matplotlib.Executable = "stub-toolkit"
	cfg.Matplotlib.ProbeDirs = []string{dir}
	return cfg
}

func candidateBlock(attrs map[string]string) document.Block {
	return document.Block{
		Type:    document.CodeBlock,
		Text:    "plot(1)",
		Classes: []string{"matplotlib"},
		Attrs:   attrs,
	}
}

func TestRenderBlockProducesFigure(t *testing.T) {
	cfg := stubConfig(t)
	r := New(cfg, testLogger(t))

	out, err := r.RenderBlock(context.Background(), toolkit.Matplotlib, candidateBlock(map[string]string{
		"caption": "A *fine* figure",
	}))
	require.NoError(t, err)

	require.Equal(t, document.Figure, out.Type)
	require.Equal(t, cfg.Defaults.Directory, filepath.Dir(out.Target))
	require.Equal(t, "A <em>fine</em> figure", out.CaptionHTML)
}

func TestRenderBlockPropagatesUnclaimedAttrs(t *testing.T) {
	cfg := stubConfig(t)
	r := New(cfg, testLogger(t))

	out, err := r.RenderBlock(context.Background(), toolkit.Matplotlib, candidateBlock(map[string]string{
		"width": "80%",
	}))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"width": "80%"}, out.Attrs)
}

func TestRenderBlockWritesSourcePage(t *testing.T) {
	cfg := stubConfig(t)
	r := New(cfg, testLogger(t))

	blk := candidateBlock(map[string]string{"caption": "plotted", "source": "true"})
	out, err := r.RenderBlock(context.Background(), toolkit.Matplotlib, blk)
	require.NoError(t, err)

	spec, err := figure.Resolve(toolkit.Matplotlib, cfg, blk)
	require.NoError(t, err)

	page, err := os.ReadFile(spec.SourcePath())
	require.NoError(t, err)
	require.Contains(t, string(page), "plot(1)")
	require.Contains(t, out.CaptionHTML, fmt.Sprintf("<a href=%q>source</a>", spec.SourcePath()))
}

func TestRenderBlockInteractiveFormatEmbedsHTML(t *testing.T) {
	cfg := stubConfig(t)
	cfg.Plotly.Executable = cfg.Matplotlib.Executable
	cfg.Plotly.ProbeDirs = cfg.Matplotlib.ProbeDirs

	r := New(cfg, testLogger(t))

	blk := document.Block{
		Type:    document.CodeBlock,
		Text:    "fig = px.line(x=[1], y=[1])",
		Classes: []string{"plotly"},
		Attrs:   map[string]string{"format": "html", "caption": "interactive"},
	}

	out, err := r.RenderBlock(context.Background(), toolkit.Plotly, blk)
	require.NoError(t, err)
	require.Equal(t, document.RawHTML, out.Type)
	require.Contains(t, out.Text, "<iframe src=")
	require.Contains(t, out.Text, "<figcaption>interactive</figcaption>")
}

func TestRenderBlockSpecFailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	r := New(config.Default(), testLogger(t))

	blk := candidateBlock(map[string]string{"dpi": "ninety"})
	out, err := r.RenderBlock(context.Background(), toolkit.Matplotlib, blk)

	var specErr *weaveerrors.SpecError
	require.ErrorAs(t, err, &specErr)
	require.Equal(t, blk, out)
}

func TestRenderOneBlockNeverFails(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Defaults.Directory = filepath.Join(t.TempDir(), "out")
	cfg.Matplotlib.Executable = "plotweave-no-such-toolkit"
	r := New(cfg, testLogger(t))

	blk := candidateBlock(nil)
	out := r.RenderOneBlock(context.Background(), toolkit.Matplotlib, blk)
	require.Equal(t, blk, out)
}
