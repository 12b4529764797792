package render

import (
	"context"
	"fmt"
	"html"

	"github.com/plotweave/plotweave/internal/caption"
	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/figure"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/runner"
	"github.com/plotweave/plotweave/internal/toolkit"
)

// Renderer turns one candidate code block into a figure block. It delegates
// spec resolution to the figure package and execution to the runner, and owns
// only the reconciliation of the result back into a document block.
type Renderer struct {
	cfg    *config.Config
	log    *logger.Logger
	runner *runner.Runner
}

// New creates a Renderer.
func New(cfg *config.Config, log *logger.Logger) *Renderer {
	return &Renderer{cfg: cfg, log: log, runner: runner.New(log)}
}

// RenderBlock renders the figure for a candidate block and returns its
// replacement. On any failure the original block is returned alongside the
// error; the caller decides how to surface it.
func (r *Renderer) RenderBlock(ctx context.Context, tk toolkit.Toolkit, blk document.Block) (document.Block, error) {
	spec, err := figure.Resolve(tk, r.cfg, blk)
	if err != nil {
		return blk, err
	}

	if _, err := r.runner.RunIfNeeded(ctx, spec); err != nil {
		return blk, err
	}

	// The source page is a best-effort side artifact: its failure is logged
	// and never joined with the figure's own verdict.
	if spec.WithSource {
		if err := writeSourcePage(spec); err != nil {
			r.log.WithFields(map[string]any{"path": spec.SourcePath()}).Error(err, "could not write source page")
		}
	}

	captionHTML, err := caption.Render(r.cfg.CaptionFormat, spec.Caption)
	if err != nil {
		r.log.Error(err, "could not render caption, falling back to plain text")
		captionHTML = html.EscapeString(spec.Caption)
	}
	if spec.WithSource {
		captionHTML += fmt.Sprintf(" (<a href=%q>source</a>)", spec.SourcePath())
	}

	if spec.Format.Interactive() {
		return document.Block{
			Type: document.RawHTML,
			Text: fmt.Sprintf(
				"<figure>\n<iframe src=%q frameborder=\"0\"></iframe>\n<figcaption>%s</figcaption>\n</figure>",
				spec.FigurePath(), captionHTML,
			),
			Attrs: spec.BlockAttrs,
		}, nil
	}

	return document.Block{
		Type:        document.Figure,
		Target:      spec.FigurePath(),
		CaptionHTML: captionHTML,
		Attrs:       spec.BlockAttrs,
	}, nil
}

// RenderOneBlock is the never-fails boundary: failures degrade to the
// unchanged input block plus a log line.
func (r *Renderer) RenderOneBlock(ctx context.Context, tk toolkit.Toolkit, blk document.Block) document.Block {
	out, err := r.RenderBlock(ctx, tk, blk)
	if err != nil {
		r.log.WithFields(map[string]any{"toolkit": string(tk)}).Error(err, "figure not rendered, block left unchanged")
		return blk
	}
	return out
}
