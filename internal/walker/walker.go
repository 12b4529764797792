package walker

import (
	"context"
	"runtime"
	"sync"

	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/render"
	"github.com/plotweave/plotweave/internal/toolkit"
)

type candidate struct {
	index   int
	toolkit toolkit.Toolkit
}

// Transform applies figure rendering to every candidate block of the
// document. Non-candidate blocks pass through verbatim, failed candidates are
// replaced by themselves plus a diagnostic, and the output block order always
// equals the input order regardless of worker scheduling. Transform never
// fails as a whole because one figure failed.
func Transform(ctx context.Context, cfg *config.Config, log *logger.Logger, doc *document.Document) *document.Document {
	out := make([]document.Block, len(doc.Blocks))
	copy(out, doc.Blocks)

	var candidates []candidate
	for i, blk := range doc.Blocks {
		if blk.Type != document.CodeBlock {
			continue
		}
		if tk, ok := toolkit.FromClasses(blk.Classes); ok {
			candidates = append(candidates, candidate{index: i, toolkit: tk})
		}
	}
	if len(candidates) == 0 {
		return &document.Document{Blocks: out}
	}

	renderer := render.New(cfg, log)

	workers := 1
	if cfg.Parallel {
		workers = runtime.GOMAXPROCS(0)
		if workers > len(candidates) {
			workers = len(candidates)
		}
	}

	if workers <= 1 {
		for _, c := range candidates {
			out[c.index] = renderer.RenderOneBlock(ctx, c.toolkit, doc.Blocks[c.index])
		}
		return &document.Document{Blocks: out}
	}

	// Partitioned assignment: each worker owns a contiguous, disjoint slice
	// of the candidate list and writes results into its own slots of out, so
	// no result synchronization is needed and input order is preserved by
	// construction.
	var wg sync.WaitGroup
	chunk := (len(candidates) + workers - 1) / workers
	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}

		wg.Add(1)
		go func(part []candidate) {
			defer wg.Done()
			for _, c := range part {
				out[c.index] = renderer.RenderOneBlock(ctx, c.toolkit, doc.Blocks[c.index])
			}
		}(candidates[start:end])
	}
	wg.Wait()

	return &document.Document{Blocks: out}
}
