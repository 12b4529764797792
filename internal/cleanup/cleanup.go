package cleanup

import (
	"os"
	"sort"

	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/figure"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/toolkit"
)

// OutputDirectories walks the document purely to discover which output
// directories its candidate blocks reference, without executing anything.
// Blocks whose spec cannot be resolved are skipped with a diagnostic.
func OutputDirectories(cfg *config.Config, log *logger.Logger, doc *document.Document) []string {
	seen := map[string]struct{}{}
	for _, blk := range doc.Blocks {
		if blk.Type != document.CodeBlock {
			continue
		}
		tk, ok := toolkit.FromClasses(blk.Classes)
		if !ok {
			continue
		}
		spec, err := figure.Resolve(tk, cfg, blk)
		if err != nil {
			log.WithFields(map[string]any{"toolkit": string(tk)}).Warn("skipping unresolvable block: " + err.Error())
			continue
		}
		seen[spec.Directory] = struct{}{}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Clean recursively deletes every output directory the document references
// and returns the list of removed paths. This is deliberately destructive: it
// removes the entire directory contents, not just generated figures.
func Clean(cfg *config.Config, log *logger.Logger, doc *document.Document) []string {
	var removed []string
	for _, dir := range OutputDirectories(cfg, log, doc) {
		if err := os.RemoveAll(dir); err != nil {
			log.Error(err, "could not remove "+dir)
			continue
		}
		removed = append(removed, dir)
	}
	return removed
}
