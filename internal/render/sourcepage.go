package render

import (
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/plotweave/plotweave/internal/figure"
	"github.com/plotweave/plotweave/internal/toolkit"
)

// writeSourcePage writes a standalone, syntax-highlighted HTML rendering of
// the figure's script next to the artifact.
func writeSourcePage(spec *figure.Spec) error {
	caps, _ := toolkit.Lookup(spec.Toolkit)

	lexer := lexers.Get(caps.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("friendly")
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.Standalone(true), chromahtml.WithLineNumbers(true))

	iterator, err := lexer.Tokenise(nil, spec.Script)
	if err != nil {
		return err
	}

	f, err := os.Create(spec.SourcePath())
	if err != nil {
		return err
	}
	defer f.Close()

	return formatter.Format(f, style, iterator)
}
