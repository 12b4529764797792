package toolkit

import (
	"fmt"
	"strings"
)

// Toolkit identifies one supported external plotting ecosystem. The set is
// closed: the registry in this package is the only place a new toolkit is
// added.
type Toolkit string

const (
	Matplotlib Toolkit = "matplotlib"
	Plotly     Toolkit = "plotly"
	GNUPlot    Toolkit = "gnuplot"
	Graphviz   Toolkit = "graphviz"
	Octave     Toolkit = "octave"
	GGPlot2    Toolkit = "ggplot2"
)

// Format is an image save format.
type Format string

const (
	PNG  Format = "png"
	PDF  Format = "pdf"
	SVG  Format = "svg"
	JPG  Format = "jpg"
	EPS  Format = "eps"
	GIF  Format = "gif"
	TIFF Format = "tiff"
	WEBP Format = "webp"
	// HTML is the interactive format: the artifact is an HTML payload
	// embedded into the document instead of referenced as an image.
	HTML Format = "html"
)

var formats = map[Format]struct{}{
	PNG: {}, PDF: {}, SVG: {}, JPG: {}, EPS: {}, GIF: {}, TIFF: {}, WEBP: {}, HTML: {},
}

// ParseFormat normalises and validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpeg" {
		f = JPG
	}
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("unknown image format %q", s)
	}
	return f, nil
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Interactive reports whether the format embeds an HTML payload rather than
// referencing an image file.
func (f Format) Interactive() bool {
	return f == HTML
}

// FromClasses returns the toolkit named by a block's class tags, if any. The
// first class naming a known toolkit wins.
func FromClasses(classes []string) (Toolkit, bool) {
	for _, class := range classes {
		tk := Toolkit(strings.ToLower(class))
		if _, ok := registry[tk]; ok {
			return tk, true
		}
	}
	return "", false
}
