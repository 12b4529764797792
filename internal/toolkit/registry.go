package toolkit

import (
	"fmt"
	"sort"
)

// OutputSpec carries the resolved paths and rendering parameters one script
// execution needs. It is owned by a single runner invocation and never
// retained past it.
type OutputSpec struct {
	ScriptPath string
	FigurePath string
	Format     Format
	DPI        int
}

// Check is one static validation applied to the raw script text before any
// process is spawned.
type Check struct {
	Name string
	Run  func(script string) error
}

// Capabilities is the capability record for one toolkit: everything the rest
// of the filter needs to know about it. Adding a toolkit means adding one
// entry to the registry below; no other component changes.
type Capabilities struct {
	Name        Toolkit
	DisplayName string
	// Extension is the script file extension, without a dot.
	Extension string
	// Language is the chroma lexer name for source-page highlighting.
	Language string
	// Executable is the default executable name, overridable per config.
	Executable string
	// Command builds the argv for one execution.
	Command func(out OutputSpec, exe string) []string
	// CaptureCode produces the toolkit code that serializes the current
	// figure to out.FigurePath. Appended to the user script, or prepended
	// when CaptureFirst is set (gnuplot must select its terminal before
	// any plot command runs).
	CaptureCode  func(out OutputSpec) string
	CaptureFirst bool
	// Checks run in order against the raw script text; the first failure
	// aborts the block before any spawn.
	Checks  []Check
	Formats []Format
}

// SupportsFormat reports whether the toolkit can save the given format.
func (c Capabilities) SupportsFormat(f Format) bool {
	for _, supported := range c.Formats {
		if supported == f {
			return true
		}
	}
	return false
}

var registry = map[Toolkit]Capabilities{
	Matplotlib: {
		Name:        Matplotlib,
		DisplayName: "Matplotlib",
		Extension:   "py",
		Language:    "python",
		Executable:  "python3",
		Command:     scriptOnlyCommand,
		CaptureCode: func(out OutputSpec) string {
			return fmt.Sprintf("\nimport matplotlib.pyplot\nmatplotlib.pyplot.savefig(%q, dpi=%d)\n", out.FigurePath, out.DPI)
		},
		Checks:  []Check{noShowCallCheck},
		Formats: []Format{PNG, PDF, SVG, JPG, EPS, GIF, TIFF, WEBP},
	},
	Plotly: {
		Name:        Plotly,
		DisplayName: "Plotly",
		Extension:   "py",
		Language:    "python",
		Executable:  "python3",
		Command:     scriptOnlyCommand,
		// The user script must leave its figure in a variable named fig.
		CaptureCode: func(out OutputSpec) string {
			if out.Format.Interactive() {
				return fmt.Sprintf("\nimport plotly.io\nplotly.io.write_html(fig, %q)\n", out.FigurePath)
			}
			return fmt.Sprintf("\nimport plotly.io\nplotly.io.write_image(fig, %q)\n", out.FigurePath)
		},
		Checks:  []Check{noShowCallCheck},
		Formats: []Format{PNG, PDF, SVG, JPG, WEBP, HTML},
	},
	GNUPlot: {
		Name:        GNUPlot,
		DisplayName: "gnuplot",
		Extension:   "gp",
		Language:    "gnuplot",
		Executable:  "gnuplot",
		Command:     scriptOnlyCommand,
		CaptureCode: func(out OutputSpec) string {
			return fmt.Sprintf("set terminal %s\nset output %q\n", gnuplotTerminal(out.Format), out.FigurePath)
		},
		CaptureFirst: true,
		Formats:      []Format{PNG, PDF, SVG, JPG, EPS, GIF},
	},
	Graphviz: {
		Name:        Graphviz,
		DisplayName: "Graphviz",
		Extension:   "dot",
		Language:    "dot",
		Executable:  "dot",
		Command: func(out OutputSpec, exe string) []string {
			return []string{
				exe,
				"-T" + out.Format.Extension(),
				fmt.Sprintf("-Gdpi=%d", out.DPI),
				"-o", out.FigurePath,
				out.ScriptPath,
			}
		},
		// dot writes the output itself, no capture code needed.
		CaptureCode: func(OutputSpec) string { return "" },
		Checks:      []Check{graphvizGraphCheck},
		Formats:     []Format{PNG, PDF, SVG, JPG, GIF, WEBP},
	},
	Octave: {
		Name:        Octave,
		DisplayName: "GNU Octave",
		Extension:   "m",
		Language:    "octave",
		Executable:  "octave",
		Command: func(out OutputSpec, exe string) []string {
			return []string{exe, "--no-gui", "--norc", out.ScriptPath}
		},
		CaptureCode: func(out OutputSpec) string {
			return fmt.Sprintf("\nsaveas(gcf, %q);\n", out.FigurePath)
		},
		Formats: []Format{PNG, PDF, SVG, JPG, EPS, GIF, TIFF},
	},
	GGPlot2: {
		Name:        GGPlot2,
		DisplayName: "ggplot2",
		Extension:   "r",
		Language:    "r",
		Executable:  "Rscript",
		Command:     scriptOnlyCommand,
		CaptureCode: func(out OutputSpec) string {
			return fmt.Sprintf("\nggplot2::ggsave(%q, dpi = %d)\n", out.FigurePath, out.DPI)
		},
		Formats: []Format{PNG, PDF, SVG, JPG, EPS, TIFF},
	},
}

func scriptOnlyCommand(out OutputSpec, exe string) []string {
	return []string{exe, out.ScriptPath}
}

func gnuplotTerminal(f Format) string {
	switch f {
	case PNG:
		return "pngcairo"
	case PDF:
		return "pdfcairo"
	case JPG:
		return "jpeg"
	case EPS:
		return "epscairo"
	default:
		return string(f)
	}
}

// Lookup retrieves the capability record for a toolkit.
func Lookup(tk Toolkit) (Capabilities, bool) {
	caps, ok := registry[tk]
	return caps, ok
}

// All returns every registered toolkit in stable order.
func All() []Toolkit {
	out := make([]Toolkit, 0, len(registry))
	for tk := range registry {
		out = append(out, tk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
