package config

import (
	"github.com/plotweave/plotweave/internal/toolkit"
)

// Config is the full filter configuration. All lookups are resolved here,
// before any figure specification is built; nothing downstream reads the
// environment or the configuration file again.
type Config struct {
	LogLevel      string `yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	Parallel      bool   `yaml:"parallel,omitempty"`
	CaptionFormat string `yaml:"caption_format,omitempty" validate:"omitempty,oneof=markdown html plain"`

	Defaults Defaults `yaml:"defaults,omitempty"`

	Matplotlib ToolkitConfig `yaml:"matplotlib,omitempty"`
	Plotly     ToolkitConfig `yaml:"plotly,omitempty"`
	GNUPlot    ToolkitConfig `yaml:"gnuplot,omitempty"`
	Graphviz   ToolkitConfig `yaml:"graphviz,omitempty"`
	Octave     ToolkitConfig `yaml:"octave,omitempty"`
	GGPlot2    ToolkitConfig `yaml:"ggplot2,omitempty"`
}

// Defaults holds the global fallbacks applied when neither the block nor the
// toolkit section sets a value.
type Defaults struct {
	Directory  string `yaml:"directory,omitempty"`
	Format     string `yaml:"format,omitempty" validate:"omitempty,figformat"`
	DPI        int    `yaml:"dpi,omitempty" validate:"omitempty,min=1,max=2400"`
	WithSource bool   `yaml:"with_source,omitempty"`
}

// ToolkitConfig holds per-toolkit overrides.
type ToolkitConfig struct {
	Directory  string   `yaml:"directory,omitempty"`
	Format     string   `yaml:"format,omitempty" validate:"omitempty,figformat"`
	DPI        int      `yaml:"dpi,omitempty" validate:"omitempty,min=1,max=2400"`
	WithSource *bool    `yaml:"with_source,omitempty"`
	Preamble   string   `yaml:"preamble,omitempty"`
	Executable string   `yaml:"executable,omitempty"`
	ProbeDirs  []string `yaml:"probe_dirs,omitempty"`
}

// Hard-coded fallbacks, used when the configuration file sets nothing.
const (
	FallbackDirectory     = "plotweave-output"
	FallbackFormat        = "png"
	FallbackDPI           = 80
	FallbackCaptionFormat = "markdown"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		CaptionFormat: FallbackCaptionFormat,
		Defaults: Defaults{
			Directory: FallbackDirectory,
			Format:    FallbackFormat,
			DPI:       FallbackDPI,
		},
	}
}

// Toolkit returns the configuration section for the given toolkit.
func (c *Config) Toolkit(tk toolkit.Toolkit) ToolkitConfig {
	switch tk {
	case toolkit.Matplotlib:
		return c.Matplotlib
	case toolkit.Plotly:
		return c.Plotly
	case toolkit.GNUPlot:
		return c.GNUPlot
	case toolkit.Graphviz:
		return c.Graphviz
	case toolkit.Octave:
		return c.Octave
	case toolkit.GGPlot2:
		return c.GGPlot2
	default:
		return ToolkitConfig{}
	}
}
