package figure

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/toolkit"
	weaveerrors "github.com/plotweave/plotweave/pkg/errors"
)

// Dependency is a file whose content affects the render and therefore joins
// the cache key. Content is read eagerly at spec-build time so the hash sees
// the bytes as they were when the spec was resolved.
type Dependency struct {
	Path    string
	Content []byte
}

// Spec is the fully-resolved, immutable specification for one figure. It is
// built fresh per block per run and never cached across runs; the filesystem
// is the only persisted state.
type Spec struct {
	Toolkit    toolkit.Toolkit
	Script     string
	Caption    string
	WithSource bool
	Directory  string
	Format     toolkit.Format
	DPI        int

	// Preamble is the content of the configured preamble file, prepended to
	// the script at execution time. When present it is also the first entry
	// of Dependencies.
	Preamble     string
	Dependencies []Dependency

	// ExtraAttrs are unclaimed block attributes; they participate in the
	// content hash. BlockAttrs are propagated onto the emitted figure block.
	ExtraAttrs map[string]string
	BlockAttrs map[string]string

	// Execution parameters, not part of the content hash.
	Executable string
	ProbeDirs  []string
}

// Attribute names claimed by the filter; anything else lands in ExtraAttrs.
const (
	attrCaption      = "caption"
	attrDirectory    = "directory"
	attrFormat       = "format"
	attrDPI          = "dpi"
	attrWithSource   = "source"
	attrPreamble     = "preamble"
	attrDependencies = "dependencies"
)

// Resolve builds the figure specification for a candidate block. Resolution
// order for every attribute: block attribute, then the toolkit's config
// section, then the global defaults, then the hard-coded fallback. A
// malformed attribute or unreadable dependency fails this block only.
func Resolve(tk toolkit.Toolkit, cfg *config.Config, blk document.Block) (*Spec, error) {
	caps, ok := toolkit.Lookup(tk)
	if !ok {
		return nil, weaveerrors.NewSpecError("", fmt.Sprintf("unknown toolkit %q", tk), nil)
	}

	section := cfg.Toolkit(tk)

	spec := &Spec{
		Toolkit:    tk,
		Script:     blk.Text,
		Directory:  resolveString(blk, attrDirectory, section.Directory, cfg.Defaults.Directory, config.FallbackDirectory),
		Executable: section.Executable,
		ProbeDirs:  section.ProbeDirs,
		ExtraAttrs: map[string]string{},
		BlockAttrs: map[string]string{},
	}

	spec.Caption, _ = blk.Attr(attrCaption)

	formatName := resolveString(blk, attrFormat, section.Format, cfg.Defaults.Format, config.FallbackFormat)
	format, err := toolkit.ParseFormat(formatName)
	if err != nil {
		return nil, weaveerrors.NewSpecError(attrFormat, err.Error(), err)
	}
	if !caps.SupportsFormat(format) {
		return nil, weaveerrors.NewSpecError(attrFormat, fmt.Sprintf("%s cannot save %s", caps.DisplayName, format), nil)
	}
	spec.Format = format

	spec.DPI, err = resolveDPI(blk, section.DPI, cfg.Defaults.DPI)
	if err != nil {
		return nil, err
	}

	spec.WithSource, err = resolveWithSource(blk, section.WithSource, cfg.Defaults.WithSource)
	if err != nil {
		return nil, err
	}

	preamblePath := section.Preamble
	if v, ok := blk.Attr(attrPreamble); ok {
		preamblePath = v
	}
	if preamblePath != "" {
		content, err := os.ReadFile(preamblePath)
		if err != nil {
			return nil, weaveerrors.NewSpecError(attrPreamble, fmt.Sprintf("cannot read preamble %s", preamblePath), err)
		}
		spec.Preamble = string(content)
		spec.Dependencies = append(spec.Dependencies, Dependency{Path: preamblePath, Content: content})
	}

	if v, ok := blk.Attr(attrDependencies); ok {
		for _, path := range strings.Split(v, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, weaveerrors.NewSpecError(attrDependencies, fmt.Sprintf("cannot read dependency %s", path), err)
			}
			spec.Dependencies = append(spec.Dependencies, Dependency{Path: path, Content: content})
		}
	}

	claimed := map[string]struct{}{
		attrCaption: {}, attrDirectory: {}, attrFormat: {}, attrDPI: {},
		attrWithSource: {}, attrPreamble: {}, attrDependencies: {},
	}
	for key, value := range blk.Attrs {
		if _, ok := claimed[key]; ok {
			continue
		}
		spec.ExtraAttrs[key] = value
		spec.BlockAttrs[key] = value
	}

	return spec, nil
}

func resolveString(blk document.Block, attr, sectionValue, defaultValue, fallback string) string {
	if v, ok := blk.Attr(attr); ok {
		return v
	}
	if sectionValue != "" {
		return sectionValue
	}
	if defaultValue != "" {
		return defaultValue
	}
	return fallback
}

func resolveDPI(blk document.Block, sectionValue, defaultValue int) (int, error) {
	if v, ok := blk.Attr(attrDPI); ok {
		dpi, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || dpi <= 0 {
			return 0, weaveerrors.NewSpecError(attrDPI, fmt.Sprintf("not a positive integer: %q", v), err)
		}
		return dpi, nil
	}
	if sectionValue > 0 {
		return sectionValue, nil
	}
	if defaultValue > 0 {
		return defaultValue, nil
	}
	return config.FallbackDPI, nil
}

func resolveWithSource(blk document.Block, sectionValue *bool, defaultValue bool) (bool, error) {
	if v, ok := blk.Attr(attrWithSource); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, weaveerrors.NewSpecError(attrWithSource, fmt.Sprintf("not a boolean: %q", v), err)
		}
		return parsed, nil
	}
	if sectionValue != nil {
		return *sectionValue, nil
	}
	return defaultValue, nil
}
