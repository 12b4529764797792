package toolkit

import (
	"fmt"
	"strings"
)

// noShowCallCheck rejects scripts that open an interactive window. A .show()
// call blocks forever on a headless renderer, so it is caught before any
// process is spawned.
var noShowCallCheck = Check{
	Name: "no-show-call",
	Run: func(script string) error {
		for i, line := range strings.Split(script, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#") {
				continue
			}
			if strings.Contains(trimmed, ".show()") {
				return fmt.Errorf("line %d calls .show(), which blocks non-interactive rendering", i+1)
			}
		}
		return nil
	},
}

// graphvizGraphCheck requires a graph or digraph declaration; dot accepts an
// empty input but produces nothing useful from it.
var graphvizGraphCheck = Check{
	Name: "has-graph-declaration",
	Run: func(script string) error {
		if strings.Contains(script, "graph") {
			return nil
		}
		return fmt.Errorf("script contains no graph or digraph declaration")
	},
}
