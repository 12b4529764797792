package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/internal/toolkit"
)

var (
	availableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	unavailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	nameStyle        = lipgloss.NewStyle().Bold(true).Width(14)
)

func newToolkitsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolkits",
		Short: "List supported toolkits and whether their executables resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfigAndLogger(root.configPath, root.verbose)
			if err != nil {
				return err
			}

			for _, tk := range toolkit.All() {
				caps, _ := toolkit.Lookup(tk)
				section := cfg.Toolkit(tk)

				status := unavailableStyle.Render("not found")
				if dir, name, ok := caps.Probe(section.Executable, section.ProbeDirs); ok {
					status = availableStyle.Render("available") + fmt.Sprintf(" (%s in %s)", name, dir)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", nameStyle.Render(caps.DisplayName), status)
			}
			return nil
		},
	}

	return cmd
}
