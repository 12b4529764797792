package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/internal/cleanup"
	"github.com/plotweave/plotweave/internal/document"
)

type cleanOptions struct {
	ConfigPath string
	Verbose    bool
	InputPath  string
	DryRun     bool
}

func newCleanCmd(root *rootFlags) *cobra.Command {
	opts := cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [document]",
		Short: "Delete every output directory the document references",
		Long: "Resolves the figure specification of every candidate block without " +
			"executing anything, then recursively deletes each referenced output " +
			"directory. This removes the entire directory contents.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = root.configPath
			opts.Verbose = root.verbose
			if len(args) == 1 {
				opts.InputPath = args[0]
			}
			return runClean(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List directories without deleting them")

	return cmd
}

func runClean(cmd *cobra.Command, opts cleanOptions) error {
	cfg, log, err := loadConfigAndLogger(opts.ConfigPath, opts.Verbose)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.InputPath != "" {
		f, err := os.Open(opts.InputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	doc, err := document.Read(in)
	if err != nil {
		return err
	}

	var dirs []string
	if opts.DryRun {
		dirs = cleanup.OutputDirectories(cfg, log, doc)
	} else {
		dirs = cleanup.Clean(cfg, log, doc)
	}

	for _, dir := range dirs {
		fmt.Fprintln(cmd.OutOrStdout(), dir)
	}
	return nil
}
