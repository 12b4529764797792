package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/internal/config"
	"github.com/plotweave/plotweave/internal/document"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/walker"
)

type transformOptions struct {
	ConfigPath string
	Verbose    bool
	OutputPath string
	InputPath  string
}

var transformCmdRunner = runTransform

func newTransformCmd(root *rootFlags) *cobra.Command {
	opts := transformOptions{}

	cmd := &cobra.Command{
		Use:   "transform [document]",
		Short: "Render every figure block of a document and write the result",
		Long: "Reads a document (JSON block tree) from the given file or stdin, renders " +
			"every code block tagged with a known plotting toolkit, and writes the " +
			"transformed document to the output file or stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = root.configPath
			opts.Verbose = root.verbose
			if len(args) == 1 {
				opts.InputPath = args[0]
			}
			return transformCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Write the transformed document here instead of stdout")

	return cmd
}

func runTransform(cmd *cobra.Command, opts transformOptions) error {
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

	result := walker.Transform(context.Background(), cfg, log, doc)

	var out io.Writer = cmd.OutOrStdout()
	if opts.OutputPath != "" {
		f, err := os.Create(opts.OutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return result.Write(out)
}

func loadConfigAndLogger(configPath string, verbose bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
