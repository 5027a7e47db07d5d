package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sirkon/refguard/internal/hir"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a typed tree between formats",
		Long:  `Convert reads a typed tree and writes it in the format given by the output extension.`,
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	crate, err := hir.Load(args[0])
	if err != nil {
		return err
	}
	// Broken trees are not worth converting.
	if _, err := crate.Index(); err != nil {
		return err
	}

	if err := hir.Save(args[1], crate); err != nil {
		return err
	}

	logger.Debug("tree converted", slog.String("from", args[0]), slog.String("to", args[1]), slog.Int("units", len(crate.Units)))
	return nil
}
