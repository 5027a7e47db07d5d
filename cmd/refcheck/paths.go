package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the canonical path table",
		Long:  `Paths prints predefined canonical paths merged with the configured ones, with their tags.`,
		Args:  cobra.NoArgs,
		RunE:  runPaths,
	}
}

func runPaths(cmd *cobra.Command, _ []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, e := range table.Entries() {
		rows = append(rows, []string{e.Tag.String(), e.Path.String()})
	}
	writeColumns(cmd.OutOrStdout(), rows)
	return nil
}
