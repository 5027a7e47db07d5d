package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/sirkon/refguard/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List shipped rules",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}

	cmd.Flags().Bool("doc", false, "print rule explanations")

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	withDoc, err := cmd.Flags().GetBool("doc")
	if err != nil {
		return fmt.Errorf("failed to get doc flag: %w", err)
	}

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
	reg, err := cfg.Registry(table)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, r := range rules.All(table) {
		state := "disabled"
		severity := r.Severity.String()
		if enabled, ok := reg.Lookup(r.Name); ok {
			state = "enabled"
			severity = enabled.Severity.String()
		}
		rows = append(rows, []string{r.Code.ID(), r.Name, r.Category.String(), severity, state})
	}

	w := cmd.OutOrStdout()
	writeColumns(w, rows)
	if !withDoc {
		return nil
	}

	for _, r := range rules.All(table) {
		fmt.Fprintf(w, "\n%s %s\n", r.Code.ID(), r.Name)
		for _, line := range strings.Split(strings.TrimSpace(r.Doc), "\n") {
			fmt.Fprintln(w, "   ", line)
		}
	}
	return nil
}

// writeColumns prints rows aligned by display width.
func writeColumns(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, b.String())
	}
}
