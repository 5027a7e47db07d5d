package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/hir"
	"github.com/sirkon/refguard/internal/tree"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <tree-file> <file> <offset>",
		Short: "Explain rule decisions at a source offset",
		Long: `Inspect finds the innermost node of the typed tree covering the byte offset
of the file and prints its type, the resolved callee of a call, and the
outcome of every rule visiting it.`,
		Args: cobra.ExactArgs(3),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	offset, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[2], err)
	}

	cfg, err := loadConfig(cmd, filepath.Dir(args[0]))
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

	crate, err := hir.Load(args[0])
	if err != nil {
		return err
	}
	x, err := crate.Index()
	if err != nil {
		return fmt.Errorf("index %s: %w", args[0], err)
	}

	n, ok := x.Spans().Lookup(args[1], offset)
	if !ok {
		return fmt.Errorf("no node covers %s at offset %d", args[1], offset)
	}

	w := cmd.OutOrStdout()
	rows := [][]string{
		{"node", n.Kind().String()},
		{"span", n.Span().String()},
	}
	if name := x.Oracle().TypeName(n); name != "" {
		rows = append(rows, []string{"type", name})
	}
	if shape, err := x.Oracle().ShapeOf(n); err != nil {
		rows = append(rows, []string{"shape", "error: " + err.Error()})
	} else {
		rows = append(rows, []string{"shape", shape.String()})
	}

	if call, ok := n.(tree.Call); ok && call.Callee() != nil {
		id, resolved, err := x.Resolver().Resolve(call.Callee())
		switch {
		case err != nil:
			rows = append(rows, []string{"callee", "error: " + err.Error()})
		case !resolved:
			rows = append(rows, []string{"callee", "unresolved"})
		default:
			callee := id.Path().String()
			if tag, ok := table.Lookup(id); ok {
				callee += " [" + tag.String() + "]"
			}
			rows = append(rows, []string{"callee", callee})
		}
	}

	for _, r := range reg.ForKind(n.Kind()) {
		out, err := r.Eval(n, x.Env())
		var verdict string
		switch o := out.(type) {
		case guard.Matched:
			verdict = "matched: " + o.Diagnosis.Summary
		case guard.NotMatched:
			verdict = "declined at " + o.Step
		}
		if err != nil {
			verdict = "error: " + err.Error()
		}
		rows = append(rows, []string{"rule " + r.Name, verdict})
	}

	writeColumns(w, rows)
	return nil
}
