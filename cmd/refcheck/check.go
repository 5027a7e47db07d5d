package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/gohost"
	"github.com/sirkon/refguard/internal/hir"
	"github.com/sirkon/refguard/internal/session"
	"github.com/sirkon/refguard/internal/version"
	"github.com/sirkon/refguard/internal/visit"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <tree-file|file.go>...",
		Short: "Analyze typed trees or Go sources",
		Long: `Check runs enabled rules over every unit of the inputs.

Typed trees are read from .json, .yaml and .msgpack files. Single Go files
are type checked against compiled packages and analyzed as well.
Exit status is 1 when any error severity diagnostic was made.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().String("format", "", "output format (text|pretty|json|sarif|yaml), taken from config when empty")
	cmd.Flags().IntP("jobs", "j", 0, "units analyzed at once, 0 means the number of CPUs")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, filepath.Dir(args[0]))
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if formatFlag != "" {
		if err := format.UnmarshalText([]byte(formatFlag)); err != nil {
			return fmt.Errorf("invalid format flag: %w", err)
		}
	}

	jobs := cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	color, err := useColor(cmd, cfg)
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
	ignore, err := cfg.Matcher()
	if err != nil {
		return err
	}

	c := &checker{
		visitor: visit.New(reg, logger),
		opts: session.Options{
			Jobs:   jobs,
			Ignore: ignore,
			Logger: logger,
		},
		logger:  logger,
		sources: map[string][]byte{},
	}
	for _, arg := range args {
		if err := c.check(cmd, arg); err != nil {
			return err
		}
	}

	err = diag.Write(cmd.OutOrStdout(), c.diagnoses, format, diag.WriteOptions{
		Color:       color,
		Source:      c.source,
		ToolName:    "refcheck",
		ToolVersion: version.Version,
	})
	if err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}

	for _, d := range c.diagnoses {
		if d.Severity >= diag.SevError {
			return errFindings
		}
	}
	return nil
}

type checker struct {
	visitor *visit.Visitor
	opts    session.Options
	logger  *slog.Logger

	diagnoses []diag.Diagnosis
	sources   map[string][]byte
	indices   []*hir.Index
}

func (c *checker) check(cmd *cobra.Command, path string) error {
	if filepath.Ext(path) == ".go" {
		return c.checkGo(path)
	}

	crate, err := hir.Load(path)
	if err != nil {
		return err
	}
	x, err := crate.Index()
	if err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	c.indices = append(c.indices, x)

	res, err := session.Run(cmd.Context(), c.visitor, session.FromIndex(x), c.opts)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}
	for _, name := range res.Failed {
		c.logger.Warn("unit failed", slog.String("input", path), slog.String("unit", name))
	}

	c.diagnoses = append(c.diagnoses, res.Diagnoses...)
	return nil
}

func (c *checker) checkGo(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.sources[path] = src

	ds, err := gohost.CheckSource(path, src, c.visitor)
	if err != nil {
		return err
	}

	for _, d := range ds {
		if c.opts.Ignore.Match(d.Unit) {
			continue
		}
		c.diagnoses = append(c.diagnoses, d)
	}
	return nil
}

func (c *checker) source(file string) ([]byte, bool) {
	if src, ok := c.sources[file]; ok {
		return src, true
	}
	for _, x := range c.indices {
		if src, ok := x.Source(file); ok {
			return src, true
		}
	}
	return nil, false
}
