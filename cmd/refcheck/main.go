package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sirkon/refguard/internal/config"
	"github.com/sirkon/refguard/internal/version"
)

// errFindings is returned by check when error severity diagnoses were made.
// It is not printed, only turned into exit code 1.
var errFindings = errors.New("error severity diagnostics found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "refcheck",
		Short:         "Invalid reference detector",
		Long:          `refcheck reports references fabricated out of zero-filled or uninitialized memory`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", "", "config file, discovered from the first input when empty")
	root.PersistentFlags().String("color", "", "colorize output (auto|on|off), taken from config when empty")
	root.PersistentFlags().BoolP("verbose", "v", false, "log analysis progress to stderr")

	root.AddCommand(
		newCheckCmd(),
		newRulesCmd(),
		newPathsCmd(),
		newInspectCmd(),
		newConvertCmd(),
		newVersionCmd(),
	)

	return root
}

// main runs the root command. Any error but errFindings is printed, every
// error means exit status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "refcheck:", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether the file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

// loadConfig reads the config named by the --config flag, or the one
// discovered from dir. Defaults are used when there is nothing to read.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	if path == "" {
		if path, err = config.Discover(dir); err != nil {
			return nil, fmt.Errorf("discover config: %w", err)
		}
	}
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// useColor resolves the color mode of the --color flag falling back to
// the config. Auto mode colors terminals only.
func useColor(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	flag, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}

	mode := cfg.Output.Color
	if flag != "" {
		if err := mode.UnmarshalText([]byte(flag)); err != nil {
			return false, fmt.Errorf("invalid color flag: %w", err)
		}
	}

	f, ok := cmd.OutOrStdout().(*os.File)
	return mode.Enabled(ok && isTerminal(f)), nil
}
