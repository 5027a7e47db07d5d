package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirkon/refguard/internal/config"
	"github.com/sirkon/refguard/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			color, err := useColor(cmd, config.Default())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), version.String("refcheck", color))
			return nil
		},
	}
}
