package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-livedoc/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "livedoc-cli %s\n", version.GetVersion())
		},
	}
}
