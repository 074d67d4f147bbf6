package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sow-breeding-records/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sowctl",
		Short:        "Herramienta de operación del registro reproductivo de cerdas",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.ProjectionCmd())
	rootCmd.AddCommand(cli.AgendaCmd())
	rootCmd.AddCommand(cli.RebuildCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
