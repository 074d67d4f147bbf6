package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sow-breeding-records/internal/domain/breeding"
)

// ProjectionCmd calcula, sin servidor, las fechas previstas de una cubrición.
func ProjectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projection <fecha_cubricion>",
		Short: "Fechas previstas de ecografía y parto para una cubrición",
		Long: `Calcula las fechas previstas a partir de la fecha de cubrición (YYYY-MM-DD):
ecografía a los 21 días y parto a los 114.

Examples:
  sowctl projection 2024-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := breeding.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("fecha_cubricion must be YYYY-MM-DD: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cubrición  %s\n", service.Format(breeding.DateLayout))
			fmt.Fprintf(out, "Ecografía  %s (+%d días)\n",
				color.New(color.FgCyan).Sprint(breeding.ExpectedCheckup(service).Format(breeding.DateLayout)),
				breeding.CheckupDays)
			fmt.Fprintf(out, "Parto      %s (+%d días)\n",
				color.New(color.FgHiMagenta).Sprint(breeding.ExpectedFarrowing(service).Format(breeding.DateLayout)),
				breeding.GestationDays)
			return nil
		},
	}
}
