package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sow-breeding-records/internal/domain/schedule"
)

// AgendaCmd muestra la agenda del día consultando la API.
func AgendaCmd() *cobra.Command {
	var (
		flags apiFlags
		date  string
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Partos y ecografías previstos para una fecha",
		Long: `Consulta GET /schedule y muestra partos previstos (±3 días),
ecografías previstas (±2 días), cerdas en servicio y en lactancia.

Examples:
  sowctl agenda --user u1
  sowctl agenda --fecha 2024-05-03 --api http://granja:8080 --token $TOKEN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}

			path := "/schedule"
			if date != "" {
				path += "?fecha=" + url.QueryEscape(date)
			}

			var ag schedule.AgendaResponse
			if err := c.get(cmd.Context(), path, &ag); err != nil {
				return fmt.Errorf("get agenda: %w", err)
			}

			printAgenda(cmd.OutOrStdout(), ag)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&date, "fecha", "", "fecha a consultar (YYYY-MM-DD, por defecto hoy)")
	return cmd
}

func printAgenda(out io.Writer, ag schedule.AgendaResponse) {
	header := color.New(color.Bold)

	header.Fprintf(out, "Agenda %s\n\n", ag.Date)

	header.Fprintf(out, "Partos previstos (%d)\n", len(ag.ExpectedFarrowings))
	printEntries(out, ag.ExpectedFarrowings)

	header.Fprintf(out, "Ecografías previstas (%d)\n", len(ag.ExpectedCheckups))
	printEntries(out, ag.ExpectedCheckups)

	header.Fprintf(out, "En servicio (%d)\n", len(ag.ReadyForService))
	printRefs(out, ag.ReadyForService)

	header.Fprintf(out, "En lactancia (%d)\n", len(ag.Lactating))
	printRefs(out, ag.Lactating)
}

func printEntries(out io.Writer, entries []schedule.EntryResponse) {
	for _, e := range entries {
		fmt.Fprintf(out, "  %-10s %-14s cubrición %s  previsto %s  %s\n",
			e.SowCode, e.SowName, e.ServiceDate, e.ExpectedDate, offsetLabel(e.OffsetDays))
	}
	fmt.Fprintln(out)
}

func printRefs(out io.Writer, refs []schedule.SowRef) {
	for _, s := range refs {
		fmt.Fprintf(out, "  %-10s %-14s %s\n", s.Code, s.Name, s.Barn)
	}
	fmt.Fprintln(out)
}

// offsetLabel: hoy en verde, atrasado en rojo, por venir en amarillo.
func offsetLabel(days int) string {
	switch {
	case days == 0:
		return color.New(color.FgHiGreen).Sprint("hoy")
	case days < 0:
		return color.New(color.FgRed).Sprintf("hace %d días", -days)
	default:
		return color.New(color.FgYellow).Sprintf("en %d días", days)
	}
}
