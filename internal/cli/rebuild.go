package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sow-breeding-records/internal/domain/sows"
)

// RebuildCmd recalcula paridad y medios de una cerda desde su historial.
func RebuildCmd() *cobra.Command {
	var flags apiFlags

	cmd := &cobra.Command{
		Use:   "rebuild <sowID>",
		Short: "Reconstruir paridad y medios históricos de una cerda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}

			var s sows.SowResponse
			if err := c.post(cmd.Context(), "/sows/"+url.PathEscape(args[0])+"/rebuild", nil, &s); err != nil {
				return fmt.Errorf("rebuild: %w", err)
			}

			printSow(cmd.OutOrStdout(), s)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printSow(out io.Writer, s sows.SowResponse) {
	fmt.Fprintf(out, "%s %s [%s]\n", color.New(color.Bold).Sprint(s.Code), s.Name, s.Status)
	fmt.Fprintf(out, "  paridad      %d\n", s.Parity)
	if s.Averages == nil {
		fmt.Fprintln(out, "  medios       sin destetes")
		return
	}
	fmt.Fprintf(out, "  nac. vivos   %.1f\n", s.Averages.BornAlive)
	fmt.Fprintf(out, "  destetados   %.1f\n", s.Averages.Weaned)
	fmt.Fprintf(out, "  viabilidad   %d%%\n", s.Averages.Viability)
}
