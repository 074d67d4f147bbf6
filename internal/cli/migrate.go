package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	pg "sow-breeding-records/internal/adapters/storage/postgres"
	"sow-breeding-records/internal/platform/logger"

	"go.uber.org/zap"
)

// MigrateCmd aplica el esquema de Postgres.
func MigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Crear tablas e índices en Postgres (idempotente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn or DB_DSN is required")
			}

			log, err := logger.NewFromEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := pg.Open(dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			start := time.Now()
			if err := pg.Migrate(cmd.Context(), db); err != nil {
				log.Error("migrate failed", zap.Error(err))
				return err
			}
			log.Info("schema applied", zap.Duration("took", time.Since(start)))

			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgHiGreen).Sprint("✓ schema applied"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("DB_DSN"), "DSN de Postgres (env DB_DSN)")
	return cmd
}
