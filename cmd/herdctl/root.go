package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/config"
	"github.com/mamadbah2/goatherd/internal/domain/models"
	"github.com/mamadbah2/goatherd/internal/repository/sheets"
	"github.com/mamadbah2/goatherd/internal/service/reporting"
	"github.com/mamadbah2/goatherd/pkg/logger"
)

var (
	envFile  string
	verbose  bool
	asJSON   bool
	herdSvc  *reporting.Service
	baseLogs *zap.Logger
)

// loadSource opens the herd book read-only. Tests replace it.
var loadSource = func(ctx context.Context, envFile string, log *zap.Logger) (reporting.SnapshotSource, models.AppConfig, error) {
	sheetsCfg, herdCfg, err := config.LoadSheetsOnly(envFile)
	if err != nil {
		return nil, models.AppConfig{}, err
	}
	repo, err := sheets.NewGoogleSheetRepository(ctx, sheetsCfg, true, log.Named("repo.sheets"))
	if err != nil {
		return nil, models.AppConfig{}, err
	}
	return sheets.NewSnapshotLoader(repo, log.Named("repo.snapshot")), herdCfg, nil
}

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "herdctl",
		Short: "herdctl reports on the goat herd book",
		Long: `herdctl reads the herd book spreadsheet and prints the same analytics the
WhatsApp bot answers with: the herd summary, the growth view of one animal and
the lactation history of one doe.

Configuration comes from the environment (optionally a .env file):
  GOOGLE_SHEETS_CREDENTIALS_PATH   service account credentials
  GOOGLE_SHEET_DATABASE_ID         herd book spreadsheet id
  HERD_CONFIG_FILE                 optional YAML with growth targets`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.NewConsole(verbose)
			if err != nil {
				return err
			}
			baseLogs = log

			source, herdCfg, err := loadSource(cmd.Context(), envFile, log)
			if err != nil {
				return fmt.Errorf("open herd book: %w", err)
			}
			herdSvc = reporting.NewService(source, nil, herdCfg, nil, log.Named("svc.reporting"))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if baseLogs != nil {
				_ = baseLogs.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default: ./.env when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log sheet reads")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(getReportCmd())
	rootCmd.AddCommand(getAnimalCmd())
	rootCmd.AddCommand(getLactationCmd())

	return rootCmd
}

// emit writes v as indented JSON when --json is set, text otherwise.
func emit(w io.Writer, v any, text string) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
