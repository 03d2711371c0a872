// Package main is the seeding tool. It loads the quote data set into the
// configured store.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/store"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	file    string
	reset   bool
	workers int
	profile string
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the quote data set into the configured store",
		Long: `Seed validates every quote in the data set and inserts it into the store
selected by store.driver. The embedded data set is used unless --file names a
YAML file. With --reset all existing quotes are deleted first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.file, "file", "", "YAML data set to load instead of the embedded one")
	flags.BoolVar(&opts.reset, "reset", false, "delete all quotes before seeding")
	flags.IntVar(&opts.workers, "workers", 0, "number of concurrent inserts (default from seed.workers)")
	flags.StringVar(&opts.profile, "profile", envOr("APP_ENVIRONMENT", "local"), "configuration profile")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts options) error {
	cfg, err := config.Load(opts.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "quotes-seed",
		Version: cfg.App.Version,
	}, cmd.ErrOrStderr())
	logging.SetDefault(logger)

	// Flags override the seed config section only when given.
	file := cfg.Seed.File
	if cmd.Flags().Changed("file") {
		file = opts.file
	}

	reset := cfg.Seed.Reset
	if cmd.Flags().Changed("reset") {
		reset = opts.reset
	}

	workers := cfg.Seed.Workers
	if cmd.Flags().Changed("workers") {
		workers = opts.workers
	}

	candidates, err := seed.Load(file)
	if err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}

	quoteStore, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() {
		if closeErr := quoteStore.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	query := app.QueryConfigFrom(cfg.Quotes)

	report, err := seed.NewSeeder(seed.Config{
		Store:           quoteStore,
		Validator:       app.NewQuoteValidator(query.Categories),
		DefaultCategory: query.DefaultCategory,
		Workers:         workers,
		Logger:          logger,
	}).Run(ctx, candidates, reset)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	return printReport(cmd.OutOrStdout(), report, reset)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func printReport(w io.Writer, report *seed.Report, reset bool) error {
	if reset {
		fmt.Fprintf(w, "Deleted %d existing quotes\n", report.Deleted)
	}

	fmt.Fprintf(w, "Inserted %d quotes\n\n", report.Inserted)

	stats := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CATEGORY", "COUNT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, c := range report.Categories {
		stats.Row(string(c.Category), strconv.FormatInt(c.Count, 10))
	}

	_, err := fmt.Fprintln(w, stats.Render())

	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
