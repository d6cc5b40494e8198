package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"projimport/internal/config"
	"projimport/internal/entity"
	"projimport/internal/importrun"
	"projimport/internal/mapping"
	"projimport/internal/metrics"
	"projimport/internal/resolve"
)

func newRunCmd() *cobra.Command {
	var (
		dump         bool
		writeMapping string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transform a record bundle in memory and report the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cfg.Mapping == "" || cfg.Bundle == "" {
				return errors.New("--mapping and --bundle are required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return run(ctx, cmd.OutOrStdout(), cfg, dump, writeMapping)
		},
	}

	cmd.Flags().String("mapping", "", "mapping file")
	cmd.Flags().String("bundle", "", "record bundle (YAML)")
	cmd.Flags().String("target-db", "", "destination database for issue lookups by key (postgres URL or sqlite path)")
	cmd.Flags().Int("workers", 0, "records transformed concurrently per pass")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump every produced record")
	cmd.Flags().StringVar(&writeMapping, "write-mapping", "", "write the final mapping, new ids included, to this file")

	return cmd
}

// loadConfig loads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("mapping") {
		cfg.Mapping, _ = flags.GetString("mapping")
	}

	if flags.Changed("bundle") {
		cfg.Bundle, _ = flags.GetString("bundle")
	}

	if flags.Changed("target-db") {
		cfg.TargetDB, _ = flags.GetString("target-db")
	}

	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, out io.Writer, cfg *config.Config, dump bool, writeMapping string) error {
	log, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	f, err := mapping.LoadFile(cfg.Mapping)
	if err != nil {
		return err
	}

	if res := mapping.Validate(f); res.HasErrors() {
		printDiagnostics(out, res)
		return fmt.Errorf("mapping %s is invalid", cfg.Mapping)
	}

	table, err := f.Table()
	if err != nil {
		return err
	}

	bundle, err := importrun.LoadBundle(cfg.Bundle)
	if err != nil {
		return err
	}

	lookup, closeLookup, err := openLookup(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLookup()

	reg := prometheus.NewRegistry()

	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return err
	}

	store := importrun.NewMemoryPersister(1)
	runner := importrun.NewRunner(table, store,
		importrun.WithWorkers(cfg.Workers),
		importrun.WithLogger(log),
		importrun.WithMetrics(m),
		importrun.WithResolver(resolve.Default(lookup)),
	)

	summary, runErr := runner.Run(ctx, bundle)
	if summary != nil {
		printSummary(out, summary)
	}

	if err := printMetrics(out, reg); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}

	if dump {
		for _, kind := range entity.ImportOrder() {
			if recs := store.Records(kind); len(recs) > 0 {
				fmt.Fprintf(out, "--- %s\n", kind)
				spew.Fdump(out, recs)
			}
		}
	}

	if writeMapping != "" {
		if err := mapping.WriteFile(table.File(), writeMapping); err != nil {
			return err
		}
	}

	return nil
}

// openLookup opens the destination lookup by key, if one is configured.
func openLookup(ctx context.Context, cfg *config.Config) (resolve.KeyLookup, func(), error) {
	if cfg.TargetDB == "" {
		return nil, func() {}, nil
	}

	retry := resolve.WithBackOff(func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = cfg.LookupTimeout

		return bo
	})

	if cfg.UsesPostgres() {
		pool, err := resolve.OpenPool(ctx, cfg.TargetDB)
		if err != nil {
			return nil, nil, err
		}

		return resolve.NewRetrying(resolve.NewPgxKeyLookup(pool, ""), retry), pool.Close, nil
	}

	db, err := sql.Open("sqlite", cfg.TargetDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", cfg.TargetDB, err)
	}

	db.SetConnMaxIdleTime(time.Minute)

	return resolve.NewRetrying(resolve.NewSQLKeyLookup(db, ""), retry), func() { _ = db.Close() }, nil
}

func printSummary(out io.Writer, s *importrun.Summary) {
	fmt.Fprintf(out, "run %s\n", s.RunID)

	for _, p := range s.Passes {
		if p.Skipped {
			fmt.Fprintf(out, "  %-20s skipped (already mapped)\n", p.Kind)
			continue
		}

		fmt.Fprintf(out, "  %-20s produced %5d  dropped %5d  %s\n", p.Kind, p.Produced, p.Dropped, p.Duration.Round(time.Microsecond))
	}

	produced, dropped := s.Totals()
	fmt.Fprintf(out, "total: produced %d, dropped %d, %d error(s), %d warning(s), %d info(s)\n",
		produced, dropped, len(s.Diagnostics.Errors), len(s.Diagnostics.Warnings), len(s.Diagnostics.Infos))

	printDiagnostics(out, s.Diagnostics)
}

// printMetrics prints the total of every counter family in reg.
func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}

		var total float64
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}

		fmt.Fprintf(out, "%s %g\n", mf.GetName(), total)
	}

	return nil
}
