// Command partstore is the console application for running the parts store:
// an interactive menu by default, plus report and backup subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smontiel/partstore/internal/app"
	"github.com/smontiel/partstore/internal/backup"
	"github.com/smontiel/partstore/internal/cli"
	"github.com/smontiel/partstore/internal/report"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "partstore",
		Short:         "Auto parts store management console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context())
		},
	}
	root.AddCommand(reportCmd(), backupCmd())
	return root
}

// setup loads configuration, builds the logger, and loads every ledger.
// The returned context carries the logger for the packages below.
func setup(ctx context.Context) (context.Context, *app.App, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return ctx, nil, err
	}
	lg, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return ctx, nil, err
	}
	ctx = zctx.Base(ctx, lg)

	a := app.New(cfg)
	a.Load(ctx)
	return ctx, a, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// Console app: keep log noise on stderr, menus own stdout.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func runMenu(ctx context.Context) error {
	ctx, a, err := setup(ctx)
	if err != nil {
		return err
	}
	return cli.New(a).Run(ctx)
}

func reportCmd() *cobra.Command {
	var (
		out    string
		period string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate the ledgers and export an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := report.ParsePeriod(period)
			if err != nil {
				return err
			}
			ctx, a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			data := a.ReportData()
			if err := report.ExportXLSX(out, data, p); err != nil {
				return err
			}
			zctx.From(ctx).Info("Report written",
				zap.String("path", out),
				zap.String("period", string(p)))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Sales totals per %s:\n", p)
			for _, e := range data.SalesTotals(p) {
				fmt.Fprintf(w, "  %-12s %s\n", e.Bucket, e.Total.StringFixed(2))
			}
			fmt.Fprintf(w, "Report written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "report.xlsx", "output workbook path")
	cmd.Flags().StringVar(&period, "period", "month", "aggregation period (day, week, month, year)")
	return cmd
}

func backupCmd() *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Compress the data files into a backup directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			written, err := backup.Run(ctx, a.DataFiles(), dest)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(w, "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "backups", "destination directory for compressed copies")
	return cmd
}
