package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/DoyleJ11/cricket-auction/internal/config"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/printer"
	"github.com/DoyleJ11/cricket-auction/internal/report"
	"github.com/DoyleJ11/cricket-auction/internal/sim"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runSeed           uint64
	runTeam           int
	runCatalogPath    string
	runSize           int
	runRetain         int
	runHumanMinRating int
	runCSV            string
	runJSON           bool
	runVerbose        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one auction to the end and print the sheet",
	Long: `Run a complete auction: retention, every lot, and the final sheet.

Examples:
  # Default catalog, play Mumbai Indians
  auction-sim run --team 8

  # Reproducible run written to CSV
  auction-sim run --seed 7 --csv sheet.csv

  # Machine-readable report
  auction-sim run --json | jq '.teams[] | select(.short)'`,
	Args: cobra.NoArgs,
	RunE: runAuction,
}

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 1, "seed for AI decisions and unsold draws")
	runCmd.Flags().IntVar(&runTeam, "team", 1, "franchise ID played by the human rule")
	runCmd.Flags().StringVar(&runCatalogPath, "catalog", "", "catalog file (.json or .yaml); overrides CATALOG_PATH")
	runCmd.Flags().IntVar(&runSize, "size", 0, "generated catalog size; overrides CATALOG_SIZE")
	runCmd.Flags().IntVar(&runRetain, "retain", 4, "previous players the human franchise keeps")
	runCmd.Flags().IntVar(&runHumanMinRating, "human-min-rating", 85, "human franchise bids on players rated at least this (0 never bids)")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "also write the auction sheet to this CSV file")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the report as JSON instead of tables")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print every sale as it happens and log debug output")

	rootCmd.AddCommand(runCmd)
}

func runAuction(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{"Check the auction variables in your environment or " + envFile},
		)
	}
	if runCatalogPath != "" {
		cfg.CatalogPath = runCatalogPath
	}
	if runSize > 0 {
		cfg.CatalogSize = runSize
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return printer.Error(
			"could not load catalog",
			err.Error(),
			[]string{"Generate a fresh one:\n  auction-sim catalog --out players.yaml"},
		)
	}

	logger := zap.NewNop()
	if runVerbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID), zap.Uint64("seed", runSeed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	if !runJSON {
		printer.Step("auction %s: %d players, %d franchises\n", runID[:8], len(cat.Players), len(cat.Teams))
	}

	res, err := sim.Run(ctx, sim.Options{
		Catalog:        cat,
		Rules:          cfg.Rules(),
		HumanTeamID:    runTeam,
		Seed:           runSeed,
		Retain:         runRetain,
		HumanMinRating: runHumanMinRating,
		Logger:         logger,
		OnEvent: func(s engine.State, e engine.Event) {
			if runVerbose && !runJSON {
				printer.Event(out, s, e)
			}
		},
	})
	if err != nil {
		return printer.Error(
			"auction did not finish",
			err.Error(),
			[]string{fmt.Sprintf("Check that franchise %d exists in the catalog", runTeam)},
		)
	}

	rep := report.Build(res.State)
	if runCSV != "" {
		if err := writeCSV(runCSV, rep.Rows); err != nil {
			return printer.Error("could not write CSV", err.Error(), nil)
		}
	}

	if runJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	if err := printer.Report(out, rep); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if res.Forced {
		printer.Warning("auction ended with incomplete rosters after %d steps\n", res.Steps)
	} else {
		printer.Success("auction complete after %d steps\n", res.Steps)
	}
	for _, row := range report.TopBuys(rep.Rows, 3) {
		printer.Info("  %s to %s for ₹%sCr\n", row.Name, row.SoldTo, row.FinalPrice.StringFixed(2))
	}
	if runCSV != "" {
		printer.Info("sheet written to %s\n", runCSV)
	}
	return nil
}

func writeCSV(path string, rows []report.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WriteCSV(f, rows)
}
