package commands

import (
	"fmt"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/printer"
	"github.com/spf13/cobra"
)

var (
	catalogOut  string
	catalogSize int
	catalogSeed uint64
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Generate a player catalog file",
	Long: `Generate a deterministic player catalog and write it as JSON or YAML
(chosen by the file extension). The file can be edited and fed back with
CATALOG_PATH or run --catalog.

Examples:
  auction-sim catalog --out players.yaml
  auction-sim catalog --size 200 --seed 9 --out small.json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogOut, "out", "o", "players.yaml", "output file (.json, .yaml or .yml)")
	catalogCmd.Flags().IntVar(&catalogSize, "size", catalog.DefaultSize, "number of players")
	catalogCmd.Flags().Uint64Var(&catalogSeed, "seed", 2025, "generator seed")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if catalogSize < 1 {
		return printer.Error(
			"invalid size",
			fmt.Sprintf("--size must be positive, got %d", catalogSize),
			nil,
		)
	}
	c := catalog.Generate(catalogSize, catalogSeed)
	if err := c.Validate(); err != nil {
		return printer.Error("generated catalog is invalid", err.Error(), nil)
	}
	if err := catalog.SaveFile(catalogOut, c); err != nil {
		return printer.Error(
			"could not write catalog",
			err.Error(),
			[]string{"Use a .json, .yaml or .yml extension"},
		)
	}
	printer.Success("wrote %d players to %s\n", len(c.Players), catalogOut)
	return nil
}
