package printer

import (
	"bytes"
	"testing"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/report"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("returns error with title for multiple suggestions", func(t *testing.T) {
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})
}

func TestReport(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	r := report.Report{
		Phase: engine.PhaseEnded,
		Rows: []report.Row{
			{Name: "Opener", Role: catalog.RoleBatsman, BasePrice: decimal.RequireFromString("0.95"), FinalPrice: decimal.RequireFromString("3.2"), SoldTo: "Kings"},
		},
		Teams: []report.TeamSummary{
			{Name: "Kings", Players: 1, Spent: decimal.RequireFromString("3.2"), Remaining: decimal.RequireFromString("116.8"), Roles: map[catalog.Role]int{catalog.RoleBatsman: 1}, Short: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, r))
	out := buf.String()
	require.Contains(t, out, "Auction sheet (ended)")
	require.Contains(t, out, "3.20")
	require.Contains(t, out, "Kings !")
	require.Contains(t, out, "1/0/0/0")
}
