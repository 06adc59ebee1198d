package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/shopspring/decimal"
)

// Row is one line of the auction sheet.
type Row struct {
	PlayerID   int              `json:"player_id"`
	Name       string           `json:"name"`
	Role       catalog.Role     `json:"role"`
	BasePrice  decimal.Decimal  `json:"base_price"`
	FinalPrice decimal.Decimal  `json:"final_price"`
	SoldTo     string           `json:"sold_to"`
	Status     engine.LogStatus `json:"status"`
}

type TeamSummary struct {
	ID        int                  `json:"id"`
	Name      string               `json:"name"`
	Players   int                  `json:"players"`
	Retained  int                  `json:"retained"`
	Overseas  int                  `json:"overseas"`
	Spent     decimal.Decimal      `json:"spent"`
	Remaining decimal.Decimal      `json:"remaining"`
	Roles     map[catalog.Role]int `json:"roles"`
	Short     bool                 `json:"short,omitempty"` // below the roster floor
}

type Report struct {
	Phase engine.Phase  `json:"phase"`
	Rows  []Row         `json:"rows"`
	Teams []TeamSummary `json:"teams"`
}

func Build(s engine.State) Report {
	return Report{Phase: s.Phase, Rows: Rows(s), Teams: Teams(s)}
}

// Rows flattens the auction log, one row per catalog player in catalog order.
// Players not yet auctioned report as Unsold at zero.
func Rows(s engine.State) []Row {
	rows := make([]Row, 0, len(s.Players))
	for i, p := range s.Players {
		row := Row{
			PlayerID:   p.ID,
			Name:       p.Name,
			Role:       p.Role,
			BasePrice:  p.BasePrice,
			FinalPrice: decimal.Zero,
			SoldTo:     engine.Unsold,
			Status:     engine.LogPending,
		}
		if i < len(s.Log) {
			e := s.Log[i]
			row.FinalPrice = e.FinalPrice
			row.SoldTo = e.SoldTo
			row.Status = e.Status
		}
		rows = append(rows, row)
	}
	return rows
}

func Teams(s engine.State) []TeamSummary {
	out := make([]TeamSummary, 0, len(s.Teams))
	for _, t := range s.Teams {
		retained := 0
		for _, slot := range t.Roster {
			if slot.Retained {
				retained++
			}
		}
		out = append(out, TeamSummary{
			ID:        t.ID,
			Name:      t.Name,
			Players:   len(t.Roster),
			Retained:  retained,
			Overseas:  t.OverseasCount(s.Rules.Domestic),
			Spent:     t.Spent(s.Rules.Purse),
			Remaining: t.Budget,
			Roles:     t.RoleDistribution(),
			Short:     len(t.Roster) < s.Rules.RosterFloor,
		})
	}
	return out
}

var csvHeader = []string{"name", "role", "base_price", "final_price", "sold_to"}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Name, string(r.Role), r.BasePrice.StringFixed(2), r.FinalPrice.StringFixed(2), r.SoldTo}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TopBuys returns the n most expensive sales, highest first.
func TopBuys(rows []Row, n int) []Row {
	var sold []Row
	for _, r := range rows {
		if r.Status == engine.LogSold || r.Status == engine.LogRetained {
			sold = append(sold, r)
		}
	}
	slices.SortStableFunc(sold, func(a, b Row) int { return b.FinalPrice.Cmp(a.FinalPrice) })
	if len(sold) > n {
		sold = sold[:n]
	}
	return sold
}
