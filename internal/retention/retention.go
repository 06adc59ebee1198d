// Package retention prices the one-time pre-auction retention of players a
// team held last season.
//
// Prices are positional: the Nth capped pick pays the Nth capped tier, every
// uncapped pick pays a flat fee. Prices are always recomputed by replaying the
// selection in insertion order, so removing an early capped pick moves every
// later capped pick up a tier.
package retention

import (
	"errors"
	"fmt"
	"slices"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/shopspring/decimal"
)

const (
	MaxTotal    = 6
	MaxCapped   = 5
	MaxUncapped = 2
)

var (
	CappedTiers  = []decimal.Decimal{decimal.NewFromInt(18), decimal.NewFromInt(14), decimal.NewFromInt(11), decimal.NewFromInt(18), decimal.NewFromInt(14)}
	UncappedCost = decimal.NewFromInt(4)
)

var (
	ErrLimitExceeded    = errors.New("retention limit exceeded")
	ErrUnknownCandidate = errors.New("player is not a retention candidate")
	ErrDuplicate        = errors.New("player selected twice")
)

// Counts is the capped/uncapped split of a selection.
type Counts struct {
	Capped   int `json:"capped"`
	Uncapped int `json:"uncapped"`
}

func (c Counts) Total() int { return c.Capped + c.Uncapped }

// CappedTier returns the price of the nth (0-based) capped pick. Picks past
// the last tier repeat it.
func CappedTier(n int) decimal.Decimal {
	if n >= len(CappedTiers) {
		return CappedTiers[len(CappedTiers)-1]
	}
	return CappedTiers[n]
}

// Price replays ids in order against the candidate list and returns the
// per-player price. It enforces membership and the selection limits.
func Price(candidates []catalog.Player, ids []int) (map[int]decimal.Decimal, error) {
	byID := make(map[int]catalog.Player, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	prices := make(map[int]decimal.Decimal, len(ids))
	var counts Counts
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
		}
		if _, dup := prices[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicate, id)
		}
		if err := checkLimits(counts, p.Capped); err != nil {
			return nil, err
		}
		if p.Capped {
			prices[id] = CappedTier(counts.Capped)
			counts.Capped++
		} else {
			prices[id] = UncappedCost
			counts.Uncapped++
		}
	}
	return prices, nil
}

// Sum adds up the prices of ids.
func Sum(prices map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}
	return total
}

func checkLimits(c Counts, capped bool) error {
	if c.Total() >= MaxTotal {
		return fmt.Errorf("%w: at most %d players", ErrLimitExceeded, MaxTotal)
	}
	if capped && c.Capped >= MaxCapped {
		return fmt.Errorf("%w: at most %d capped players", ErrLimitExceeded, MaxCapped)
	}
	if !capped && c.Uncapped >= MaxUncapped {
		return fmt.Errorf("%w: at most %d uncapped players", ErrLimitExceeded, MaxUncapped)
	}
	return nil
}

// Selection is the interactive side of retention: a UI toggles candidates and
// reads back the running prices before confirming.
type Selection struct {
	candidates []catalog.Player
	selected   []int
}

func NewSelection(candidates []catalog.Player) *Selection {
	return &Selection{candidates: slices.Clone(candidates)}
}

// Selected returns the chosen IDs in insertion order.
func (s *Selection) Selected() []int { return slices.Clone(s.selected) }

// Toggle deselects id if it is selected, otherwise selects it. A selection
// that would break a limit is rejected and leaves the selection unchanged.
func (s *Selection) Toggle(id int) error {
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return nil
	}

	idx := slices.IndexFunc(s.candidates, func(p catalog.Player) bool { return p.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
	}
	if err := checkLimits(s.Counts(), s.candidates[idx].Capped); err != nil {
		return err
	}
	s.selected = append(s.selected, id)
	return nil
}

func (s *Selection) Counts() Counts {
	var c Counts
	for _, id := range s.selected {
		for _, p := range s.candidates {
			if p.ID != id {
				continue
			}
			if p.Capped {
				c.Capped++
			} else {
				c.Uncapped++
			}
		}
	}
	return c
}

// Prices recomputes every price from scratch.
func (s *Selection) Prices() map[int]decimal.Decimal {
	prices, err := Price(s.candidates, s.selected)
	if err != nil {
		// Toggle keeps the selection within limits, so this is unreachable.
		return map[int]decimal.Decimal{}
	}
	return prices
}

func (s *Selection) Total() decimal.Decimal { return Sum(s.Prices()) }

// Remaining is what would be left of purse after confirming.
func (s *Selection) Remaining(purse decimal.Decimal) decimal.Decimal {
	return purse.Sub(s.Total())
}
