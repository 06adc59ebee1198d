package engine

import (
	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/shopspring/decimal"
)

// Rules are the league constants one auction runs under.
type Rules struct {
	Purse            decimal.Decimal `json:"purse"`
	RosterFloor      int             `json:"roster_floor"`
	RosterCeiling    int             `json:"roster_ceiling"`
	OverseasCeiling  int             `json:"overseas_ceiling"`
	RetentionEnabled bool            `json:"retention_enabled"`
	Domestic         string          `json:"domestic"`
	// chance a low-value player goes unsold once every roster slot is taken
	CapacityUnsoldChance float64 `json:"capacity_unsold_chance"`
}

func DefaultRules() Rules {
	return Rules{
		Purse:                decimal.NewFromInt(120),
		RosterFloor:          18,
		RosterCeiling:        25,
		OverseasCeiling:      8,
		RetentionEnabled:     true,
		Domestic:             catalog.DomesticNation,
		CapacityUnsoldChance: 0.4,
	}
}

var (
	stepSmall = decimal.RequireFromString("0.05")
	stepMid   = decimal.RequireFromString("0.10")
	stepLarge = decimal.RequireFromString("0.20")

	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// Increment is the bid step at the current price.
func Increment(current decimal.Decimal) decimal.Decimal {
	switch {
	case current.LessThan(one):
		return stepSmall
	case current.LessThan(two):
		return stepMid
	default:
		return stepLarge
	}
}

func NextBid(current decimal.Decimal) decimal.Decimal {
	return current.Add(Increment(current))
}

const importantRating = 85

// IsImportant players are exempt from the capacity rule.
func IsImportant(p catalog.Player) bool {
	return p.Rating >= importantRating || p.BasePrice.GreaterThanOrEqual(two)
}
