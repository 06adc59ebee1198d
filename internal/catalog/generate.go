package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const (
	DefaultSize        = 500
	PreviousRosterSize = 8
	DomesticNation     = "Indian"
)

var nationalities = []string{
	"Indian",
	"Australian",
	"English",
	"South African",
	"New Zealander",
	"Sri Lankan",
	"Bangladeshi",
	"Pakistani",
	"West Indian",
	"Afghan",
}

var firstNames = []string{
	"Aarav", "Rohit", "Virat", "Jasprit", "Ravi", "Shubman", "Ishan", "Arjun",
	"Steve", "Pat", "Mitchell", "Glenn", "Travis", "Josh", "Ben", "Jos",
	"Kane", "Trent", "Quinton", "Kagiso", "Rashid", "Shakib", "Babar", "Andre",
}

var lastNames = []string{
	"Sharma", "Kohli", "Patel", "Iyer", "Gill", "Kishan", "Yadav", "Pandya",
	"Smith", "Cummins", "Starc", "Maxwell", "Head", "Hazlewood", "Stokes", "Buttler",
	"Williamson", "Boult", "de Kock", "Rabada", "Khan", "Hasan", "Azam", "Russell",
}

// Generate builds a deterministic catalog of n players for the default teams.
// The same seed always yields the same catalog.
func Generate(n int, seed uint64) Catalog {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	players := make([]Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, generatePlayer(r, i))
	}

	teams := make([]Team, len(DefaultTeams))
	copy(teams, DefaultTeams)

	return Catalog{
		Players:  players,
		Teams:    teams,
		Previous: previousRosters(r, players, teams),
	}
}

func generatePlayer(r *rand.Rand, id int) Player {
	matches := 20 + r.IntN(181)
	// base price in [0.50, 5.00], two decimal places
	base := decimal.New(int64(50+r.IntN(451)), -2)

	role := Roles[r.IntN(len(Roles))]

	return Player{
		ID:          id,
		Name:        fmt.Sprintf("%s %s", firstNames[r.IntN(len(firstNames))], lastNames[r.IntN(len(lastNames))]),
		Role:        role,
		Nationality: nationalities[r.IntN(len(nationalities))],
		Age:         19 + r.IntN(20),
		Matches:     matches,
		BasePrice:   base,
		Rating:      40 + r.IntN(60),
		Capped:      matches >= 60,
		Stats:       generateStats(r, role),
	}
}

func generateStats(r *rand.Rand, role Role) Stats {
	var st Stats
	switch role {
	case RoleBatsman:
		st.Runs = intIn(r, 800, 6000)
		st.HighestScore = intIn(r, 10, 125)
		st.BattingAverage = floatIn(r, 25, 55)
		st.BattingStrikeRate = floatIn(r, 110, 170)
	case RoleBowler:
		st.Wickets = intIn(r, 40, 250)
		st.BestBowling = fmt.Sprintf("%d/%d", intIn(r, 3, 6), intIn(r, 8, 40))
		st.BowlingAverage = floatIn(r, 18, 35)
		st.BowlingEconomy = floatIn(r, 5.5, 9.5)
		st.BowlingStrikeRate = floatIn(r, 12, 45)
	case RoleAllRounder:
		st.Runs = intIn(r, 500, 4000)
		st.Wickets = intIn(r, 30, 180)
		st.BattingAverage = floatIn(r, 25, 45)
		st.BattingStrikeRate = floatIn(r, 100, 150)
		st.BowlingAverage = floatIn(r, 20, 35)
		st.BowlingEconomy = floatIn(r, 6, 9)
		st.BowlingStrikeRate = floatIn(r, 15, 40)
	case RoleWicketkeeper:
		st.Runs = intIn(r, 1000, 4500)
		st.BattingAverage = floatIn(r, 28, 48)
		st.BattingStrikeRate = floatIn(r, 110, 160)
	}
	return st
}

// intIn returns an int in [lo, hi].
func intIn(r *rand.Rand, lo, hi int) int { return lo + r.IntN(hi-lo+1) }

// floatIn returns a value in [lo, hi] rounded to two decimals.
func floatIn(r *rand.Rand, lo, hi float64) float64 {
	return math.Round((lo+r.Float64()*(hi-lo))*100) / 100
}

// previousRosters deals PreviousRosterSize distinct players to every team.
func previousRosters(r *rand.Rand, players []Player, teams []Team) map[int][]int {
	out := make(map[int][]int, len(teams))
	if len(players) < len(teams)*PreviousRosterSize {
		return out
	}
	order := r.Perm(len(players))
	next := 0
	for _, t := range teams {
		ids := make([]int, 0, PreviousRosterSize)
		for range PreviousRosterSize {
			ids = append(ids, players[order[next]].ID)
			next++
		}
		out[t.ID] = ids
	}
	return out
}
