package engine

import (
	"errors"
	"testing"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/retention"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seqRand replays a fixed list of draws.
type seqRand struct {
	vals []float64
	n    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.n%len(r.vals)]
	r.n++
	return v
}

func fixed(vals ...float64) *seqRand { return &seqRand{vals: vals} }

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Players: []catalog.Player{
			{ID: 101, Name: "Opener", Role: catalog.RoleBatsman, Nationality: "Indian", BasePrice: d("0.95"), Rating: 70, Capped: true},
			{ID: 102, Name: "Quick", Role: catalog.RoleBowler, Nationality: "Australian", BasePrice: d("1.50"), Rating: 80, Capped: true},
			{ID: 103, Name: "Star", Role: catalog.RoleAllRounder, Nationality: "English", BasePrice: d("2.00"), Rating: 92, Capped: true},
			{ID: 104, Name: "Rookie", Role: catalog.RoleWicketkeeper, Nationality: "Indian", BasePrice: d("0.50"), Rating: 50},
		},
		Teams: []catalog.Team{
			{ID: 1, Name: "Humans"},
			{ID: 2, Name: "Bots A"},
			{ID: 3, Name: "Bots B"},
		},
		Previous: map[int][]int{1: {101, 104}},
	}
}

func testRules() Rules {
	r := DefaultRules()
	r.RetentionEnabled = false
	r.RosterFloor = 0
	return r
}

func newTestState(t *testing.T, rules Rules) State {
	t.Helper()
	s, err := NewState(testCatalog(), rules, 1)
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s State, cmd Command, rng RandSource) ([]Event, State) {
	t.Helper()
	events, next, err := Apply(s, cmd, rng)
	require.NoError(t, err, "command %s", cmd.Type)
	return events, next
}

func TestIncrementBoundaries(t *testing.T) {
	cases := []struct {
		bid  string
		want string
	}{
		{"0.50", "0.05"},
		{"0.99", "0.05"},
		{"1.00", "0.10"},
		{"1.99", "0.10"},
		{"2.00", "0.20"},
		{"7.40", "0.20"},
	}
	for _, tc := range cases {
		t.Run(tc.bid, func(t *testing.T) {
			got := Increment(d(tc.bid))
			if !got.Equal(d(tc.want)) {
				t.Fatalf("Increment(%s): got %s, want %s", tc.bid, got, tc.want)
			}
		})
	}
}

func TestNewState_OpensFirstLot(t *testing.T) {
	s := newTestState(t, testRules())

	assert.Equal(t, PhaseBidding, s.Phase)
	assert.Equal(t, 0, s.Cursor)
	assert.True(t, d("0.95").Equal(s.CurrentBid))
	assert.Zero(t, s.LeaderID)
	require.Len(t, s.Log, 4)
	for _, e := range s.Log {
		assert.Equal(t, LogPending, e.Status)
		assert.Equal(t, Unsold, e.SoldTo)
	}
	for _, team := range s.Teams {
		assert.True(t, d("120").Equal(team.Budget))
	}
}

func TestNewState_RetentionPhaseWhenCandidatesExist(t *testing.T) {
	rules := testRules()
	rules.RetentionEnabled = true
	s := newTestState(t, rules)

	assert.Equal(t, PhaseRetention, s.Phase)
	require.Len(t, s.Eligible, 2)
	_, ok := s.CurrentPlayer()
	assert.False(t, ok)
}

func TestNewState_UnknownHumanTeam(t *testing.T) {
	_, err := NewState(testCatalog(), testRules(), 9)
	require.ErrorIs(t, err, ErrUnknownTeam)
}

func TestBid_RaisesByIncrement(t *testing.T) {
	s := newTestState(t, testRules())

	events, s := mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
	require.True(t, ContainsEvent(events, EvtBidPlaced))
	assert.True(t, d("1.00").Equal(s.CurrentBid), "got %s", s.CurrentBid)
	assert.Equal(t, 2, s.LeaderID)

	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 3}, nil)
	assert.True(t, d("1.10").Equal(s.CurrentBid), "got %s", s.CurrentBid)
	assert.Equal(t, []int{3, 2}, s.RecentBidders)

	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 1}, nil)
	assert.Equal(t, []int{1, 3}, s.RecentBidders, "trail keeps the two most recent")
}

func TestBid_LeaderIsRejected(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)

	_, after, err := Apply(s, Command{Type: CmdBid, TeamID: 2}, nil)
	if err == nil || !errors.Is(err, ErrAlreadyLeading) {
		t.Fatalf("want ErrAlreadyLeading, got %v", err)
	}
	assert.True(t, s.CurrentBid.Equal(after.CurrentBid))
	assert.Equal(t, KindIneligible, Kind(err))
}

func TestBid_CurrentBidNeverDecreasesWithinLot(t *testing.T) {
	s := newTestState(t, testRules())
	bidders := []int{2, 3, 2, 1, 3, 2, 1, 2, 3, 1, 2, 3, 2, 3}

	prev := s.CurrentBid
	for _, team := range bidders {
		_, next, err := Apply(s, Command{Type: CmdBid, TeamID: team}, nil)
		require.NoError(t, err)
		require.True(t, next.CurrentBid.GreaterThan(prev), "%s -> %s", prev, next.CurrentBid)
		prev = next.CurrentBid
		s = next
	}

	_, s = mustApply(t, s, Command{Type: CmdResolve}, fixed(0.99))
	assert.Equal(t, 1, s.Cursor)
	assert.True(t, d("1.50").Equal(s.CurrentBid), "resets to next base price")
	assert.Zero(t, s.LeaderID)
	assert.Empty(t, s.Withdrawn)
	assert.Empty(t, s.RecentBidders)
}

func TestBid_HumanGuards(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(s *State)
		wantErr error
	}{
		{
			name:    "insufficient budget",
			setup:   func(s *State) { s.Teams[0].Budget = d("0.99") },
			wantErr: ErrInsufficientBudget,
		},
		{
			name: "roster full",
			setup: func(s *State) {
				s.Rules.RosterCeiling = 1
				s.Teams[0].Roster = []RosterSlot{{Player: catalog.Player{ID: 900}}}
			},
			wantErr: ErrRosterFull,
		},
		{
			name: "overseas limit on overseas player",
			setup: func(s *State) {
				s.Cursor = 1 // Australian
				s.CurrentBid = s.Players[1].BasePrice
				s.Rules.OverseasCeiling = 1
				s.Teams[0].Roster = []RosterSlot{{Player: catalog.Player{ID: 900, Nationality: "Afghan"}}}
			},
			wantErr: ErrOverseasLimit,
		},
		{
			name: "overseas limit ignored for domestic player",
			setup: func(s *State) {
				s.Rules.OverseasCeiling = 1
				s.Teams[0].Roster = []RosterSlot{{Player: catalog.Player{ID: 900, Nationality: "Afghan"}}}
			},
		},
		{
			name:    "withdrawn",
			setup:   func(s *State) { s.Withdrawn[1] = true },
			wantErr: ErrTeamWithdrawn,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, testRules())
			tc.setup(&s)
			_, _, err := Apply(s, Command{Type: CmdBid, TeamID: 1}, nil)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBid_AIIgnoresSquadLimits(t *testing.T) {
	s := newTestState(t, testRules())
	s.Rules.RosterCeiling = 0
	_, _, err := Apply(s, Command{Type: CmdBid, TeamID: 2}, nil)
	require.NoError(t, err)
}

func TestPass_LastActiveTeamResolves(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)

	events, s := mustApply(t, s, Command{Type: CmdPass, TeamID: 1}, nil)
	require.Len(t, events, 1)
	assert.True(t, events[0].Human)
	assert.Equal(t, []int{3}, s.ActiveTeams())

	events, s = mustApply(t, s, Command{Type: CmdPass, TeamID: 3}, fixed(0.99))
	require.True(t, ContainsEvent(events, EvtPlayerSold))
	require.True(t, ContainsEvent(events, EvtLotOpened))

	team, _ := s.Team(2)
	require.Len(t, team.Roster, 1)
	assert.Equal(t, 101, team.Roster[0].Player.ID)
	assert.True(t, d("1.00").Equal(team.Roster[0].Price))
	assert.True(t, d("119.00").Equal(team.Budget))
	assert.Equal(t, LogSold, s.Log[0].Status)
	assert.Equal(t, "Bots A", s.Log[0].SoldTo)
	assert.Empty(t, s.Withdrawn, "withdrawals are cleared on lot change")
}

func TestPass_RejectsInactiveTeams(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
	_, s = mustApply(t, s, Command{Type: CmdPass, TeamID: 3}, nil)

	cases := []struct {
		name string
		team int
		want error
	}{
		{name: "already withdrawn", team: 3, want: ErrNotActive},
		{name: "current leader", team: 2, want: ErrNotActive},
		{name: "unknown team", team: 42, want: ErrUnknownTeam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, after, err := Apply(s, Command{Type: CmdPass, TeamID: tc.team}, nil)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, s.Withdrawn, after.Withdrawn)
		})
	}
}

func TestPass_EveryoneWithdrawsWithoutBidIsUnsold(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdPass, TeamID: 1}, nil)
	_, s = mustApply(t, s, Command{Type: CmdPass, TeamID: 2}, nil)
	events, s := mustApply(t, s, Command{Type: CmdPass, TeamID: 3}, nil)

	require.True(t, ContainsEvent(events, EvtPlayerUnsold))
	assert.Equal(t, LogUnsold, s.Log[0].Status)
	assert.Equal(t, 1, s.Cursor)
}

func TestResolve_NoBidsIsUnsoldAtZero(t *testing.T) {
	s := newTestState(t, testRules())
	events, s := mustApply(t, s, Command{Type: CmdResolve}, nil)

	require.Equal(t, EvtPlayerUnsold, events[0].Type)
	assert.Equal(t, ReasonNoBids, events[0].Reason)
	assert.True(t, s.Log[0].FinalPrice.IsZero())
	assert.Equal(t, Unsold, s.Log[0].SoldTo)
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, 0, s.TotalRostered())
}

func TestResolve_CapacityRule(t *testing.T) {
	full := func(t *testing.T) State {
		s := newTestState(t, testRules())
		s.Rules.RosterCeiling = 1 // capacity = 3 teams * 1
		for i := range s.Teams {
			s.Teams[i].Roster = []RosterSlot{{Player: catalog.Player{ID: 900 + i}}}
		}
		return s
	}

	t.Run("low value player forced unsold", func(t *testing.T) {
		s := full(t)
		_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
		events, s := mustApply(t, s, Command{Type: CmdResolve}, fixed(0.1))

		require.Equal(t, EvtPlayerUnsold, events[0].Type)
		assert.Equal(t, ReasonCapacity, events[0].Reason)
		team, _ := s.Team(2)
		assert.Len(t, team.Roster, 1)
		assert.True(t, d("120").Equal(team.Budget))
	})

	t.Run("low value player sells when the draw misses", func(t *testing.T) {
		s := full(t)
		_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
		events, _ := mustApply(t, s, Command{Type: CmdResolve}, fixed(0.4))
		assert.Equal(t, EvtPlayerSold, events[0].Type)
	})

	t.Run("important player is never forced", func(t *testing.T) {
		s := full(t)
		s.Cursor = 2 // rating 92
		s.CurrentBid = s.Players[2].BasePrice
		rng := fixed(0.0)
		_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 3}, nil)
		events, _ := mustApply(t, s, Command{Type: CmdResolve}, rng)
		assert.Equal(t, EvtPlayerSold, events[0].Type)
		assert.Zero(t, rng.n, "no draw for important players")
	})

	t.Run("below capacity never draws", func(t *testing.T) {
		s := newTestState(t, testRules())
		rng := fixed(0.0)
		_, _ = mustApply(t, s, Command{Type: CmdResolve}, rng)
		assert.Zero(t, rng.n)
	})
}

func TestResolve_EndsWhenRostersComplete(t *testing.T) {
	s := newTestState(t, testRules())
	var events []Event
	for range 4 {
		events, s = mustApply(t, s, Command{Type: CmdResolve}, nil)
	}
	require.True(t, ContainsEvent(events, EvtAuctionEnded))
	assert.Equal(t, PhaseEnded, s.Phase)
	assert.Equal(t, 4, s.Cursor)

	_, _, err := Apply(s, Command{Type: CmdResolve}, nil)
	require.ErrorIs(t, err, ErrAuctionEnded)
	assert.Equal(t, KindTerminal, Kind(err))
}

func TestReorder_AfterEnd(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
	for range 4 {
		_, s = mustApply(t, s, Command{Type: CmdResolve}, nil)
	}
	require.Equal(t, PhaseEnded, s.Phase)
	before, _ := s.Team(2)
	require.Len(t, before.Roster, 1)

	events, next := mustApply(t, s, Command{
		Type: CmdReorder, SourceTeamID: 2, SourceIndex: 0, DestTeamID: 3, DestIndex: 0,
	}, nil)
	require.Len(t, events, 1)
	assert.Equal(t, EvtRosterReordered, events[0].Type)
	assert.Equal(t, PhaseEnded, next.Phase)
	assert.Equal(t, s.TotalRostered(), next.TotalRostered())

	from, _ := next.Team(2)
	to, _ := next.Team(3)
	assert.Empty(t, from.Roster)
	require.Len(t, to.Roster, 1)
	assert.Equal(t, before.Roster[0].Player.ID, to.Roster[0].Player.ID)
	assert.True(t, before.Budget.Equal(from.Budget), "budgets are untouched")

	_, _, err := Apply(next, Command{Type: CmdBid, TeamID: 1}, nil)
	require.ErrorIs(t, err, ErrAuctionEnded)
}

func TestResolve_IncompleteRosterBlocksEnd(t *testing.T) {
	rules := testRules()
	rules.RosterFloor = 1
	s := newTestState(t, rules)

	// team 2 buys the first player, the rest go unsold
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
	for range 4 {
		_, s = mustApply(t, s, Command{Type: CmdResolve}, nil)
	}
	require.Equal(t, PhaseAwaitingRoster, s.Phase)
	assert.Equal(t, len(s.Players), s.Cursor)
	_, ok := s.CurrentPlayer()
	assert.False(t, ok)

	// resolving again repeats the warnings for both short teams
	events, s := mustApply(t, s, Command{Type: CmdResolve}, nil)
	var short []int
	for _, e := range events {
		require.Equal(t, EvtRosterIncomplete, e.Type)
		short = append(short, e.TeamID)
	}
	assert.Equal(t, []int{1, 3}, short)
	assert.Equal(t, PhaseAwaitingRoster, s.Phase)

	_, _, err := Apply(s, Command{Type: CmdBid, TeamID: 1}, nil)
	require.ErrorIs(t, err, ErrWrongPhase)
}

func TestResolve_RosterCorrectionUnblocksEnd(t *testing.T) {
	rules := testRules()
	rules.RosterFloor = 1
	s := newTestState(t, rules)
	s.Teams[0].Roster = []RosterSlot{{Player: catalog.Player{ID: 900}}, {Player: catalog.Player{ID: 901}}}
	s.Teams[1].Roster = []RosterSlot{{Player: catalog.Player{ID: 902}}}
	for range 4 {
		_, s = mustApply(t, s, Command{Type: CmdResolve}, nil)
	}
	require.Equal(t, PhaseAwaitingRoster, s.Phase)

	_, s = mustApply(t, s, Command{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 1, DestTeamID: 3, DestIndex: 0}, nil)
	events, s := mustApply(t, s, Command{Type: CmdResolve}, nil)
	require.True(t, ContainsEvent(events, EvtAuctionEnded))
	assert.Equal(t, PhaseEnded, s.Phase)
}

func TestForceEnd(t *testing.T) {
	rules := testRules()
	rules.RosterFloor = 5
	s := newTestState(t, rules)

	_, _, err := Apply(s, Command{Type: CmdForceEnd}, nil)
	require.ErrorIs(t, err, ErrWrongPhase, "only once the catalog is exhausted")

	for range 4 {
		_, s = mustApply(t, s, Command{Type: CmdResolve}, nil)
	}
	events, s := mustApply(t, s, Command{Type: CmdForceEnd}, nil)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonForced, events[0].Reason)
	assert.Equal(t, PhaseEnded, s.Phase)
}

func retentionState(t *testing.T) State {
	t.Helper()
	rules := testRules()
	rules.RetentionEnabled = true
	return newTestState(t, rules)
}

func TestConfirmRetention(t *testing.T) {
	s := retentionState(t)

	events, s := mustApply(t, s, Command{
		Type:      CmdConfirmRetention,
		TeamID:    1,
		PlayerIDs: []int{104, 101},
		Prices:    map[int]decimal.Decimal{104: d("4"), 101: d("18")},
	}, nil)

	require.True(t, ContainsEvent(events, EvtRetentionConfirmed))
	require.True(t, ContainsEvent(events, EvtLotOpened))
	assert.Equal(t, PhaseBidding, s.Phase)

	human, _ := s.Team(1)
	assert.True(t, d("98").Equal(human.Budget))
	require.Len(t, human.Roster, 2)
	assert.Equal(t, 104, human.Roster[0].Player.ID)
	assert.True(t, human.Roster[0].Retained)
	assert.Equal(t, LogRetained, s.Log[0].Status)
	assert.Equal(t, "Humans", s.Log[0].SoldTo)

	// retained player 101 is skipped, the auction opens on 102
	p, ok := s.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, 102, p.ID)

	for _, team := range s.Teams[1:] {
		assert.True(t, d("120").Equal(team.Budget))
		assert.Empty(t, team.Roster)
	}
}

func TestConfirmRetention_Rejections(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
		want error
		kind ErrorKind
	}{
		{
			name: "empty selection",
			cmd:  Command{Type: CmdConfirmRetention, TeamID: 1},
			want: ErrEmptyRetention,
			kind: KindRuleViolation,
		},
		{
			name: "not the human team",
			cmd:  Command{Type: CmdConfirmRetention, TeamID: 2, PlayerIDs: []int{101}},
			want: ErrNotHumanTeam,
			kind: KindIneligible,
		},
		{
			name: "not a candidate",
			cmd:  Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{102}},
			want: retention.ErrUnknownCandidate,
			kind: KindIneligible,
		},
		{
			name: "client prices disagree",
			cmd:  Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{101}, Prices: map[int]decimal.Decimal{101: d("11")}},
			want: ErrRetentionPriceMismatch,
			kind: KindRuleViolation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := retentionState(t)
			_, after, err := Apply(s, tc.cmd, nil)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.kind, Kind(err))
			assert.Equal(t, PhaseRetention, after.Phase)
			human, _ := after.Team(1)
			assert.True(t, d("120").Equal(human.Budget))
		})
	}
}

func TestConfirmRetention_OnlyOnce(t *testing.T) {
	s := retentionState(t)
	_, s = mustApply(t, s, Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{101}}, nil)
	_, _, err := Apply(s, Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{104}}, nil)
	require.ErrorIs(t, err, ErrWrongPhase)
}

func TestSkipRetention(t *testing.T) {
	s := retentionState(t)

	_, _, err := Apply(s, Command{Type: CmdBid, TeamID: 1}, nil)
	require.ErrorIs(t, err, ErrWrongPhase, "no bidding before retention is settled")

	events, s := mustApply(t, s, Command{Type: CmdSkipRetention, TeamID: 1}, nil)
	require.True(t, ContainsEvent(events, EvtLotOpened))
	assert.Equal(t, PhaseBidding, s.Phase)
	assert.Equal(t, 0, s.Cursor)
}

func TestReorder(t *testing.T) {
	s := retentionState(t)
	_, s = mustApply(t, s, Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{101, 104}}, nil)
	budgets := map[int]decimal.Decimal{}
	for _, team := range s.Teams {
		budgets[team.ID] = team.Budget
	}

	_, s = mustApply(t, s, Command{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 1, DestTeamID: 1, DestIndex: 0}, nil)
	human, _ := s.Team(1)
	assert.Equal(t, 104, human.Roster[0].Player.ID)
	assert.Equal(t, 101, human.Roster[1].Player.ID)

	_, s = mustApply(t, s, Command{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 0, DestTeamID: 2, DestIndex: 0}, nil)
	human, _ = s.Team(1)
	other, _ := s.Team(2)
	assert.Len(t, human.Roster, 1)
	assert.Len(t, other.Roster, 1)
	assert.Equal(t, 2, s.TotalRostered())

	for _, team := range s.Teams {
		assert.True(t, budgets[team.ID].Equal(team.Budget), "budget of team %d changed", team.ID)
	}
}

func TestReorder_Rejections(t *testing.T) {
	s := retentionState(t)
	_, _, err := Apply(s, Command{Type: CmdReorder, SourceTeamID: 1, DestTeamID: 1}, nil)
	require.ErrorIs(t, err, ErrWrongPhase)

	_, s = mustApply(t, s, Command{Type: CmdConfirmRetention, TeamID: 1, PlayerIDs: []int{101}}, nil)
	cases := []Command{
		{Type: CmdReorder, SourceTeamID: 9, DestTeamID: 1},
		{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 1, DestTeamID: 1},
		{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 0, DestTeamID: 1, DestIndex: 1},
		{Type: CmdReorder, SourceTeamID: 1, SourceIndex: 0, DestTeamID: 2, DestIndex: -1},
	}
	for _, cmd := range cases {
		_, after, err := Apply(s, cmd, nil)
		require.ErrorIs(t, err, ErrBadReorder, "%+v", cmd)
		human, _ := after.Team(1)
		assert.Len(t, human.Roster, 1)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := newTestState(t, testRules())
	_, s = mustApply(t, s, Command{Type: CmdBid, TeamID: 2}, nil)
	before := s.Clone()

	_, _ = mustApply(t, s, Command{Type: CmdPass, TeamID: 1}, nil)
	_, _ = mustApply(t, s, Command{Type: CmdResolve}, fixed(0.9))

	assert.Equal(t, before.Teams, s.Teams)
	assert.Equal(t, before.Withdrawn, s.Withdrawn)
	assert.Equal(t, before.Log, s.Log)
	assert.Equal(t, before.Cursor, s.Cursor)
}

func TestApply_UnsupportedCommand(t *testing.T) {
	s := newTestState(t, testRules())
	_, _, err := Apply(s, Command{Type: "Teleport"}, nil)
	require.ErrorIs(t, err, ErrUnsupportedCommand)
	assert.Equal(t, KindUnknown, Kind(err))
}
