package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/DoyleJ11/cricket-auction/internal/catalog"
	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/report"
	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Printf("✓ %s", msg)
	} else {
		green.Print(msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Printf("⚠️  %s", msg)
	} else {
		yellow.Print(msg)
	}
}

// Error prints title, explanation and suggestions to stderr and returns a
// plain error carrying only the title for Cobra
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	fmt.Fprintf(os.Stderr, "%s\n", explanation)

	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(os.Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(os.Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Event prints one auction event as a single colored line.
func Event(w io.Writer, s engine.State, e engine.Event) {
	team, _ := s.Team(e.TeamID)
	name := ""
	for _, p := range s.Players {
		if p.ID == e.PlayerID {
			name = p.Name
			break
		}
	}

	switch e.Type {
	case engine.EvtPlayerSold:
		green.Fprintf(w, "  SOLD    %-24s %-28s ₹%sCr\n", name, team.Name, e.Amount.StringFixed(2))
	case engine.EvtPlayerUnsold:
		yellow.Fprintf(w, "  UNSOLD  %-24s (%s)\n", name, e.Reason)
	case engine.EvtPlayerRetained:
		cyan.Fprintf(w, "  KEPT    %-24s %-28s ₹%sCr\n", name, team.Name, e.Amount.StringFixed(2))
	case engine.EvtRosterIncomplete:
		yellow.Fprintf(w, "  SHORT   %s has %d players\n", team.Name, e.Count)
	case engine.EvtAuctionEnded:
		bold.Fprintf(w, "  auction ended %s\n", e.Reason)
	}
}

// Report renders the auction sheet followed by the team summary.
func Report(w io.Writer, r report.Report) error {
	bold.Fprintf(w, "Auction sheet (%s)\n", r.Phase)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROLE\tBASE\tFINAL\tSOLD TO")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Name, row.Role, row.BasePrice.StringFixed(2), row.FinalPrice.StringFixed(2), row.SoldTo)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Teams")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tPLAYERS\tOVERSEAS\tSPENT\tLEFT\tBAT/BOWL/AR/WK")
	for _, t := range r.Teams {
		mark := ""
		if t.Short {
			mark = " !"
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%s\t%s\t%d/%d/%d/%d\n",
			t.Name, mark, t.Players, t.Overseas, t.Spent.StringFixed(2), t.Remaining.StringFixed(2),
			t.Roles[catalog.RoleBatsman], t.Roles[catalog.RoleBowler],
			t.Roles[catalog.RoleAllRounder], t.Roles[catalog.RoleWicketkeeper])
	}
	return tw.Flush()
}
