package game

import "math"

const (
	drawMargin     = 0.05 // coverage points; closer finishes are draws
	decisiveMargin = 10.0
)

type MatchOutcome int

const (
	OutcomeInconclusive MatchOutcome = iota
	OutcomeCyanVictory
	OutcomePinkVictory
	OutcomeDraw
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeCyanVictory:
		return "cyan_victory"
	case OutcomePinkVictory:
		return "pink_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Winner returns the winning team, or TeamNone for draws and unfinished matches.
func (o MatchOutcome) Winner() Team {
	switch o {
	case OutcomeCyanVictory:
		return TeamCyan
	case OutcomePinkVictory:
		return TeamPink
	default:
		return TeamNone
	}
}

type MatchOutcomeReason struct {
	Outcome     MatchOutcome
	CyanPct     float64
	PinkPct     float64
	CyanKills   int
	PinkKills   int
	Margin      float64 // winner minus loser coverage, percentage points
	Description string
}

// DetermineOutcome decides a match on turf coverage. Kills are reported but
// never decide the result.
func DetermineOutcome(finished bool, s Scores, combatants []*Combatant) MatchOutcomeReason {
	r := MatchOutcomeReason{CyanPct: s.Cyan, PinkPct: s.Pink}
	for _, c := range combatants {
		switch c.Team() {
		case TeamCyan:
			r.CyanKills += c.Kills()
		case TeamPink:
			r.PinkKills += c.Kills()
		}
	}
	r.Margin = math.Abs(s.Cyan - s.Pink)

	if !finished {
		r.Outcome = OutcomeInconclusive
		r.Description = "inconclusive_match_running"
		return r
	}
	if r.Margin < drawMargin {
		r.Outcome = OutcomeDraw
		r.Description = "draw_equal_coverage"
		return r
	}

	lead := "cyan"
	r.Outcome = OutcomeCyanVictory
	if s.Pink > s.Cyan {
		lead = "pink"
		r.Outcome = OutcomePinkVictory
	}
	if r.Margin >= decisiveMargin {
		r.Description = "decisive_" + lead + "_victory"
	} else {
		r.Description = "narrow_" + lead + "_victory"
	}
	return r
}

// Outcome evaluates the match in its current state.
func (m *Match) Outcome() MatchOutcomeReason {
	return DetermineOutcome(m.finished, m.scores, m.combatants)
}
