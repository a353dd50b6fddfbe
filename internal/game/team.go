package game

import "image/color"

// Team identifies a side. The zero value marks unpainted (neutral) ground.
type Team uint8

const (
	TeamNone  Team = iota // neutral / unpainted
	TeamCyan              // team 1, human side
	TeamPink              // team 2
	teamCount             // sentinel
)

func (t Team) String() string {
	switch t {
	case TeamNone:
		return "none"
	case TeamCyan:
		return "cyan"
	case TeamPink:
		return "pink"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a playing team (not neutral, not out of range).
func (t Team) Valid() bool {
	return t > TeamNone && t < teamCount
}

// Opponent returns the other playing team.
func (t Team) Opponent() Team {
	if t == TeamCyan {
		return TeamPink
	}
	return TeamCyan
}

// labelPrefix is the single-letter prefix used for combatant labels ("C0", "P5").
func (t Team) labelPrefix() string {
	if t == TeamCyan {
		return "C"
	}
	return "P"
}

// Colour returns the team's ink colour.
func (t Team) Colour() color.RGBA {
	switch t {
	case TeamCyan:
		return color.RGBA{R: 38, G: 217, B: 230, A: 255}
	case TeamPink:
		return color.RGBA{R: 245, G: 36, B: 123, A: 255}
	default:
		return color.RGBA{}
	}
}
