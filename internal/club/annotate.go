package club

import "strings"

var flagNotes = map[string]string{
	"red":    "A red flag indicates the hole is at the front of the green.",
	"blue":   "A blue flag denotes the pin is at the back of the green.",
	"yellow": "A yellow flag shows the pin position is at the back of the green.",
	"white":  "A white flag signals the hole position is in the middle of the green.",
}

var lieNotes = map[string]string{
	"rough": "Ball is in the rough; expect less carry and spin.",
	"sand":  "Ball is in a bunker; expect reduced distance.",
}

var categoryHints = map[Category]string{
	CategoryDriver: "Driver: maximum distance off the tee.",
	CategoryWood:   "Fairway wood: long shots from a good lie.",
	CategoryHybrid: "Hybrid: forgiving long club, works from light rough.",
	CategoryIron:   "Iron: approach shot with controlled trajectory.",
	CategoryWedge:  "Wedge: short, high shot that stops quickly.",
	CategoryPutter: "Putter: rolling the ball on the green.",
}

// FlagNote explains what a flag colour says about pin position.
// Unknown colours yield "".
func FlagNote(color string) string {
	return flagNotes[strings.ToLower(strings.TrimSpace(color))]
}

// LieNote describes the lie; sand takes precedence over rough.
func LieNote(rough, sand bool) string {
	switch {
	case sand:
		return lieNotes["sand"]
	case rough:
		return lieNotes["rough"]
	default:
		return ""
	}
}

// ClubHint returns the hint for a club's category.
func ClubHint(c Club) string {
	return categoryHints[c.Category]
}
