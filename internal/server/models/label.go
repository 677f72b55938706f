package models

import "time"

// Label is a board-scoped colored tag. BoardID is bound at creation and
// immutable thereafter.
type Label struct {
	ID        string
	BoardID   string
	Title     string
	Color     string
	Destroy   bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// LabelColors is the fixed palette labels must draw their color from.
var LabelColors = []string{
	"#61bd4f", // green
	"#f2d600", // yellow
	"#ff9f1a", // orange
	"#eb5a46", // red
	"#c377e0", // purple
	"#0079bf", // blue
	"#00c2e0", // sky
	"#ff78cb", // pink
	"#b6bbbf", // gray
}

// ValidLabelColor reports whether c belongs to the fixed palette.
func ValidLabelColor(c string) bool {
	for _, v := range LabelColors {
		if v == c {
			return true
		}
	}
	return false
}
