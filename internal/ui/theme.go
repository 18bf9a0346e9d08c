package ui

import (
	"strings"

	"github.com/Makepad-fr/wegive/internal/model"
)

// Theme bundles palette, status symbols and box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	SymAvailable, SymClaimed, SymCollected        string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			SymAvailable: "◆", SymClaimed: "◇", SymCollected: "✔",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			SymAvailable: "[ ]", SymClaimed: "[~]", SymCollected: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			SymAvailable: "●", SymClaimed: "◐", SymCollected: "✔",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// Status returns the colour and symbol for an item status.
func (t Theme) Status(s model.Status) (color, sym string) {
	switch s {
	case model.StatusClaimed:
		return t.Pending, t.SymClaimed
	case model.StatusCollected:
		return t.Muted, t.SymCollected
	}
	return t.Success, t.SymAvailable
}
