package model1

import "github.com/gdamore/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// MoveColor row moved color
	MoveColor tcell.Color = tcell.ColorDarkCyan

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// HighlightColor row highlight color
	HighlightColor tcell.Color = tcell.ColorAqua

	// SectionColor section title color
	SectionColor tcell.Color = tcell.ColorYellow
)

// OpColor returns the color used to flag a row touched by the given kind.
func OpColor(k OpKind) tcell.Color {
	switch k {
	case OpInsertRow, OpInsertSection:
		return AddColor
	case OpUpdateRow, OpUpdateSection:
		return ModColor
	case OpMoveRow, OpMoveSection:
		return MoveColor
	default:
		return StdColor
	}
}

// AnimationStyle returns the color and attributes for a touched row.
// The bool is false when the row should keep its standard style.
func AnimationStyle(k OpKind, a AnimationKind) (tcell.Color, tcell.AttrMask, bool) {
	switch a {
	case AnimationAutomatic:
		return OpColor(k), tcell.AttrNone, true
	case AnimationHighlight:
		return HighlightColor, tcell.AttrBold, true
	case AnimationFade:
		return OpColor(k), tcell.AttrDim, true
	default:
		return StdColor, tcell.AttrNone, false
	}
}
