package render

const (
	// NAValue stands in for empty cells.
	NAValue = "n/a"

	// MaxCellWidth caps a rendered cell, in runes.
	MaxCellWidth = 48
)
