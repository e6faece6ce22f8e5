package model1

import "fmt"

// Position identifies a row by section and item index. A bare section
// is expressed with Item set to SectionItem.
type Position struct {
	Section int
	Item    int
}

// SectionItem marks a Position that denotes a whole section.
const SectionItem = -1

// At returns a row position.
func At(section, item int) Position {
	return Position{Section: section, Item: item}
}

// SectionPosition returns a position denoting a whole section.
func SectionPosition(section int) Position {
	return Position{Section: section, Item: SectionItem}
}

// IsSection returns true if the position denotes a whole section.
func (p Position) IsSection() bool {
	return p.Item == SectionItem
}

func (p Position) String() string {
	if p.IsSection() {
		return fmt.Sprintf("[%d]", p.Section)
	}
	return fmt.Sprintf("[%d,%d]", p.Section, p.Item)
}

// Less orders positions by section then item.
func (p Position) Less(o Position) bool {
	if p.Section != o.Section {
		return p.Section < o.Section
	}
	return p.Item < o.Item
}

// Positions represents a collection of positions.
type Positions []Position

func (pp Positions) Len() int           { return len(pp) }
func (pp Positions) Swap(i, j int)      { pp[i], pp[j] = pp[j], pp[i] }
func (pp Positions) Less(i, j int) bool { return pp[i].Less(pp[j]) }

// Sections returns the section indexes of the positions.
func (pp Positions) Sections() []int {
	out := make([]int, 0, len(pp))
	for _, p := range pp {
		out = append(out, p.Section)
	}
	return out
}
