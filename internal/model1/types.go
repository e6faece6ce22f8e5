package model1

import (
	"fmt"
	"strings"
)

const NAValue = "n/a"

// OpKind represents a structural change kind.
type OpKind int

const (
	OpInsertRow OpKind = 1 << iota
	OpDeleteRow
	OpUpdateRow
	OpMoveRow
	OpInsertSection
	OpDeleteSection
	OpUpdateSection
	OpMoveSection
)

// RowKinds and SectionKinds mask the two granularities.
const (
	RowKinds     = OpInsertRow | OpDeleteRow | OpUpdateRow | OpMoveRow
	SectionKinds = OpInsertSection | OpDeleteSection | OpUpdateSection | OpMoveSection
)

var opNames = map[OpKind]string{
	OpInsertRow:     "insertRow",
	OpDeleteRow:     "deleteRow",
	OpUpdateRow:     "updateRow",
	OpMoveRow:       "moveRow",
	OpInsertSection: "insertSection",
	OpDeleteSection: "deleteSection",
	OpUpdateSection: "updateSection",
	OpMoveSection:   "moveSection",
}

func (k OpKind) String() string {
	if n, ok := opNames[k]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// IsSection returns true if the kind operates on whole sections.
func (k OpKind) IsSection() bool {
	return k&SectionKinds != 0
}

// AnimationKind represents a visual transition category. The sink decides
// what each category looks like.
type AnimationKind string

const (
	AnimationNone      AnimationKind = "none"
	AnimationAutomatic AnimationKind = "automatic"
	AnimationFade      AnimationKind = "fade"
	AnimationHighlight AnimationKind = "highlight"
)

// AnimationKinds lists the known animation categories.
var AnimationKinds = []AnimationKind{
	AnimationNone,
	AnimationAutomatic,
	AnimationFade,
	AnimationHighlight,
}

// ParseAnimationKind converts a config value into an AnimationKind.
// Blank values map to AnimationNone.
func ParseAnimationKind(s string) (AnimationKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AnimationNone, nil
	}
	for _, k := range AnimationKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return AnimationNone, fmt.Errorf("unknown animation kind %q", s)
}

// IsNone returns true when no visual transition applies.
func (a AnimationKind) IsNone() bool {
	return a == "" || a == AnimationNone
}
