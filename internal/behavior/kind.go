package behavior

import (
	"fmt"
	"strings"
)

// #region kind

// Kind identifies which reflex a behavior runs.
type Kind int

const (
	SeekLight Kind = iota
	SeekDark
	Approach
	Avoid
	EscapeFront
	EscapeBack
	CruiseStraight
	CruiseArc
)

var kindNames = [...]string{
	SeekLight:      "SeekLight",
	SeekDark:       "SeekDark",
	Approach:       "Approach",
	Avoid:          "Avoid",
	EscapeFront:    "EscapeFront",
	EscapeBack:     "EscapeBack",
	CruiseStraight: "CruiseStraight",
	CruiseArc:      "CruiseArc",
}

var kindLabels = [...]string{
	SeekLight:      "SEEK LIGHT",
	SeekDark:       "SEEK DARK",
	Approach:       "APPROACH",
	Avoid:          "AVOID",
	EscapeFront:    "ESCAPE FRONT",
	EscapeBack:     "ESCAPE BACK",
	CruiseStraight: "CRUISE STRAIGHT",
	CruiseArc:      "CRUISE ARC",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{SeekLight, SeekDark, Approach, Avoid, EscapeFront, EscapeBack, CruiseStraight, CruiseArc}
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label is the upper-case name shown on the robot display.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= SeekLight && k <= CruiseArc
}

// ParseKind accepts "SeekLight", "seek_light", "seek-light" or "SEEK LIGHT".
func ParseKind(s string) (Kind, error) {
	want := normalize(s)
	for _, k := range Kinds() {
		if normalize(kindNames[k]) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior kind %q", s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// #endregion kind
