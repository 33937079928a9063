package behavior

// GUIHierarchy is the startup hierarchy of the editable robot. The first
// five are active; the rest are available from the editor.
func GUIHierarchy() []Behavior {
	return []Behavior{
		{Label: "ESCAPE FRONT", Kind: EscapeFront, Enabled: true},
		{Label: "ESCAPE BACK", Kind: EscapeBack, Enabled: true},
		{Label: "AVOID", Kind: Avoid, Enabled: true},
		{Label: "SEEK LIGHT", Kind: SeekLight, Enabled: true},
		{Label: "CRUISE STRAIGHT", Kind: CruiseStraight, Enabled: true},
		{Label: "SEEK DARK", Kind: SeekDark},
		{Label: "APPROACH", Kind: Approach},
		{Label: "CRUISE ARC", Kind: CruiseArc},
	}
}

// PlainHierarchy is the fixed hierarchy of the non-editable robot.
func PlainHierarchy() []Behavior {
	return []Behavior{
		{Label: "ESCAPE FRONT", Kind: EscapeFront, Enabled: true},
		{Label: "ESCAPE BACK", Kind: EscapeBack, Enabled: true},
		{Label: "AVOID", Kind: Avoid, Enabled: true},
		{Label: "SEEK LIGHT", Kind: SeekLight, Enabled: true},
		{Label: "CRUISE STRAIGHT", Kind: CruiseStraight, Enabled: true},
	}
}
