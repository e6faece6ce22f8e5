package data

// FeatureGates controls which edits users may perform.
type FeatureGates struct {
	// Move enables row reordering.
	Move bool `yaml:"move"`

	// Delete enables row deletion.
	Delete bool `yaml:"delete"`

	// Insert enables row creation.
	Insert bool `yaml:"insert"`

	// Sort enables in place section sorting.
	Sort bool `yaml:"sort"`

	// Edit enables changing row content in an external editor.
	Edit bool `yaml:"edit"`
}

// NewFeatureGates creates FeatureGates with every edit enabled.
func NewFeatureGates() FeatureGates {
	return FeatureGates{
		Move:   true,
		Delete: true,
		Insert: true,
		Sort:   true,
		Edit:   true,
	}
}

// ReadOnly returns gates with every edit disabled.
func ReadOnly() FeatureGates {
	return FeatureGates{}
}

// Any returns true if at least one edit is enabled.
func (f FeatureGates) Any() bool {
	return f.Move || f.Delete || f.Insert || f.Sort || f.Edit
}
