package model1

// AnimationConfig maps each change kind to the animation category the
// sink should use. Zero values mean AnimationNone.
type AnimationConfig struct {
	Insert        AnimationKind `yaml:"insert" ini:"insert"`
	Update        AnimationKind `yaml:"update" ini:"update"`
	Move          AnimationKind `yaml:"move" ini:"move"`
	Delete        AnimationKind `yaml:"delete" ini:"delete"`
	InsertSection AnimationKind `yaml:"insertSection" ini:"insertSection"`
	DeleteSection AnimationKind `yaml:"deleteSection" ini:"deleteSection"`
	UpdateSection AnimationKind `yaml:"updateSection" ini:"updateSection"`
}

// NewAnimationConfig returns a config with every category set to none.
func NewAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Insert:        AnimationNone,
		Update:        AnimationNone,
		Move:          AnimationNone,
		Delete:        AnimationNone,
		InsertSection: AnimationNone,
		DeleteSection: AnimationNone,
		UpdateSection: AnimationNone,
	}
}

// For returns the category configured for a change kind.
func (c AnimationConfig) For(k OpKind) AnimationKind {
	var a AnimationKind
	switch k {
	case OpInsertRow:
		a = c.Insert
	case OpUpdateRow:
		a = c.Update
	case OpMoveRow, OpMoveSection:
		a = c.Move
	case OpDeleteRow:
		a = c.Delete
	case OpInsertSection:
		a = c.InsertSection
	case OpDeleteSection:
		a = c.DeleteSection
	case OpUpdateSection:
		a = c.UpdateSection
	}
	if a == "" {
		return AnimationNone
	}

	return a
}

// Merge returns c overridden by the non blank categories of o.
func (c AnimationConfig) Merge(o AnimationConfig) AnimationConfig {
	pick := func(a, b AnimationKind) AnimationKind {
		if b != "" {
			return b
		}
		return a
	}

	return AnimationConfig{
		Insert:        pick(c.Insert, o.Insert),
		Update:        pick(c.Update, o.Update),
		Move:          pick(c.Move, o.Move),
		Delete:        pick(c.Delete, o.Delete),
		InsertSection: pick(c.InsertSection, o.InsertSection),
		DeleteSection: pick(c.DeleteSection, o.DeleteSection),
		UpdateSection: pick(c.UpdateSection, o.UpdateSection),
	}
}

// Validate checks every category is a known animation kind.
func (c AnimationConfig) Validate() error {
	_, err := c.Normalize()
	return err
}

// Normalize returns the config with every category parsed into its
// canonical kind, so "Fade " becomes fade and blanks become none.
func (c AnimationConfig) Normalize() (AnimationConfig, error) {
	for _, a := range []*AnimationKind{
		&c.Insert, &c.Update, &c.Move, &c.Delete,
		&c.InsertSection, &c.DeleteSection, &c.UpdateSection,
	} {
		k, err := ParseAnimationKind(string(*a))
		if err != nil {
			return AnimationConfig{}, err
		}
		*a = k
	}

	return c, nil
}
