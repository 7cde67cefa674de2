// Package form holds the state of the submission form and turns it into a
// pipeline invocation.
package form

import "maps"

// Visibility tracks which conditional fields are currently shown.
type Visibility struct {
	Reference    bool // referenceFile and its label
	DoradoGroup  bool // doradoInputDir, doradoOutputDir
	GenericGroup bool // genericInputDir, genericOutputDir
	KitName      bool
}

// State is the form: raw field values plus the visibility derived from the
// two selectors. Hidden fields keep their values.
type State struct {
	Values  map[string]string
	Visible Visibility
}

// NewState returns a form with the default selections, toggled once as on
// first page load.
func NewState() State {
	return FromValues(map[string]string{
		FieldBasecalling: DefaultMode,
		FieldQuast:       DefaultQuast,
	})
}

// FromValues builds a form from posted values. Missing selectors fall back to
// the defaults.
func FromValues(values map[string]string) State {
	var s = State{Values: make(map[string]string, len(FieldList))}
	maps.Copy(s.Values, values)
	if s.Values[FieldBasecalling] == "" {
		s.Values[FieldBasecalling] = DefaultMode
	}
	if s.Values[FieldQuast] == "" {
		s.Values[FieldQuast] = DefaultQuast
	}
	s.toggle()
	return s
}

func (s *State) toggle() {
	s.SetBasecallingMode(s.Values[FieldBasecalling])
	s.SetQualityAssessmentVisibility(s.Values[FieldQuast] == Yes)
}

// Get returns the raw value of a field.
func (s State) Get(field string) string {
	return s.Values[field]
}

// Set stores a field value. Changing a selector re-runs its toggle, the same
// way a change event would.
func (s *State) Set(field, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[field] = value
	switch field {
	case FieldBasecalling:
		s.SetBasecallingMode(value)
	case FieldQuast:
		s.SetQualityAssessmentVisibility(value == Yes)
	}
}

// SetQualityAssessmentVisibility shows or hides the reference file field
// together with its label.
func (s *State) SetQualityAssessmentVisibility(enabled bool) {
	s.Visible.Reference = enabled
}

// SetBasecallingMode shows the directory group matching mode and hides the
// other one. The kit name is only shown for dorado.
func (s *State) SetBasecallingMode(mode string) {
	var dorado = mode == Dorado
	s.Visible.DoradoGroup = dorado
	s.Visible.GenericGroup = !dorado
	s.Visible.KitName = dorado
}

// Mode returns the selected basecalling mode.
func (s State) Mode() string {
	return s.Values[FieldBasecalling]
}

// Clone returns a copy that shares no map with s.
func (s State) Clone() State {
	return State{
		Values:  maps.Clone(s.Values),
		Visible: s.Visible,
	}
}
