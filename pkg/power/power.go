// Package power models the input power consumed by actuated sail sections,
// as a tagged union over lookup tables keyed by the section's internal
// state.
package power

import (
	"math"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// Variant is one alternative of the input power model union.
type Variant interface {
	document.Variant
	Validate() error
	powerVariant()
}

var modelUnion = document.NewUnion("input power model").
	Unit("NoPower", func() document.Variant { return NoPower{} }).
	Payload("FromInternalStateAlone", func() document.Variant { return &FromInternalStateAlone{} }).
	Payload("FromInternalStateAndVelocity", func() document.Variant { return &FromInternalStateAndVelocity{} })

// Model holds exactly one active input power variant. The zero value is not
// usable; NewModel or one of the constructors below must be used.
type Model struct {
	Variant Variant
}

// NewModel wraps a variant in an input power union value.
func NewModel(v Variant) Model {
	return Model{Variant: v}
}

// NewNoPower returns the default model: the section consumes no power.
func NewNoPower() Model {
	return NewModel(NoPower{})
}

// fixedPowerLawExponent is the exponent of the derived-default power law.
// Rotor input power grows with the cube of the rotation rate.
const fixedPowerLawExponent = 3.0

// NewCubicFromMaxPower derives a power table by fitting the fixed-exponent
// power law through (0, 0) and (maxInternalState, maxPower), sampled at
// nrPoints evenly spaced internal state values.
func NewCubicFromMaxPower(maxInternalState, maxPower float64, nrPoints int) (Model, error) {
	if maxInternalState <= 0.0 || maxPower <= 0.0 {
		return Model{}, document.NewSchemaViolation("power law reference point must be positive")
	}
	if nrPoints < 2 {
		return Model{}, document.NewSchemaViolation("power table needs at least two points")
	}

	states := make([]float64, nrPoints)
	coefficients := make([]float64, nrPoints)
	for i := range states {
		s := maxInternalState * float64(i) / float64(nrPoints-1)
		states[i] = s
		coefficients[i] = maxPower * math.Pow(s/maxInternalState, fixedPowerLawExponent)
	}

	return NewModel(&FromInternalStateAlone{Data: Data{
		SectionModelsInternalStateData: states,
		InputPowerCoefficientData:      coefficients,
	}}), nil
}

// Validate checks that a variant is active and valid.
func (m Model) Validate() error {
	if m.Variant == nil {
		return document.NewSchemaViolation("input power model has no active variant")
	}
	return m.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (m Model) MarshalJSON() ([]byte, error) {
	return modelUnion.Encode(m.Variant)
}

// UnmarshalJSON decodes a bare variant string or a single-key variant object.
func (m *Model) UnmarshalJSON(data []byte) error {
	v, err := modelUnion.Decode(data)
	if err != nil {
		return err
	}
	m.Variant = v.(Variant)
	return nil
}

// NoPower is the payload-less default variant.
type NoPower struct{}

// VariantTag implements document.Variant.
func (NoPower) VariantTag() string { return "NoPower" }

// Validate implements document.Document.
func (NoPower) Validate() error { return nil }

func (NoPower) powerVariant() {}

// Data is the lookup table shared by the table-driven variants: input power
// coefficient as a function of the section model's internal state.
type Data struct {
	SectionModelsInternalStateData []float64 `json:"section_models_internal_state_data"`
	InputPowerCoefficientData      []float64 `json:"input_power_coefficient_data"`
}

// Validate checks the two table columns stay in lock-step.
func (d Data) Validate() error {
	if len(d.SectionModelsInternalStateData) != len(d.InputPowerCoefficientData) {
		return document.NewSchemaViolation("internal state and power coefficient tables differ in length").
			WithField("input_power_coefficient_data")
	}
	return nil
}

// FromInternalStateAlone scales the tabulated coefficient by section area
// only.
type FromInternalStateAlone struct {
	Data
}

// VariantTag implements document.Variant.
func (*FromInternalStateAlone) VariantTag() string { return "FromInternalStateAlone" }

func (*FromInternalStateAlone) powerVariant() {}

// FromInternalStateAndVelocity additionally scales the tabulated coefficient
// by the squared local velocity.
type FromInternalStateAndVelocity struct {
	Data
}

// VariantTag implements document.Variant.
func (*FromInternalStateAndVelocity) VariantTag() string { return "FromInternalStateAndVelocity" }

func (*FromInternalStateAndVelocity) powerVariant() {}
