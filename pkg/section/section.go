// Package section models the per-section aerodynamic description of a wing:
// a tagged union of foil curves, interpolated foil families, rotating
// cylinders, and passive wind sensors.
package section

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// Variant is one alternative of the section model union.
type Variant interface {
	document.Variant
	Validate() error
	sectionVariant()
}

var modelUnion = document.NewUnion("section model").
	Payload("Foil", func() document.Variant { return &Foil{} }).
	Payload("VaryingFoil", func() document.Variant { return &VaryingFoil{} }).
	Payload("RotatingCylinder", func() document.Variant { return &RotatingCylinder{} }).
	Unit("EffectiveWindSensor", func() document.Variant { return EffectiveWindSensor{} })

// Model holds exactly one active section model variant and implements the
// externally tagged wire encoding for it.
type Model struct {
	Variant Variant
}

// NewModel wraps a variant in a section model union value.
func NewModel(v Variant) Model {
	return Model{Variant: v}
}

// Validate checks that a variant is active and valid.
func (m Model) Validate() error {
	if m.Variant == nil {
		return document.NewSchemaViolation("section model has no active variant")
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

// Foil describes a lift/drag curve through independently optional numeric
// coefficients. Unset coefficients are omitted on the wire so the engine
// fills its own defaults.
type Foil struct {
	ClZeroAngle               *float64 `json:"cl_zero_angle,omitempty"`
	ClInitialSlope            *float64 `json:"cl_initial_slope,omitempty"`
	ClHighOrderFactorPositive *float64 `json:"cl_high_order_factor_positive,omitempty"`
	ClHighOrderFactorNegative *float64 `json:"cl_high_order_factor_negative,omitempty"`
	ClHighOrderPower          *float64 `json:"cl_high_order_power,omitempty"`
	ClMaxAfterStall           *float64 `json:"cl_max_after_stall,omitempty"`
	CdMin                     *float64 `json:"cd_min,omitempty"`
	AngleCdMin                *float64 `json:"angle_cd_min,omitempty"`
	CdSecondOrderFactor       *float64 `json:"cd_second_order_factor,omitempty"`
	CdMaxAfterStall           *float64 `json:"cd_max_after_stall,omitempty"`
	CdPowerAfterStall         *float64 `json:"cd_power_after_stall,omitempty"`
	CdiCorrectionFactor       *float64 `json:"cdi_correction_factor,omitempty"`
	MeanPositiveStallAngle    *float64 `json:"mean_positive_stall_angle,omitempty"`
	MeanNegativeStallAngle    *float64 `json:"mean_negative_stall_angle,omitempty"`
	StallRange                *float64 `json:"stall_range,omitempty"`
	CdStallAngleOffset        *float64 `json:"cd_stall_angle_offset,omitempty"`
	CdBumpDuringStall         *float64 `json:"cd_bump_during_stall,omitempty"`
	AddedMassFactor           *float64 `json:"added_mass_factor,omitempty"`
}

// VariantTag implements document.Variant.
func (*Foil) VariantTag() string { return "Foil" }

// Validate implements document.Document. Every coefficient is independently
// optional, so a foil is always structurally valid.
func (*Foil) Validate() error { return nil }

func (*Foil) sectionVariant() {}

// VaryingFoil is a family of foils interpolated by an internal state value,
// for sections whose shape changes with an actuation input such as a flap
// angle. The state table is expected to be monotonically increasing; the
// engine relies on it but this layer does not enforce it.
type VaryingFoil struct {
	InternalStateData []float64 `json:"internal_state_data"`
	FoilsData         []Foil    `json:"foils_data"`

	// CurrentInternalState is interpolation bookkeeping, not geometry.
	CurrentInternalState *float64 `json:"current_internal_state,omitempty"`
}

// VariantTag implements document.Variant.
func (*VaryingFoil) VariantTag() string { return "VaryingFoil" }

// Validate checks the state table and foil family stay in lock-step.
func (v *VaryingFoil) Validate() error {
	if len(v.InternalStateData) != len(v.FoilsData) {
		return document.NewSchemaViolation("internal state table and foil family differ in length").
			WithField("internal_state_data")
	}
	for i := range v.FoilsData {
		if err := v.FoilsData[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (*VaryingFoil) sectionVariant() {}

// RotatingCylinder models a rotor-sail section: a spinning cylinder with an
// optional override table for lift and drag as a function of spin ratio.
type RotatingCylinder struct {
	RevolutionsPerSecond float64   `json:"revolutions_per_second"`
	SpinRatioData        []float64 `json:"spin_ratio_data,omitempty"`
	ClData               []float64 `json:"cl_data,omitempty"`
	CdData               []float64 `json:"cd_data,omitempty"`
	AddedMassFactor      *float64  `json:"added_mass_factor,omitempty"`
}

// VariantTag implements document.Variant.
func (*RotatingCylinder) VariantTag() string { return "RotatingCylinder" }

// Validate checks that any provided override tables match the spin ratio
// table in length.
func (r *RotatingCylinder) Validate() error {
	if r.ClData != nil && len(r.ClData) != len(r.SpinRatioData) {
		return document.NewSchemaViolation("cl table and spin ratio table differ in length").
			WithField("cl_data")
	}
	if r.CdData != nil && len(r.CdData) != len(r.SpinRatioData) {
		return document.NewSchemaViolation("cd table and spin ratio table differ in length").
			WithField("cd_data")
	}
	return nil
}

func (*RotatingCylinder) sectionVariant() {}

// EffectiveWindSensor is a passive measurement section with no aerodynamic
// payload. It encodes as the bare variant string.
type EffectiveWindSensor struct{}

// VariantTag implements document.Variant.
func (EffectiveWindSensor) VariantTag() string { return "EffectiveWindSensor" }

// Validate implements document.Document.
func (EffectiveWindSensor) Validate() error { return nil }

func (EffectiveWindSensor) sectionVariant() {}
