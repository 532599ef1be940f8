package simulation

import (
	"encoding/json"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// SymmetryCondition mirrors the wake across a coordinate plane. It is a
// plain closed enum, not a payload-bearing union.
type SymmetryCondition string

const (
	// NoSymmetry disables wake mirroring.
	NoSymmetry SymmetryCondition = "NoSymmetry"

	// SymmetryX mirrors across the x-plane.
	SymmetryX SymmetryCondition = "X"

	// SymmetryY mirrors across the y-plane.
	SymmetryY SymmetryCondition = "Y"

	// SymmetryZ mirrors across the z-plane.
	SymmetryZ SymmetryCondition = "Z"
)

// CoreVariant is one alternative of the viscous core length union.
type CoreVariant interface {
	document.Variant
	Validate() error
	coreVariant()
}

var coreUnion = document.NewUnion("viscous core length").
	Payload("Relative", func() document.Variant { return &RelativeCoreLength{} }).
	Payload("Absolute", func() document.Variant { return &AbsoluteCoreLength{} }).
	Unit("NoViscousCore", func() document.Variant { return NoViscousCore{} })

// ViscousCoreLength regularizes the induced velocity singularity near each
// vortex filament.
type ViscousCoreLength struct {
	Variant CoreVariant
}

// NewRelativeCoreLength returns a core length relative to the local element
// length.
func NewRelativeCoreLength(value float64) ViscousCoreLength {
	return ViscousCoreLength{Variant: &RelativeCoreLength{Value: value}}
}

// NewAbsoluteCoreLength returns a fixed core length in meters.
func NewAbsoluteCoreLength(value float64) ViscousCoreLength {
	return ViscousCoreLength{Variant: &AbsoluteCoreLength{Value: value}}
}

// NewDefaultCoreLength returns the canonical default, a relative core
// length of 0.1.
func NewDefaultCoreLength() ViscousCoreLength {
	return NewRelativeCoreLength(0.1)
}

// Validate checks that a variant is active and valid.
func (c ViscousCoreLength) Validate() error {
	if c.Variant == nil {
		return document.NewSchemaViolation("viscous core length has no active variant")
	}
	return c.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (c ViscousCoreLength) MarshalJSON() ([]byte, error) {
	return coreUnion.Encode(c.Variant)
}

// UnmarshalJSON decodes a bare variant string or a single-key variant object.
func (c *ViscousCoreLength) UnmarshalJSON(data []byte) error {
	v, err := coreUnion.Decode(data)
	if err != nil {
		return err
	}
	c.Variant = v.(CoreVariant)
	return nil
}

// RelativeCoreLength scales the core length by the local element length.
// Its payload is the bare factor.
type RelativeCoreLength struct {
	Value float64
}

// VariantTag implements document.Variant.
func (*RelativeCoreLength) VariantTag() string { return "Relative" }

// Validate implements document.Document.
func (r *RelativeCoreLength) Validate() error {
	if r.Value < 0.0 {
		return document.NewSchemaViolation("relative core length must not be negative").
			WithField("Relative")
	}
	return nil
}

func (*RelativeCoreLength) coreVariant() {}

// MarshalJSON emits the bare factor.
func (r *RelativeCoreLength) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value)
}

// UnmarshalJSON reads the bare factor.
func (r *RelativeCoreLength) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Value); err != nil {
		return document.NewSchemaViolation("relative core length must be a number")
	}
	return nil
}

// AbsoluteCoreLength is a fixed core length in meters. Its payload is the
// bare length.
type AbsoluteCoreLength struct {
	Value float64
}

// VariantTag implements document.Variant.
func (*AbsoluteCoreLength) VariantTag() string { return "Absolute" }

// Validate implements document.Document.
func (a *AbsoluteCoreLength) Validate() error {
	if a.Value < 0.0 {
		return document.NewSchemaViolation("absolute core length must not be negative").
			WithField("Absolute")
	}
	return nil
}

func (*AbsoluteCoreLength) coreVariant() {}

// MarshalJSON emits the bare length.
func (a *AbsoluteCoreLength) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value)
}

// UnmarshalJSON reads the bare length.
func (a *AbsoluteCoreLength) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &a.Value); err != nil {
		return document.NewSchemaViolation("absolute core length must be a number")
	}
	return nil
}

// NoViscousCore disables the regularization.
type NoViscousCore struct{}

// VariantTag implements document.Variant.
func (NoViscousCore) VariantTag() string { return "NoViscousCore" }

// Validate implements document.Document.
func (NoViscousCore) Validate() error { return nil }

func (NoViscousCore) coreVariant() {}

// QuasiSteadyWakeSettings configures the frozen wake of a quasi-steady
// simulation.
type QuasiSteadyWakeSettings struct {
	WakeLengthFactor  float64           `json:"wake_length_factor" validate:"gt=0"`
	SymmetryCondition SymmetryCondition `json:"symmetry_condition" validate:"oneof=NoSymmetry X Y Z"`
	ViscousCoreLength ViscousCoreLength `json:"viscous_core_length"`
}

// NewQuasiSteadyWakeSettings returns the canonical quasi-steady wake.
func NewQuasiSteadyWakeSettings() QuasiSteadyWakeSettings {
	return QuasiSteadyWakeSettings{
		WakeLengthFactor:  100.0,
		SymmetryCondition: NoSymmetry,
		ViscousCoreLength: NewDefaultCoreLength(),
	}
}

// Validate implements document.Document.
func (w QuasiSteadyWakeSettings) Validate() error {
	if err := document.ValidateStruct(w); err != nil {
		return err
	}
	return w.ViscousCoreLength.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (w *QuasiSteadyWakeSettings) UnmarshalJSON(data []byte) error {
	type plain QuasiSteadyWakeSettings
	tmp := plain(NewQuasiSteadyWakeSettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*w = QuasiSteadyWakeSettings(tmp)
	return nil
}

// DynamicWakeSettings configures the free, time-resolved wake of a dynamic
// simulation.
type DynamicWakeSettings struct {
	NrPanelsPerLineElement   int               `json:"nr_panels_per_line_element" validate:"gte=1"`
	ViscousCoreLength        ViscousCoreLength `json:"viscous_core_length"`
	SymmetryCondition        SymmetryCondition `json:"symmetry_condition" validate:"oneof=NoSymmetry X Y Z"`
	FirstPanelRelativeLength float64           `json:"first_panel_relative_length" validate:"gt=0"`
	LastPanelRelativeLength  float64           `json:"last_panel_relative_length" validate:"gt=0"`
	UseChordDirection        bool              `json:"use_chord_direction"`
	WriteWakeDataToFile      bool              `json:"write_wake_data_to_file"`
	WakeFilesFolderPath      string            `json:"wake_files_folder_path"`
}

// NewDynamicWakeSettings returns the canonical dynamic wake.
func NewDynamicWakeSettings() DynamicWakeSettings {
	return DynamicWakeSettings{
		NrPanelsPerLineElement:   100,
		ViscousCoreLength:        NewDefaultCoreLength(),
		SymmetryCondition:        NoSymmetry,
		FirstPanelRelativeLength: 0.75,
		LastPanelRelativeLength:  25.0,
	}
}

// Validate implements document.Document.
func (w DynamicWakeSettings) Validate() error {
	if err := document.ValidateStruct(w); err != nil {
		return err
	}
	if w.WriteWakeDataToFile && w.WakeFilesFolderPath == "" {
		return document.NewSchemaViolation("wake file output requested without a folder path").
			WithField("wake_files_folder_path")
	}
	return w.ViscousCoreLength.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (w *DynamicWakeSettings) UnmarshalJSON(data []byte) error {
	type plain DynamicWakeSettings
	tmp := plain(NewDynamicWakeSettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*w = DynamicWakeSettings(tmp)
	return nil
}
