// Package controller models the sail controller layer of a setup document.
// The controller maps measured apparent wind conditions to wing angles and
// internal section states through interpolation tables.
package controller

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// InternalStateVariant is one alternative of the internal state type union.
type InternalStateVariant interface {
	document.Variant
	Validate() error
	internalStateVariant()
}

var internalStateUnion = document.NewUnion("internal state type").
	Unit("Generic", func() document.Variant { return GenericInternalState{} }).
	Payload("SpinRatio", func() document.Variant { return &SpinRatioConversion{} })

// InternalStateType declares how the controller interprets the internal
// state set points. Generic passes the values through unchanged, while
// SpinRatio converts spin ratios to revolutions per second for a rotor of
// a given diameter.
type InternalStateType struct {
	Variant InternalStateVariant
}

// NewGenericInternalState returns the pass-through interpretation.
func NewGenericInternalState() InternalStateType {
	return InternalStateType{Variant: GenericInternalState{}}
}

// NewSpinRatioInternalState returns the spin ratio interpretation for a
// rotor with the given diameter and rotational speed limit.
func NewSpinRatioInternalState(diameter, maxRevolutionsPerSecond float64) InternalStateType {
	return InternalStateType{Variant: &SpinRatioConversion{
		Diameter: diameter,
		MaxRPS:   maxRevolutionsPerSecond,
	}}
}

// Validate checks that a variant is active and valid.
func (t InternalStateType) Validate() error {
	if t.Variant == nil {
		return document.NewSchemaViolation("internal state type has no active variant")
	}
	return t.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (t InternalStateType) MarshalJSON() ([]byte, error) {
	return internalStateUnion.Encode(t.Variant)
}

// UnmarshalJSON decodes a bare variant string or a single-key variant object.
func (t *InternalStateType) UnmarshalJSON(data []byte) error {
	v, err := internalStateUnion.Decode(data)
	if err != nil {
		return err
	}
	t.Variant = v.(InternalStateVariant)
	return nil
}

// GenericInternalState passes internal state set points through unchanged.
type GenericInternalState struct{}

// VariantTag implements document.Variant.
func (GenericInternalState) VariantTag() string { return "Generic" }

// Validate implements document.Document.
func (GenericInternalState) Validate() error { return nil }

func (GenericInternalState) internalStateVariant() {}

// SpinRatioConversion converts spin ratio set points to revolutions per
// second. A spin ratio interpretation without a usable conversion cannot be
// serialized, so both fields must be positive.
type SpinRatioConversion struct {
	Diameter float64 `json:"diameter" validate:"gt=0"`
	MaxRPS   float64 `json:"max_rps" validate:"gt=0"`
}

// VariantTag implements document.Variant.
func (*SpinRatioConversion) VariantTag() string { return "SpinRatio" }

// Validate implements document.Document.
func (s *SpinRatioConversion) Validate() error {
	return document.ValidateStruct(s)
}

func (*SpinRatioConversion) internalStateVariant() {}

// ControllerLogic is the interpolation table layer of the controller.
//
// The apparent wind direction column is the common abscissa. The two set
// point columns are optional, but any present column must match it in
// length.
type ControllerLogic struct {
	ApparentWindDirectionsData             []float64         `json:"apparent_wind_directions_data" validate:"min=2"`
	AngleOfAttackSetPointsData             []float64         `json:"angle_of_attack_set_points_data,omitempty"`
	SectionModelInternalStateSetPointsData []float64         `json:"section_model_internal_state_set_points_data,omitempty"`
	InternalStateType                      InternalStateType `json:"internal_state_type"`
	UseEffectiveAngleOfAttack              bool              `json:"use_effective_angle_of_attack"`
}

// NewControllerLogic returns a logic block with the given apparent wind
// direction abscissa and a generic internal state interpretation.
func NewControllerLogic(apparentWindDirections []float64) *ControllerLogic {
	return &ControllerLogic{
		ApparentWindDirectionsData: apparentWindDirections,
		InternalStateType:          NewGenericInternalState(),
	}
}

// Validate implements document.Document.
func (l *ControllerLogic) Validate() error {
	if err := document.ValidateStruct(l); err != nil {
		return err
	}
	n := len(l.ApparentWindDirectionsData)
	if l.AngleOfAttackSetPointsData != nil && len(l.AngleOfAttackSetPointsData) != n {
		return document.NewSchemaViolation("angle of attack set points and apparent wind directions differ in length").
			WithField("angle_of_attack_set_points_data")
	}
	if l.SectionModelInternalStateSetPointsData != nil && len(l.SectionModelInternalStateSetPointsData) != n {
		return document.NewSchemaViolation("internal state set points and apparent wind directions differ in length").
			WithField("section_model_internal_state_set_points_data")
	}
	return l.InternalStateType.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (l *ControllerLogic) UnmarshalJSON(data []byte) error {
	type plain ControllerLogic
	tmp := plain(*NewControllerLogic(nil))
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*l = ControllerLogic(tmp)
	return nil
}

// MeasurementType reduces a sampled signal window to a single value.
type MeasurementType string

const (
	// MeasurementMean averages over the window.
	MeasurementMean MeasurementType = "Mean"

	// MeasurementMax takes the window maximum.
	MeasurementMax MeasurementType = "Max"

	// MeasurementMin takes the window minimum.
	MeasurementMin MeasurementType = "Min"
)

// MeasurementSettings selects which span stations contribute to a measured
// signal and how the window is reduced. StartIndex and EndOffset trim the
// stations at the wing root and tip.
type MeasurementSettings struct {
	MeasurementType MeasurementType `json:"measurement_type" validate:"oneof=Mean Max Min"`
	StartIndex      int             `json:"start_index" validate:"gte=0"`
	EndOffset       int             `json:"end_offset" validate:"gte=0"`
}

// NewMeasurementSettings returns the canonical measurement settings: the
// window mean, skipping one station at each end.
func NewMeasurementSettings() MeasurementSettings {
	return MeasurementSettings{
		MeasurementType: MeasurementMean,
		StartIndex:      1,
		EndOffset:       1,
	}
}

// Validate implements document.Document.
func (m MeasurementSettings) Validate() error {
	return document.ValidateStruct(m)
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (m *MeasurementSettings) UnmarshalJSON(data []byte) error {
	type plain MeasurementSettings
	tmp := plain(NewMeasurementSettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*m = MeasurementSettings(tmp)
	return nil
}

// FlowMeasurementSettings bundles the measurement settings for the three
// signals the controller reacts to.
type FlowMeasurementSettings struct {
	AngleOfAttack MeasurementSettings `json:"angle_of_attack"`
	WindDirection MeasurementSettings `json:"wind_direction"`
	WindVelocity  MeasurementSettings `json:"wind_velocity"`
}

// NewFlowMeasurementSettings returns canonical settings for all three
// signals.
func NewFlowMeasurementSettings() FlowMeasurementSettings {
	return FlowMeasurementSettings{
		AngleOfAttack: NewMeasurementSettings(),
		WindDirection: NewMeasurementSettings(),
		WindVelocity:  NewMeasurementSettings(),
	}
}

// Validate implements document.Document.
func (f FlowMeasurementSettings) Validate() error {
	if err := f.AngleOfAttack.Validate(); err != nil {
		return err
	}
	if err := f.WindDirection.Validate(); err != nil {
		return err
	}
	return f.WindVelocity.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (f *FlowMeasurementSettings) UnmarshalJSON(data []byte) error {
	type plain FlowMeasurementSettings
	tmp := plain(NewFlowMeasurementSettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*f = FlowMeasurementSettings(tmp)
	return nil
}

// Builder is the controller document: the interpolation logic plus timing
// and rate limits.
type Builder struct {
	Logic                   ControllerLogic         `json:"logic"`
	FlowMeasurementSettings FlowMeasurementSettings `json:"flow_measurement_settings"`
	TimeStepsBetweenUpdates int                     `json:"time_steps_between_updates" validate:"gte=1"`
	StartTime               float64                 `json:"start_time" validate:"gte=0"`

	// Rate limits are per second of simulated time. Omitted means
	// unlimited.
	MaxLocalWingAngleChangeRate        *float64 `json:"max_local_wing_angle_change_rate,omitempty"`
	MaxInternalSectionStateChangeRate  *float64 `json:"max_internal_section_state_change_rate,omitempty"`
	MovingAverageWindowSize            *int     `json:"moving_average_window_size,omitempty"`
	UseInputVelocityForApparentWindDir bool     `json:"use_input_velocity_for_apparent_wind_direction"`
}

// NewBuilder returns a controller around the given logic, updating every
// time step from the simulation start.
func NewBuilder(logic ControllerLogic) *Builder {
	return &Builder{
		Logic:                   logic,
		FlowMeasurementSettings: NewFlowMeasurementSettings(),
		TimeStepsBetweenUpdates: 1,
	}
}

// Validate implements document.Document.
func (b *Builder) Validate() error {
	if err := document.ValidateStruct(b); err != nil {
		return err
	}
	if b.MovingAverageWindowSize != nil && *b.MovingAverageWindowSize < 1 {
		return document.NewSchemaViolation("moving average window must hold at least one sample").
			WithField("moving_average_window_size")
	}
	if err := b.Logic.Validate(); err != nil {
		return err
	}
	return b.FlowMeasurementSettings.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (b *Builder) UnmarshalJSON(data []byte) error {
	type plain Builder
	tmp := plain(*NewBuilder(ControllerLogic{InternalStateType: NewGenericInternalState()}))
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*b = Builder(tmp)
	return nil
}
