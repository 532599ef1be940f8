// Package wind describes the wind environment a sail model operates in:
// height variation of the mean wind, the frame conventions for wind
// directions, and optional inflow corrections between sails.
package wind

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// HeightVariant is one alternative of the height variation union.
type HeightVariant interface {
	document.Variant
	Validate() error
	heightVariant()
}

var heightUnion = document.NewUnion("height variation model").
	Payload("PowerModel", func() document.Variant { return NewPowerHeightVariation() }).
	Payload("LogarithmicModel", func() document.Variant { return NewLogarithmicHeightVariation() })

// HeightVariation scales the mean wind speed with height above the water
// plane.
type HeightVariation struct {
	Variant HeightVariant
}

// NewPowerHeightVariationModel returns the default power-law profile.
func NewPowerHeightVariationModel() HeightVariation {
	return HeightVariation{Variant: NewPowerHeightVariation()}
}

// NewLogarithmicHeightVariationModel returns a logarithmic profile.
func NewLogarithmicHeightVariationModel() HeightVariation {
	return HeightVariation{Variant: NewLogarithmicHeightVariation()}
}

// Validate checks that a variant is active and valid.
func (h HeightVariation) Validate() error {
	if h.Variant == nil {
		return document.NewSchemaViolation("height variation model has no active variant")
	}
	return h.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (h HeightVariation) MarshalJSON() ([]byte, error) {
	return heightUnion.Encode(h.Variant)
}

// UnmarshalJSON decodes a single-key variant object.
func (h *HeightVariation) UnmarshalJSON(data []byte) error {
	v, err := heightUnion.Decode(data)
	if err != nil {
		return err
	}
	h.Variant = v.(HeightVariant)
	return nil
}

// PowerHeightVariation is the power-law wind profile.
type PowerHeightVariation struct {
	ReferenceHeight float64 `json:"reference_height" validate:"gt=0"`
	PowerFactor     float64 `json:"power_factor" validate:"gt=0"`
}

// NewPowerHeightVariation returns the canonical power-law profile, with the
// 1/9 exponent typical for open sea.
func NewPowerHeightVariation() *PowerHeightVariation {
	return &PowerHeightVariation{ReferenceHeight: 10.0, PowerFactor: 1.0 / 9.0}
}

// VariantTag implements document.Variant.
func (*PowerHeightVariation) VariantTag() string { return "PowerModel" }

// Validate implements document.Document.
func (p *PowerHeightVariation) Validate() error {
	return document.ValidateStruct(p)
}

func (*PowerHeightVariation) heightVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (p *PowerHeightVariation) UnmarshalJSON(data []byte) error {
	type plain PowerHeightVariation
	tmp := plain(*NewPowerHeightVariation())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*p = PowerHeightVariation(tmp)
	return nil
}

// LogarithmicHeightVariation is the logarithmic wind profile.
type LogarithmicHeightVariation struct {
	ReferenceHeight  float64 `json:"reference_height" validate:"gt=0"`
	SurfaceRoughness float64 `json:"surface_roughness" validate:"gt=0"`
}

// NewLogarithmicHeightVariation returns the canonical logarithmic profile
// with an open-sea surface roughness.
func NewLogarithmicHeightVariation() *LogarithmicHeightVariation {
	return &LogarithmicHeightVariation{ReferenceHeight: 10.0, SurfaceRoughness: 0.0002}
}

// VariantTag implements document.Variant.
func (*LogarithmicHeightVariation) VariantTag() string { return "LogarithmicModel" }

// Validate implements document.Document.
func (l *LogarithmicHeightVariation) Validate() error {
	return document.ValidateStruct(l)
}

func (*LogarithmicHeightVariation) heightVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (l *LogarithmicHeightVariation) UnmarshalJSON(data []byte) error {
	type plain LogarithmicHeightVariation
	tmp := plain(*NewLogarithmicHeightVariation())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*l = LogarithmicHeightVariation(tmp)
	return nil
}

// InflowCorrectionSingleDirection tabulates the wake of an upstream sail
// along the span for one apparent wind direction.
type InflowCorrectionSingleDirection struct {
	NonDimensionalSpanDistances []float64 `json:"non_dimensional_span_distances"`
	WakeFactorsMagnitude        []float64 `json:"wake_factors_magnitude"`
	AngleCorrections            []float64 `json:"angle_corrections"`
}

// Validate checks the three table columns stay in lock-step.
func (c InflowCorrectionSingleDirection) Validate() error {
	if len(c.WakeFactorsMagnitude) != len(c.NonDimensionalSpanDistances) ||
		len(c.AngleCorrections) != len(c.NonDimensionalSpanDistances) {
		return document.NewSchemaViolation("inflow correction tables differ in length").
			WithField("wake_factors_magnitude")
	}
	return nil
}

// InflowCorrectionSingleSail tabulates the corrections for one sail over
// apparent wind directions.
type InflowCorrectionSingleSail struct {
	ApparentWindDirections []float64                         `json:"apparent_wind_directions"`
	Corrections            []InflowCorrectionSingleDirection `json:"corrections"`
}

// Validate checks directions and correction tables stay in lock-step.
func (c InflowCorrectionSingleSail) Validate() error {
	if len(c.ApparentWindDirections) != len(c.Corrections) {
		return document.NewSchemaViolation("apparent wind directions and corrections differ in length").
			WithField("corrections")
	}
	for i := range c.Corrections {
		if err := c.Corrections[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InflowCorrections holds the per-sail inflow corrections.
type InflowCorrections struct {
	IndividualCorrections []InflowCorrectionSingleSail `json:"individual_corrections"`
}

// Validate implements document.Document.
func (c InflowCorrections) Validate() error {
	for i := range c.IndividualCorrections {
		if err := c.IndividualCorrections[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Environment is the wind environment document.
type Environment struct {
	// HeightVariationModel is the wind profile; omitted means uniform
	// wind.
	HeightVariationModel *HeightVariation `json:"height_variation_model,omitempty"`

	// UpDirection, WindRotationAxis, and ZeroDirectionVector fix the
	// frame wind directions are measured in.
	UpDirection         spatial.Vector `json:"up_direction"`
	WindRotationAxis    spatial.Vector `json:"wind_rotation_axis"`
	ZeroDirectionVector spatial.Vector `json:"zero_direction_vector"`

	// WaterPlaneHeight is the height of the water plane in the global
	// frame.
	WaterPlaneHeight float64 `json:"water_plane_height"`

	// InflowCorrections models sail-on-sail inflow effects; omitted means
	// none.
	InflowCorrections *InflowCorrections `json:"inflow_corrections,omitempty"`
}

// NewEnvironment returns the canonical wind environment: power-law profile,
// z up, wind rotating around -z, and zero direction along x.
func NewEnvironment() *Environment {
	model := NewPowerHeightVariationModel()
	return &Environment{
		HeightVariationModel: &model,
		UpDirection:          spatial.New(0.0, 0.0, 1.0),
		WindRotationAxis:     spatial.New(0.0, 0.0, -1.0),
		ZeroDirectionVector:  spatial.New(1.0, 0.0, 0.0),
	}
}

// Validate implements document.Document.
func (e *Environment) Validate() error {
	if e.HeightVariationModel != nil {
		if err := e.HeightVariationModel.Validate(); err != nil {
			return err
		}
	}
	if e.InflowCorrections != nil {
		if err := e.InflowCorrections.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (e *Environment) UnmarshalJSON(data []byte) error {
	type plain Environment
	tmp := plain(*NewEnvironment())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*e = Environment(tmp)
	return nil
}
