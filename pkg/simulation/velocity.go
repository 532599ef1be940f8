package simulation

import (
	"encoding/json"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// VelocityVariant is one alternative of the velocity correction union.
type VelocityVariant interface {
	document.Variant
	Validate() error
	velocityVariant()
}

var velocityUnion = document.NewUnion("velocity correction").
	Unit("None", func() document.Variant { return VelocityCorrectionDisabled{} }).
	Payload("MaxInducedVelocityMagnitudeRatio", func() document.Variant { return &MaxInducedVelocityMagnitudeRatio{} }).
	Unit("FixedMagnitudeEqualToFreestream", func() document.Variant { return FixedMagnitudeEqualToFreestream{} })

// VelocityCorrections limits the induced velocities a solver may produce,
// keeping the numerical solution inside known physical bounds. The disabled
// state serializes as the sentinel string "None".
type VelocityCorrections struct {
	Variant VelocityVariant
}

// NewDisabledVelocityCorrections returns the default: no correction.
func NewDisabledVelocityCorrections() VelocityCorrections {
	return VelocityCorrections{Variant: VelocityCorrectionDisabled{}}
}

// NewMaxInducedVelocityRatio caps induced velocity at the given fraction of
// the freestream magnitude.
func NewMaxInducedVelocityRatio(ratio float64) VelocityCorrections {
	return VelocityCorrections{Variant: &MaxInducedVelocityMagnitudeRatio{Value: ratio}}
}

// Validate checks that a variant is active and valid.
func (c VelocityCorrections) Validate() error {
	if c.Variant == nil {
		return document.NewSchemaViolation("velocity correction has no active variant")
	}
	return c.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (c VelocityCorrections) MarshalJSON() ([]byte, error) {
	return velocityUnion.Encode(c.Variant)
}

// UnmarshalJSON decodes a bare variant string or a single-key variant object.
func (c *VelocityCorrections) UnmarshalJSON(data []byte) error {
	v, err := velocityUnion.Decode(data)
	if err != nil {
		return err
	}
	c.Variant = v.(VelocityVariant)
	return nil
}

// VelocityCorrectionDisabled is the explicit no-correction state, encoded
// as "None".
type VelocityCorrectionDisabled struct{}

// VariantTag implements document.Variant.
func (VelocityCorrectionDisabled) VariantTag() string { return "None" }

// Validate implements document.Document.
func (VelocityCorrectionDisabled) Validate() error { return nil }

func (VelocityCorrectionDisabled) velocityVariant() {}

// MaxInducedVelocityMagnitudeRatio caps the induced velocity magnitude at a
// fraction of the freestream magnitude. Its payload is the bare ratio.
type MaxInducedVelocityMagnitudeRatio struct {
	Value float64
}

// VariantTag implements document.Variant.
func (*MaxInducedVelocityMagnitudeRatio) VariantTag() string {
	return "MaxInducedVelocityMagnitudeRatio"
}

// Validate implements document.Document.
func (m *MaxInducedVelocityMagnitudeRatio) Validate() error {
	if m.Value <= 0.0 {
		return document.NewSchemaViolation("induced velocity ratio must be positive").
			WithField("MaxInducedVelocityMagnitudeRatio")
	}
	return nil
}

func (*MaxInducedVelocityMagnitudeRatio) velocityVariant() {}

// MarshalJSON emits the bare ratio, matching the engine's scalar payload.
func (m *MaxInducedVelocityMagnitudeRatio) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Value)
}

// UnmarshalJSON reads the bare ratio.
func (m *MaxInducedVelocityMagnitudeRatio) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return document.NewSchemaViolation("induced velocity ratio must be a number")
	}
	return nil
}

// FixedMagnitudeEqualToFreestream clamps the corrected velocity magnitude
// to the freestream magnitude.
type FixedMagnitudeEqualToFreestream struct{}

// VariantTag implements document.Variant.
func (FixedMagnitudeEqualToFreestream) VariantTag() string {
	return "FixedMagnitudeEqualToFreestream"
}

// Validate implements document.Document.
func (FixedMagnitudeEqualToFreestream) Validate() error { return nil }

func (FixedMagnitudeEqualToFreestream) velocityVariant() {}
