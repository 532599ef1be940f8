package lineforce

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// CoordinateSystem selects the frame the engine reports forces in.
type CoordinateSystem string

const (
	// CoordinateSystemGlobal reports forces in the global frame.
	CoordinateSystemGlobal CoordinateSystem = "Global"

	// CoordinateSystemBody reports forces in the body-fixed frame.
	CoordinateSystemBody CoordinateSystem = "Body"
)

// LineForceModelBuilder composes the wing elements of one simulated
// configuration, together with the global discretization and fluid
// properties.
//
// Wings are added through AddWingBuilder only, which keeps the per-wing
// angle offsets in lock-step with the wing list.
type LineForceModelBuilder struct {
	// WingBuilders are the wings, in order.
	WingBuilders []WingBuilder `json:"wing_builders"`

	// NrSections is the spanwise section count per wing, unless a wing
	// overrides it.
	NrSections int `json:"nr_sections" validate:"gte=1"`

	// Density is the fluid density in kg/m^3.
	Density float64 `json:"density" validate:"gt=0"`

	// LocalWingAngles are per-wing rotation offsets, parallel to
	// WingBuilders.
	LocalWingAngles []float64 `json:"local_wing_angles"`

	// Rotation and Translation place the whole model in the global frame.
	Rotation    spatial.Vector `json:"rotation"`
	Translation spatial.Vector `json:"translation"`

	// CirculationCorrection post-processes the raw circulation
	// distribution.
	CirculationCorrection Correction `json:"circulation_correction"`

	// OutputCoordinateSystem selects the frame for reported forces.
	OutputCoordinateSystem CoordinateSystem `json:"output_coordinate_system" validate:"oneof=Global Body"`
}

// NewLineForceModelBuilder creates an empty builder with the canonical
// defaults. Each call allocates fresh wing and angle lists; instances never
// share state.
func NewLineForceModelBuilder() *LineForceModelBuilder {
	return &LineForceModelBuilder{
		WingBuilders:           []WingBuilder{},
		NrSections:             20,
		Density:                1.225,
		LocalWingAngles:        []float64{},
		CirculationCorrection:  NewDisabledCorrection(),
		OutputCoordinateSystem: CoordinateSystemGlobal,
	}
}

// AddWingBuilder validates the wing and appends it together with a zero
// angle offset, so the wing list and the angle list stay in lock-step.
func (b *LineForceModelBuilder) AddWingBuilder(w *WingBuilder) error {
	if err := w.Validate(); err != nil {
		return err
	}
	b.WingBuilders = append(b.WingBuilders, *w)
	b.LocalWingAngles = append(b.LocalWingAngles, 0.0)
	return b.Validate()
}

// Validate checks the lock-step invariant, the global settings, and every
// nested wing.
func (b *LineForceModelBuilder) Validate() error {
	if err := document.ValidateStruct(b); err != nil {
		return err
	}
	if b.WingBuilders == nil {
		return document.NewSchemaViolation("wing builder list is missing").WithField("wing_builders")
	}
	if len(b.WingBuilders) != len(b.LocalWingAngles) {
		return document.NewSchemaViolation("wing builders and local wing angles differ in length").
			WithField("local_wing_angles")
	}
	for i := range b.WingBuilders {
		if err := b.WingBuilders[i].Validate(); err != nil {
			return err
		}
	}
	return b.CirculationCorrection.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding, so a
// sparse document round-trips to the same values the engine would use.
func (b *LineForceModelBuilder) UnmarshalJSON(data []byte) error {
	type plain LineForceModelBuilder
	tmp := plain(*NewLineForceModelBuilder())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*b = LineForceModelBuilder(tmp)
	return nil
}
