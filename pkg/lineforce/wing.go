package lineforce

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/power"
	"github.com/stormbird-sim/stormbird-setup/pkg/section"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// WingBuilder describes one spanwise lifting element: its geometry, its
// section aerodynamic model, and its boundary conditions.
type WingBuilder struct {
	// SectionPoints are the spanwise points defining the lifting line.
	SectionPoints []spatial.Vector `json:"section_points" validate:"min=2"`

	// ChordVectors give the chord direction and length at each section
	// point. Must match SectionPoints in length.
	ChordVectors []spatial.Vector `json:"chord_vectors"`

	// SectionModel is the aerodynamic model applied along the span.
	SectionModel section.Model `json:"section_model"`

	// NonZeroCirculationAtEnds permits tip circulation to remain non-zero
	// at the first and last section point, for symmetry-plane or virtual
	// end-disk boundary conditions.
	NonZeroCirculationAtEnds [2]bool `json:"non_zero_circulation_at_ends"`

	// NrSections overrides the global section count for this wing.
	NrSections *int `json:"nr_sections,omitempty"`

	// InputPowerModel is the power consumed by this wing's actuation.
	// Omitted means the engine default, NoPower.
	InputPowerModel *power.Model `json:"input_power_model,omitempty"`
}

// NewWingBuilder creates a wing from its geometry and section model, with
// zero circulation enforced at both ends.
func NewWingBuilder(sectionPoints, chordVectors []spatial.Vector, model section.Model) *WingBuilder {
	return &WingBuilder{
		SectionPoints: sectionPoints,
		ChordVectors:  chordVectors,
		SectionModel:  model,
	}
}

// Validate checks the geometry arrays and the nested section model.
func (w *WingBuilder) Validate() error {
	if err := document.ValidateStruct(w); err != nil {
		return err
	}
	if len(w.SectionPoints) != len(w.ChordVectors) {
		return document.NewSchemaViolation("section points and chord vectors differ in length").
			WithField("chord_vectors")
	}
	if err := w.SectionModel.Validate(); err != nil {
		return err
	}
	if w.NrSections != nil && *w.NrSections < 1 {
		return document.NewSchemaViolation("nr_sections must be positive").WithField("nr_sections")
	}
	if w.InputPowerModel != nil {
		if err := w.InputPowerModel.Validate(); err != nil {
			return err
		}
	}
	return nil
}
