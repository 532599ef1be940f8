package simulation

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
)

// Builder is the root setup document handed to the engine: a line force
// model plus the simulation mode. Its serialization is the wire contract;
// the two top-level keys are assembled from the fully projected children
// with no additional tagging at the root.
type Builder struct {
	LineForceModel     *lineforce.LineForceModelBuilder `json:"line_force_model"`
	SimulationSettings Mode                             `json:"simulation_settings"`
}

// NewBuilder creates a root document with an empty line force model and
// quasi-steady defaults.
func NewBuilder() *Builder {
	return &Builder{
		LineForceModel:     lineforce.NewLineForceModelBuilder(),
		SimulationSettings: NewQuasiSteadyMode(),
	}
}

// Validate implements document.Document.
func (b *Builder) Validate() error {
	if b.LineForceModel == nil {
		return document.NewSchemaViolation("line force model is missing").
			WithField("line_force_model")
	}
	if err := b.LineForceModel.Validate(); err != nil {
		return err
	}
	return b.SimulationSettings.Validate()
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (b *Builder) UnmarshalJSON(data []byte) error {
	type plain Builder
	tmp := plain(*NewBuilder())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*b = Builder(tmp)
	return nil
}
