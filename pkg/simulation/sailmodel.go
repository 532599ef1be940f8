package simulation

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/controller"
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/power"
	"github.com/stormbird-sim/stormbird-setup/pkg/wind"
)

// CompleteSailModelBuilder is the top-level document for a controlled sail
// model: the lifting line simulation, its controller, and the wind
// environment the pair operates in.
type CompleteSailModelBuilder struct {
	LiftingLineSimulation *Builder            `json:"lifting_line_simulation"`
	Controller            *controller.Builder `json:"controller"`
	WindEnvironment       *wind.Environment   `json:"wind_environment"`
	InputPower            *power.Model        `json:"input_power,omitempty"`
}

// NewCompleteSailModelBuilder wraps a simulation and a controller with the
// canonical wind environment.
func NewCompleteSailModelBuilder(sim *Builder, ctrl *controller.Builder) *CompleteSailModelBuilder {
	return &CompleteSailModelBuilder{
		LiftingLineSimulation: sim,
		Controller:            ctrl,
		WindEnvironment:       wind.NewEnvironment(),
	}
}

// Validate implements document.Document.
func (c *CompleteSailModelBuilder) Validate() error {
	if c.LiftingLineSimulation == nil {
		return document.NewSchemaViolation("lifting line simulation is missing").
			WithField("lifting_line_simulation")
	}
	if err := c.LiftingLineSimulation.Validate(); err != nil {
		return err
	}
	if c.Controller == nil {
		return document.NewSchemaViolation("controller is missing").
			WithField("controller")
	}
	if err := c.Controller.Validate(); err != nil {
		return err
	}
	if c.WindEnvironment == nil {
		return document.NewSchemaViolation("wind environment is missing").
			WithField("wind_environment")
	}
	if err := c.WindEnvironment.Validate(); err != nil {
		return err
	}
	if c.InputPower != nil {
		return c.InputPower.Validate()
	}
	return nil
}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (c *CompleteSailModelBuilder) UnmarshalJSON(data []byte) error {
	type plain CompleteSailModelBuilder
	tmp := plain{WindEnvironment: wind.NewEnvironment()}
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*c = CompleteSailModelBuilder(tmp)
	return nil
}
