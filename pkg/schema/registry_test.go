package schema

import (
	"context"
	"testing"

	"github.com/stormbird-sim/stormbird-setup/pkg/controller"
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
	"github.com/stormbird-sim/stormbird-setup/pkg/section"
	"github.com/stormbird-sim/stormbird-setup/pkg/simulation"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

func testSimulation(t *testing.T) *simulation.Builder {
	t.Helper()

	model := lineforce.NewLineForceModelBuilder()
	wing := lineforce.NewWingBuilder(
		[]spatial.Vector{spatial.New(0, 0, 0), spatial.New(0, 0, 30)},
		[]spatial.Vector{spatial.New(5, 0, 0), spatial.New(5, 0, 0)},
		section.NewSingleElementWing(),
	)
	if err := model.AddWingBuilder(wing); err != nil {
		t.Fatalf("AddWingBuilder failed: %v", err)
	}

	b := simulation.NewBuilder()
	b.LineForceModel = model
	return b
}

func TestRegistryHasBuiltInSchemas(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"simulation", "sail_model", "controller", "wind_environment"} {
		if _, ok := r.GetSchema(name); !ok {
			t.Errorf("built-in schema %q missing", name)
		}
	}
	if names := r.ListSchemas(); len(names) != 4 {
		t.Errorf("ListSchemas returned %d names, want 4", len(names))
	}
}

func TestValidateSimulationDocument(t *testing.T) {
	r := NewRegistry()

	if err := r.ValidateDocument(context.Background(), "simulation", testSimulation(t)); err != nil {
		t.Errorf("valid simulation document rejected: %v", err)
	}
}

func TestValidateSailModelDocument(t *testing.T) {
	r := NewRegistry()

	logic := controller.NewControllerLogic([]float64{-3.0, 0.0, 3.0})
	doc := simulation.NewCompleteSailModelBuilder(testSimulation(t), controller.NewBuilder(*logic))

	if err := r.ValidateDocument(context.Background(), "sail_model", doc); err != nil {
		t.Errorf("valid sail model document rejected: %v", err)
	}
}

func TestValidateControllerDocument(t *testing.T) {
	r := NewRegistry()

	logic := controller.NewControllerLogic([]float64{-3.0, 0.0, 3.0})
	if err := r.ValidateDocument(context.Background(), "controller", controller.NewBuilder(*logic)); err != nil {
		t.Errorf("valid controller document rejected: %v", err)
	}
}

func TestValidateJSONRejectsWrongShape(t *testing.T) {
	r := NewRegistry()

	// A controller document does not have the simulation layout.
	err := r.ValidateJSON(context.Background(), "simulation", []byte(`{"logic":{}}`))
	if !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestValidateJSONRejectsMalformedInput(t *testing.T) {
	r := NewRegistry()

	err := r.ValidateJSON(context.Background(), "simulation", []byte(`{"line_force_model":`))
	if !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	r := NewRegistry()

	if err := r.ValidateJSON(context.Background(), "bogus", []byte(`{}`)); err == nil {
		t.Error("unknown schema accepted")
	}
}

func TestRegisterSchemaRejectsInvalidSource(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterSchema("broken", `sails: [...{chord_length: number &`); err == nil {
		t.Error("invalid schema source accepted")
	}
	if _, ok := r.GetSchema("broken"); ok {
		t.Error("broken schema was registered anyway")
	}
}

func TestRegisterCustomSchema(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterSchema("study", `sails: [...{chord_length: number & >0}]`); err != nil {
		t.Fatalf("RegisterSchema failed: %v", err)
	}
	if err := r.ValidateJSON(context.Background(), "study", []byte(`{"sails":[{"chord_length":4}]}`)); err != nil {
		t.Errorf("valid study rejected: %v", err)
	}
	if err := r.ValidateJSON(context.Background(), "study", []byte(`{"sails":[{"chord_length":-1}]}`)); err == nil {
		t.Error("invalid study accepted")
	}
}
