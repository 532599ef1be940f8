package simulation

import (
	"encoding/json"
	"testing"

	"github.com/stormbird-sim/stormbird-setup/pkg/controller"
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
	"github.com/stormbird-sim/stormbird-setup/pkg/section"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

func oneWingModel(t *testing.T) *lineforce.LineForceModelBuilder {
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
	return model
}

func TestBuilderDocumentShape(t *testing.T) {
	b := NewBuilder()
	b.LineForceModel = oneWingModel(t)

	data, err := document.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not a JSON object: %v", err)
	}
	if len(raw) != 2 {
		t.Errorf("document has %d top-level keys, want 2", len(raw))
	}
	for _, key := range []string{"line_force_model", "simulation_settings"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("document is missing key %q", key)
		}
	}

	var settings map[string]json.RawMessage
	if err := json.Unmarshal(raw["simulation_settings"], &settings); err != nil {
		t.Fatalf("simulation_settings is not a JSON object: %v", err)
	}
	if _, ok := settings["QuasiSteady"]; !ok {
		t.Errorf("simulation_settings = %s, want a QuasiSteady variant", raw["simulation_settings"])
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.LineForceModel = oneWingModel(t)
	b.SimulationSettings = NewDynamicMode()

	data, err := document.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Builder
	if err := document.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := back.SimulationSettings.Variant.(*DynamicSettings); !ok {
		t.Errorf("round trip changed mode to %T", back.SimulationSettings.Variant)
	}
	if len(back.LineForceModel.WingBuilders) != 1 {
		t.Errorf("round trip changed wing count to %d", len(back.LineForceModel.WingBuilders))
	}
}

func TestBuilderRejectsMissingLineForceModel(t *testing.T) {
	b := NewBuilder()
	b.LineForceModel = nil
	if err := b.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestModeVariantsCarryMatchingWakes(t *testing.T) {
	qs := NewQuasiSteadyMode()
	if _, ok := qs.Variant.(*QuasiSteadySettings); !ok {
		t.Errorf("quasi-steady mode carries %T", qs.Variant)
	}

	dyn := NewDynamicMode()
	settings, ok := dyn.Variant.(*DynamicSettings)
	if !ok {
		t.Fatalf("dynamic mode carries %T", dyn.Variant)
	}
	if _, ok := settings.Solver.Variant.(*SimpleIterative); !ok {
		t.Errorf("dynamic default solver is %T, want *SimpleIterative", settings.Solver.Variant)
	}
}

func TestCompleteSailModelDocumentShape(t *testing.T) {
	sim := NewBuilder()
	sim.LineForceModel = oneWingModel(t)

	logic := controller.NewControllerLogic([]float64{-3.0, -0.5, 0.5, 3.0})
	logic.AngleOfAttackSetPointsData = []float64{-0.2, 0.0, 0.0, 0.2}

	doc := NewCompleteSailModelBuilder(sim, controller.NewBuilder(*logic))

	data, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not a JSON object: %v", err)
	}
	for _, key := range []string{"lifting_line_simulation", "controller", "wind_environment"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("document is missing key %q", key)
		}
	}
	if _, ok := raw["input_power"]; ok {
		t.Error("unset input_power appears on the wire")
	}
}

func TestCompleteSailModelRoundTrip(t *testing.T) {
	sim := NewBuilder()
	sim.LineForceModel = oneWingModel(t)

	logic := controller.NewControllerLogic([]float64{-3.0, 0.0, 3.0})
	doc := NewCompleteSailModelBuilder(sim, controller.NewBuilder(*logic))

	data, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back CompleteSailModelBuilder
	if err := document.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Controller == nil || len(back.Controller.Logic.ApparentWindDirectionsData) != 3 {
		t.Errorf("round trip lost controller logic: %+v", back.Controller)
	}
	if back.WindEnvironment == nil {
		t.Fatal("round trip lost wind environment")
	}
}

func TestCompleteSailModelRequiresController(t *testing.T) {
	sim := NewBuilder()
	sim.LineForceModel = oneWingModel(t)

	doc := NewCompleteSailModelBuilder(sim, nil)
	if err := doc.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}
