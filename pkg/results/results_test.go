package results

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

const sampleHistory = `[
  {
    "time": 0.5,
    "ctrl_points": [{"x":0,"y":0,"z":1},{"x":0,"y":0,"z":2},{"x":0,"y":0,"z":3},{"x":0,"y":0,"z":4}],
    "solver_input_ctrl_points_velocity": [],
    "force_input": {
      "circulation_strength": [1.0, 2.0, 3.0, 4.0],
      "velocity": [],
      "angles_of_attack": [0.1, 0.2, 0.3, 0.4],
      "acceleration": [],
      "rotation_velocity": {"x":0,"y":0,"z":0},
      "coordinate_system": "Global"
    },
    "sectional_forces": {
      "circulatory": [],
      "sectional_drag": [],
      "added_mass": [],
      "gyroscopic": [],
      "total": []
    },
    "integrated_forces": [
      {"circulatory":{"x":10,"y":0,"z":0},"sectional_drag":{"x":0,"y":0,"z":0},"added_mass":{"x":0,"y":0,"z":0},"gyroscopic":{"x":0,"y":0,"z":0},"total":{"x":10,"y":1,"z":0}},
      {"circulatory":{"x":20,"y":0,"z":0},"sectional_drag":{"x":0,"y":0,"z":0},"added_mass":{"x":0,"y":0,"z":0},"gyroscopic":{"x":0,"y":0,"z":0},"total":{"x":20,"y":-1,"z":0}}
    ],
    "integrated_moments": [
      {"circulatory":{"x":0,"y":0,"z":0},"sectional_drag":{"x":0,"y":0,"z":0},"added_mass":{"x":0,"y":0,"z":0},"gyroscopic":{"x":0,"y":0,"z":0},"total":{"x":0,"y":0,"z":5}},
      {"circulatory":{"x":0,"y":0,"z":0},"sectional_drag":{"x":0,"y":0,"z":0},"added_mass":{"x":0,"y":0,"z":0},"gyroscopic":{"x":0,"y":0,"z":0},"total":{"x":0,"y":0,"z":-2}}
    ],
    "input_power": [100.0, 250.0],
    "iterations": 12,
    "residual": 1.5e-5,
    "wing_indices": [{"start":0,"end":2},{"start":2,"end":4}],
    "rigid_body_motion": {
      "transformation": {"linear":{"x":0,"y":0,"z":0},"angular":{"x":0,"y":0,"z":0}},
      "velocity": {"linear":{"x":5,"y":0,"z":0},"angular":{"x":0,"y":0,"z":0}},
      "acceleration": {"linear":{"x":0,"y":0,"z":0},"angular":{"x":0,"y":0,"z":0}}
    }
  }
]`

func TestReadHistory(t *testing.T) {
	history, err := ReadHistory(strings.NewReader(sampleHistory))
	if err != nil {
		t.Fatalf("ReadHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d samples, want 1", len(history))
	}

	s := &history[0]
	if s.Time != 0.5 || s.Iterations != 12 {
		t.Errorf("sample header = time %v iterations %d", s.Time, s.Iterations)
	}
	if s.NrSpanLines() != 4 || s.NrOfWings() != 2 {
		t.Errorf("sample has %d span lines and %d wings, want 4 and 2",
			s.NrSpanLines(), s.NrOfWings())
	}
	if s.RigidBodyMotion.Velocity.Linear != spatial.New(5, 0, 0) {
		t.Errorf("rigid body velocity = %+v", s.RigidBodyMotion.Velocity.Linear)
	}
}

func TestHistorySums(t *testing.T) {
	history, err := ReadHistory(strings.NewReader(sampleHistory))
	if err != nil {
		t.Fatalf("ReadHistory failed: %v", err)
	}
	s := &history[0]

	if got := s.IntegratedForcesSum(); got != spatial.New(30, 0, 0) {
		t.Errorf("IntegratedForcesSum = %+v, want (30,0,0)", got)
	}
	if got := s.IntegratedMomentsSum(); got != spatial.New(0, 0, 3) {
		t.Errorf("IntegratedMomentsSum = %+v, want (0,0,3)", got)
	}
	if got := s.InputPowerSum(); got != 350.0 {
		t.Errorf("InputPowerSum = %v, want 350", got)
	}
}

func TestAnglesOfAttackForWing(t *testing.T) {
	history, err := ReadHistory(strings.NewReader(sampleHistory))
	if err != nil {
		t.Fatalf("ReadHistory failed: %v", err)
	}
	s := &history[0]

	angles, err := s.AnglesOfAttackForWing(1)
	if err != nil {
		t.Fatalf("AnglesOfAttackForWing failed: %v", err)
	}
	if diff := cmp.Diff([]float64{0.3, 0.4}, angles); diff != "" {
		t.Errorf("second wing angles mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.AnglesOfAttackForWing(2); !document.IsSchemaViolation(err) {
		t.Errorf("out-of-range wing: got %v, want schema violation", err)
	}
	if _, err := s.AnglesOfAttackForWing(-1); !document.IsSchemaViolation(err) {
		t.Errorf("negative wing index: got %v, want schema violation", err)
	}
}

func TestReadHistoryToleratesUnknownFields(t *testing.T) {
	// Newer engine versions may add fields; the reader must not reject them.
	input := `[{"time": 1.0, "iterations": 3, "experimental_field": {"a": 1}}]`

	history, err := ReadHistory(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHistory failed on unknown field: %v", err)
	}
	if history[0].Time != 1.0 || history[0].Iterations != 3 {
		t.Errorf("sample decoded as %+v", history[0])
	}
}

func TestReadHistoryRejectsMalformedInput(t *testing.T) {
	_, err := ReadHistory(strings.NewReader(`{"not":"an array"`))
	if !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestHistoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(sampleHistory), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	history, err := HistoryFromFile(path)
	if err != nil {
		t.Fatalf("HistoryFromFile failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history has %d samples, want 1", len(history))
	}

	if math.Abs(history[0].Residual-1.5e-5) > 1e-20 {
		t.Errorf("residual = %v, want 1.5e-5", history[0].Residual)
	}
}

func TestHistoryFromMissingFile(t *testing.T) {
	_, err := HistoryFromFile(filepath.Join(t.TempDir(), "missing.json"))
	if !document.IsIOFailure(err) {
		t.Errorf("got %v, want io failure", err)
	}
}
