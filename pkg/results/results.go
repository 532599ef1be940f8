// Package results reads the result histories the engine writes back after a
// simulation. Result files are produced by the engine, not by this module,
// so decoding is deliberately lenient: unknown fields from newer engine
// versions are ignored instead of rejected.
package results

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// Motion is a linear and angular component pair.
type Motion struct {
	Linear  spatial.Vector `json:"linear"`
	Angular spatial.Vector `json:"angular"`
}

// RigidBodyMotion is the motion state of the whole line force model at a
// result sample.
type RigidBodyMotion struct {
	Transformation Motion `json:"transformation"`
	Velocity       Motion `json:"velocity"`
	Acceleration   Motion `json:"acceleration"`
}

// WingIndexRange is a half-open range of span line indices belonging to one
// wing.
type WingIndexRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SectionalForcesInput is the flow state the sectional forces were computed
// from. Velocities and accelerations are the felt fluid quantities at each
// control point, not the motion of the wings themselves.
type SectionalForcesInput struct {
	CirculationStrength []float64        `json:"circulation_strength"`
	Velocity            []spatial.Vector `json:"velocity"`
	AnglesOfAttack      []float64        `json:"angles_of_attack"`
	Acceleration        []spatial.Vector `json:"acceleration"`
	RotationVelocity    spatial.Vector   `json:"rotation_velocity"`
	CoordinateSystem    string           `json:"coordinate_system"`
}

// SectionalForces holds the per-element force contributions.
type SectionalForces struct {
	Circulatory   []spatial.Vector `json:"circulatory"`
	SectionalDrag []spatial.Vector `json:"sectional_drag"`
	AddedMass     []spatial.Vector `json:"added_mass"`
	Gyroscopic    []spatial.Vector `json:"gyroscopic"`
	Total         []spatial.Vector `json:"total"`
}

// IntegratedValues holds the same contributions integrated over one wing,
// for either forces or moments.
type IntegratedValues struct {
	Circulatory   spatial.Vector `json:"circulatory"`
	SectionalDrag spatial.Vector `json:"sectional_drag"`
	AddedMass     spatial.Vector `json:"added_mass"`
	Gyroscopic    spatial.Vector `json:"gyroscopic"`
	Total         spatial.Vector `json:"total"`
}

// SimulationResult is one time sample of a simulation.
type SimulationResult struct {
	Time                          float64              `json:"time"`
	CtrlPoints                    []spatial.Vector     `json:"ctrl_points"`
	SolverInputCtrlPointsVelocity []spatial.Vector     `json:"solver_input_ctrl_points_velocity"`
	ForceInput                    SectionalForcesInput `json:"force_input"`
	SectionalForces               SectionalForces      `json:"sectional_forces"`
	IntegratedForces              []IntegratedValues   `json:"integrated_forces"`
	IntegratedMoments             []IntegratedValues   `json:"integrated_moments"`
	InputPower                    []float64            `json:"input_power"`
	Iterations                    int                  `json:"iterations"`
	Residual                      float64              `json:"residual"`
	WingIndices                   []WingIndexRange     `json:"wing_indices"`
	RigidBodyMotion               RigidBodyMotion      `json:"rigid_body_motion"`
}

// IntegratedForcesSum sums the total integrated force over all wings.
func (r *SimulationResult) IntegratedForcesSum() spatial.Vector {
	var sum spatial.Vector
	for i := range r.IntegratedForces {
		sum = sum.Add(r.IntegratedForces[i].Total)
	}
	return sum
}

// IntegratedMomentsSum sums the total integrated moment over all wings.
func (r *SimulationResult) IntegratedMomentsSum() spatial.Vector {
	var sum spatial.Vector
	for i := range r.IntegratedMoments {
		sum = sum.Add(r.IntegratedMoments[i].Total)
	}
	return sum
}

// InputPowerSum sums the input power over all wings.
func (r *SimulationResult) InputPowerSum() float64 {
	var sum float64
	for _, p := range r.InputPower {
		sum += p
	}
	return sum
}

// NrSpanLines reports the number of span lines in the sample.
func (r *SimulationResult) NrSpanLines() int {
	return len(r.CtrlPoints)
}

// NrOfWings reports the number of wings in the sample.
func (r *SimulationResult) NrOfWings() int {
	return len(r.WingIndices)
}

// AnglesOfAttackForWing returns the angle of attack slice for one wing.
func (r *SimulationResult) AnglesOfAttackForWing(wingIndex int) ([]float64, error) {
	if wingIndex < 0 || wingIndex >= len(r.WingIndices) {
		return nil, document.NewSchemaViolation("wing index out of range").
			WithField("wing_indices")
	}
	rng := r.WingIndices[wingIndex]
	if rng.Start < 0 || rng.End > len(r.ForceInput.AnglesOfAttack) || rng.Start > rng.End {
		return nil, document.NewSchemaViolation("wing index range does not fit the angle of attack data").
			WithField("wing_indices")
	}
	return r.ForceInput.AnglesOfAttack[rng.Start:rng.End], nil
}

// ReadHistory decodes a result history, a JSON array of samples, from r.
func ReadHistory(r io.Reader) ([]SimulationResult, error) {
	var history []SimulationResult
	if err := json.NewDecoder(r).Decode(&history); err != nil {
		return nil, document.NewSchemaViolation("result history is not valid JSON: " + err.Error())
	}
	return history, nil
}

// HistoryFromFile loads a result history file written by the engine.
func HistoryFromFile(path string) ([]SimulationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, document.NewIOFailure("open result history", err)
	}
	defer f.Close()
	return ReadHistory(bufio.NewReader(f))
}
