package sailsetup

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
	"github.com/stormbird-sim/stormbird-setup/pkg/section"
	"github.com/stormbird-sim/stormbird-setup/pkg/simulation"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// SolverType selects the circulation solver for a single wing study.
type SolverType string

const (
	// SolverLinearized uses the single-step linearized solver.
	SolverLinearized SolverType = "Linearized"

	// SolverSimpleIterative uses the damped fixed-point solver.
	SolverSimpleIterative SolverType = "SimpleIterative"
)

// SingleWingSimulation is a shortcut setup for studying a single wing in
// isolation, typically to compare solution strategies or tune section
// models against higher-fidelity data.
//
// With ZSymmetry the wing root is mirrored across the z-plane, modeling a
// wall boundary, and the root end keeps a non-zero circulation.
type SingleWingSimulation struct {
	ChordLength     float64       `json:"chord_length" validate:"gt=0"`
	Height          float64       `json:"height" validate:"gt=0"`
	SectionModel    section.Model `json:"section_model"`
	NrSections      int           `json:"nr_sections" validate:"gte=1"`
	Density         float64       `json:"density" validate:"gt=0"`
	ZSymmetry       bool          `json:"z_symmetry"`
	Dynamic         bool          `json:"dynamic"`
	SolverType      SolverType    `json:"solver_type" validate:"oneof=Linearized SimpleIterative"`
	SmoothingLength float64       `json:"smoothing_length" validate:"gte=0"`
}

// NewSingleWingSimulation returns a study of the given wing with the
// canonical resolution, air density, and linearized solver.
func NewSingleWingSimulation(chordLength, height float64, model section.Model) *SingleWingSimulation {
	return &SingleWingSimulation{
		ChordLength:  chordLength,
		Height:       height,
		SectionModel: model,
		NrSections:   32,
		Density:      1.225,
		SolverType:   SolverLinearized,
	}
}

// Validate implements document.Document.
func (s *SingleWingSimulation) Validate() error {
	if err := document.ValidateStruct(s); err != nil {
		return err
	}
	return s.SectionModel.Validate()
}

// LineForceModel expands the study into a one-wing line force model.
func (s *SingleWingSimulation) LineForceModel() (*lineforce.LineForceModelBuilder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	wing := lineforce.NewWingBuilder(
		[]spatial.Vector{
			spatial.New(0.0, 0.0, 0.0),
			spatial.New(0.0, 0.0, s.Height),
		},
		[]spatial.Vector{
			spatial.New(s.ChordLength, 0.0, 0.0),
			spatial.New(s.ChordLength, 0.0, 0.0),
		},
		s.SectionModel,
	)
	if s.ZSymmetry {
		wing.NonZeroCirculationAtEnds = [2]bool{true, false}
	}

	model := lineforce.NewLineForceModelBuilder()
	model.NrSections = s.NrSections
	model.Density = s.Density
	if s.SmoothingLength > 0.0 {
		model.CirculationCorrection = lineforce.NewGaussianSmoothingCorrection(s.SmoothingLength, 0)
	}
	if err := model.AddWingBuilder(wing); err != nil {
		return nil, err
	}
	return model, nil
}

// SimulationBuilder expands the study into a complete simulation document.
func (s *SingleWingSimulation) SimulationBuilder() (*simulation.Builder, error) {
	model, err := s.LineForceModel()
	if err != nil {
		return nil, err
	}

	symmetry := simulation.NoSymmetry
	if s.ZSymmetry {
		symmetry = simulation.SymmetryZ
	}

	builder := simulation.NewBuilder()
	builder.LineForceModel = model

	if s.Dynamic {
		settings := simulation.NewDynamicSettings()
		settings.Wake.SymmetryCondition = symmetry
		if s.SolverType == SolverSimpleIterative {
			settings.Solver = simulation.NewSolver(simulation.NewSimpleIterative(40, 0.05))
		} else {
			settings.Solver = simulation.NewDefaultSolver()
		}
		builder.SimulationSettings = simulation.NewDynamicMode()
		builder.SimulationSettings.Variant = settings
	} else {
		settings := simulation.NewQuasiSteadySettings()
		settings.Wake.SymmetryCondition = symmetry
		if s.SolverType == SolverSimpleIterative {
			solver := simulation.NewSimpleIterative(1000, 0.05)
			solver.StartWithLinearizedSolution = false
			settings.Solver = simulation.NewSolver(solver)
		}
		builder.SimulationSettings = simulation.NewQuasiSteadyMode()
		builder.SimulationSettings.Variant = settings
	}

	return builder, nil
}
