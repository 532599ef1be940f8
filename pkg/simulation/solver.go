package simulation

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// FinalCirculationCorrectionMethod selects how the linearized solver folds
// viscous effects back into the effective circulation.
type FinalCirculationCorrectionMethod string

const (
	// CorrectionMethodNone applies no correction.
	CorrectionMethodNone FinalCirculationCorrectionMethod = "NoCorrection"

	// CorrectionMethodViscousLift includes viscous lift in the effective
	// circulation.
	CorrectionMethodViscousLift FinalCirculationCorrectionMethod = "IncludeViscousLiftInEffectiveCirculation"

	// CorrectionMethodFull applies the full correction.
	CorrectionMethodFull FinalCirculationCorrectionMethod = "FullCorrection"
)

// SolverVariant is one alternative of the solver union.
type SolverVariant interface {
	document.Variant
	Validate() error
	solverVariant()
}

var solverUnion = document.NewUnion("solver").
	Payload("Linearized", func() document.Variant { return NewLinearized() }).
	Payload("SimpleIterative", func() document.Variant { return newSimpleIterativeDefaults() })

// Solver selects the circulation solution strategy. Each variant carries
// its own velocity correction.
type Solver struct {
	Variant SolverVariant
}

// NewSolver wraps a variant in a solver union value.
func NewSolver(v SolverVariant) Solver {
	return Solver{Variant: v}
}

// NewDefaultSolver returns the linearized solver with its defaults.
func NewDefaultSolver() Solver {
	return Solver{Variant: NewLinearized()}
}

// Validate checks that a variant is active and valid.
func (s Solver) Validate() error {
	if s.Variant == nil {
		return document.NewSchemaViolation("solver has no active variant")
	}
	return s.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (s Solver) MarshalJSON() ([]byte, error) {
	return solverUnion.Encode(s.Variant)
}

// UnmarshalJSON decodes a single-key variant object.
func (s *Solver) UnmarshalJSON(data []byte) error {
	v, err := solverUnion.Decode(data)
	if err != nil {
		return err
	}
	s.Variant = v.(SolverVariant)
	return nil
}

// Linearized solves the circulation system in a single linearized step.
type Linearized struct {
	DisableViscousCorrections        bool                             `json:"disable_viscous_corrections"`
	FinalCirculationCorrectionMethod FinalCirculationCorrectionMethod `json:"final_circulation_correction_method" validate:"oneof=NoCorrection IncludeViscousLiftInEffectiveCirculation FullCorrection"`
	VelocityCorrections              VelocityCorrections              `json:"velocity_corrections"`
}

// NewLinearized returns the linearized solver with its canonical defaults.
func NewLinearized() *Linearized {
	return &Linearized{
		FinalCirculationCorrectionMethod: CorrectionMethodFull,
		VelocityCorrections:              NewDisabledVelocityCorrections(),
	}
}

// VariantTag implements document.Variant.
func (*Linearized) VariantTag() string { return "Linearized" }

// Validate implements document.Document.
func (l *Linearized) Validate() error {
	if err := document.ValidateStruct(l); err != nil {
		return err
	}
	return l.VelocityCorrections.Validate()
}

func (*Linearized) solverVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (l *Linearized) UnmarshalJSON(data []byte) error {
	type plain Linearized
	tmp := plain(*NewLinearized())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*l = Linearized(tmp)
	return nil
}

// SimpleIterative solves the circulation system by damped fixed-point
// iteration.
type SimpleIterative struct {
	MaxIterationsPerTimeStep    int                 `json:"max_iterations_per_time_step" validate:"gte=1"`
	DampingFactor               float64             `json:"damping_factor" validate:"gt=0,lte=1"`
	ResidualToleranceAbsolute   float64             `json:"residual_tolerance_absolute" validate:"gt=0"`
	StrengthDifferenceTolerance float64             `json:"strength_difference_tolerance" validate:"gt=0"`
	VelocityCorrections         VelocityCorrections `json:"velocity_corrections"`
	StartWithLinearizedSolution bool                `json:"start_with_linearized_solution"`
}

// NewSimpleIterative returns an iterative solver with the given iteration
// budget and damping, and the canonical tolerances.
func NewSimpleIterative(maxIterationsPerTimeStep int, dampingFactor float64) *SimpleIterative {
	s := newSimpleIterativeDefaults()
	s.MaxIterationsPerTimeStep = maxIterationsPerTimeStep
	s.DampingFactor = dampingFactor
	return s
}

func newSimpleIterativeDefaults() *SimpleIterative {
	return &SimpleIterative{
		MaxIterationsPerTimeStep:    500,
		DampingFactor:               0.05,
		ResidualToleranceAbsolute:   1e-4,
		StrengthDifferenceTolerance: 1e-6,
		VelocityCorrections:         NewDisabledVelocityCorrections(),
	}
}

// VariantTag implements document.Variant.
func (*SimpleIterative) VariantTag() string { return "SimpleIterative" }

// Validate implements document.Document.
func (s *SimpleIterative) Validate() error {
	if err := document.ValidateStruct(s); err != nil {
		return err
	}
	return s.VelocityCorrections.Validate()
}

func (*SimpleIterative) solverVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (s *SimpleIterative) UnmarshalJSON(data []byte) error {
	type plain SimpleIterative
	tmp := plain(*newSimpleIterativeDefaults())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*s = SimpleIterative(tmp)
	return nil
}
