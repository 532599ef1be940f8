package simulation

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// ModeVariant is one alternative of the simulation mode union.
type ModeVariant interface {
	document.Variant
	Validate() error
	modeVariant()
}

var modeUnion = document.NewUnion("simulation mode").
	Payload("QuasiSteady", func() document.Variant { return NewQuasiSteadySettings() }).
	Payload("Dynamic", func() document.Variant { return NewDynamicSettings() })

// Mode selects between quasi-steady and time-resolved solution strategies.
// Each variant pairs a solver with the wake shape that strategy needs; the
// two wake shapes are not interchangeable.
type Mode struct {
	Variant ModeVariant
}

// NewQuasiSteadyMode returns a quasi-steady mode with default solver and
// wake.
func NewQuasiSteadyMode() Mode {
	return Mode{Variant: NewQuasiSteadySettings()}
}

// NewDynamicMode returns a dynamic mode with default solver and wake.
func NewDynamicMode() Mode {
	return Mode{Variant: NewDynamicSettings()}
}

// Validate checks that a variant is active and valid.
func (m Mode) Validate() error {
	if m.Variant == nil {
		return document.NewSchemaViolation("simulation mode has no active variant")
	}
	return m.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (m Mode) MarshalJSON() ([]byte, error) {
	return modeUnion.Encode(m.Variant)
}

// UnmarshalJSON decodes a single-key variant object.
func (m *Mode) UnmarshalJSON(data []byte) error {
	v, err := modeUnion.Decode(data)
	if err != nil {
		return err
	}
	m.Variant = v.(ModeVariant)
	return nil
}

// QuasiSteadySettings pairs a solver with a frozen wake.
type QuasiSteadySettings struct {
	Solver Solver                  `json:"solver"`
	Wake   QuasiSteadyWakeSettings `json:"wake"`
}

// NewQuasiSteadySettings returns the canonical quasi-steady settings.
func NewQuasiSteadySettings() *QuasiSteadySettings {
	return &QuasiSteadySettings{
		Solver: NewDefaultSolver(),
		Wake:   NewQuasiSteadyWakeSettings(),
	}
}

// VariantTag implements document.Variant.
func (*QuasiSteadySettings) VariantTag() string { return "QuasiSteady" }

// Validate implements document.Document.
func (s *QuasiSteadySettings) Validate() error {
	if err := s.Solver.Validate(); err != nil {
		return err
	}
	return s.Wake.Validate()
}

func (*QuasiSteadySettings) modeVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (s *QuasiSteadySettings) UnmarshalJSON(data []byte) error {
	type plain QuasiSteadySettings
	tmp := plain(*NewQuasiSteadySettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*s = QuasiSteadySettings(tmp)
	return nil
}

// DynamicSettings pairs a solver with a free, time-resolved wake.
type DynamicSettings struct {
	Solver Solver              `json:"solver"`
	Wake   DynamicWakeSettings `json:"wake"`
}

// NewDynamicSettings returns the canonical dynamic settings. Dynamic
// simulations default to the iterative solver.
func NewDynamicSettings() *DynamicSettings {
	return &DynamicSettings{
		Solver: NewSolver(newSimpleIterativeDefaults()),
		Wake:   NewDynamicWakeSettings(),
	}
}

// VariantTag implements document.Variant.
func (*DynamicSettings) VariantTag() string { return "Dynamic" }

// Validate implements document.Document.
func (s *DynamicSettings) Validate() error {
	if err := s.Solver.Validate(); err != nil {
		return err
	}
	return s.Wake.Validate()
}

func (*DynamicSettings) modeVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding.
func (s *DynamicSettings) UnmarshalJSON(data []byte) error {
	type plain DynamicSettings
	tmp := plain(*NewDynamicSettings())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*s = DynamicSettings(tmp)
	return nil
}
