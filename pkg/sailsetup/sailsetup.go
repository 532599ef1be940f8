// Package sailsetup provides shortcut setups for common sail types. Each
// setup stores typical settings for a sail type and expands them into the
// wing and controller builders a full document needs.
package sailsetup

import (
	"math"

	"github.com/stormbird-sim/stormbird-setup/pkg/controller"
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
	"github.com/stormbird-sim/stormbird-setup/pkg/lineforce"
	"github.com/stormbird-sim/stormbird-setup/pkg/section"
	"github.com/stormbird-sim/stormbird-setup/pkg/spatial"
)

// SailType names the supported sail archetypes.
type SailType string

const (
	// WingSailSingleElement is a rigid single-element wing sail.
	WingSailSingleElement SailType = "WingSailSingleElement"

	// WingSailFlapped is a two-element wing sail with a trailing flap.
	WingSailFlapped SailType = "WingSailFlapped"

	// RotorSail is a Flettner rotor.
	RotorSail SailType = "RotorSail"

	// SuctionSail is a boundary-layer suction sail. Not supported by the
	// engine contract yet.
	SuctionSail SailType = "SuctionSail"
)

// SimpleSailSetup expands a sail type and its main dimensions into the wing
// and controller builders of a setup document. The sail is a straight
// vertical wing rooted at Position with a constant chord along x.
type SimpleSailSetup struct {
	Position    spatial.Vector `json:"position"`
	ChordLength float64        `json:"chord_length" validate:"gt=0"`
	Height      float64        `json:"height" validate:"gt=0"`
	SailType    SailType       `json:"sail_type" validate:"oneof=WingSailSingleElement WingSailFlapped RotorSail SuctionSail"`
}

// Validate implements document.Document.
func (s *SimpleSailSetup) Validate() error {
	return document.ValidateStruct(s)
}

// WingBuilder returns the wing geometry and section model for the sail
// type.
func (s *SimpleSailSetup) WingBuilder() (*lineforce.WingBuilder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sectionPoints := []spatial.Vector{
		s.Position,
		spatial.New(s.Position.X, s.Position.Y, s.Position.Z+s.Height),
	}
	chordVector := spatial.New(s.ChordLength, 0.0, 0.0)
	chordVectors := []spatial.Vector{chordVector, chordVector}

	var model section.Model
	switch s.SailType {
	case WingSailSingleElement:
		model = section.NewSingleElementWing()
	case WingSailFlapped:
		model = section.NewFlappedWing()
	case RotorSail:
		model = section.NewRotorSail()
	case SuctionSail:
		var err error
		if model, err = section.NewSuctionSail(); err != nil {
			return nil, err
		}
	default:
		return nil, document.NewUnsupportedConfiguration("unsupported sail type: " + string(s.SailType))
	}

	return lineforce.NewWingBuilder(sectionPoints, chordVectors, model), nil
}

// ControllerBuilder returns the canonical controller for the sail type.
//
// Wing sails steer the angle of attack directly; the rotor sail steers a
// spin ratio set point, which the engine converts to revolutions per second
// using the rotor diameter.
func (s *SimpleSailSetup) ControllerBuilder() (*controller.Builder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.SailType {
	case WingSailSingleElement:
		logic := controller.NewControllerLogic(radians(-180, -30, -15, 15, 30, 180))
		logic.AngleOfAttackSetPointsData = radians(-12, -12, 0, 0, 12, 12)
		return controller.NewBuilder(*logic), nil
	case WingSailFlapped:
		logic := controller.NewControllerLogic(radians(-180, -30, -15, 15, 30, 180))
		logic.AngleOfAttackSetPointsData = radians(-12, -12, 0, 0, 12, 12)
		logic.SectionModelInternalStateSetPointsData = radians(-15, -15, 0, 0, 15, 15)
		return controller.NewBuilder(*logic), nil
	case RotorSail:
		logic := controller.NewControllerLogic(radians(-180, -40, -30, 30, 40, 180))
		logic.SectionModelInternalStateSetPointsData = []float64{4.0, 4.0, 0.0, 0.0, -4.0, -4.0}
		logic.InternalStateType = controller.NewSpinRatioInternalState(s.ChordLength, 180.0/60.0)
		return controller.NewBuilder(*logic), nil
	case SuctionSail:
		return nil, document.NewUnsupportedConfiguration("suction sail controllers are not implemented")
	default:
		return nil, document.NewUnsupportedConfiguration("unsupported sail type: " + string(s.SailType))
	}
}

func radians(degrees ...float64) []float64 {
	out := make([]float64, len(degrees))
	for i, d := range degrees {
		out[i] = d * math.Pi / 180.0
	}
	return out
}
