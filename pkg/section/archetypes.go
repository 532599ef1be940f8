package section

import (
	"math"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// NewSingleElementWing returns the section model for a rigid single-element
// wing sail: a plain foil left entirely to the engine's default curve.
func NewSingleElementWing() Model {
	return NewModel(&Foil{})
}

// NewFlappedWing returns the section model for a two-element wing sail with
// a trailing flap: a foil family interpolated by the flap angle, with the
// zero-angle lift shifted by the flap deflection.
func NewFlappedWing() Model {
	deg := math.Pi / 180.0

	return NewModel(&VaryingFoil{
		InternalStateData: []float64{-15.0 * deg, 0.0, 15.0 * deg},
		FoilsData: []Foil{
			{ClZeroAngle: document.Float64(-1.75)},
			{ClZeroAngle: document.Float64(0.0)},
			{ClZeroAngle: document.Float64(1.75)},
		},
	})
}

// NewRotorSail returns the section model for a Flettner rotor sail: a
// rotating cylinder using the engine's built-in lift and drag tables.
func NewRotorSail() Model {
	return NewModel(&RotatingCylinder{})
}

// NewSuctionSail reports that suction sails are not implemented in the
// engine contract yet.
func NewSuctionSail() (Model, error) {
	return Model{}, document.NewUnsupportedConfiguration("suction sail sections are not implemented")
}
