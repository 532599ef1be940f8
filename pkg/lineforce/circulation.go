package lineforce

import (
	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// CorrectionVariant is one alternative of the circulation correction union.
type CorrectionVariant interface {
	document.Variant
	Validate() error
	correctionVariant()
}

var correctionUnion = document.NewUnion("circulation correction").
	Unit("None", func() document.Variant { return Disabled{} }).
	Payload("Smoothing", func() document.Variant { return &Smoothing{} }).
	Payload("Prescribed", func() document.Variant { return &Prescribed{} })

// Correction selects the post-processing applied to the raw circulation
// distribution. The explicitly disabled state serializes as the sentinel
// string "None"; omitting the field instead means the engine default, and
// the two are not interchangeable.
type Correction struct {
	Variant CorrectionVariant
}

// NewDisabledCorrection returns the explicitly disabled correction.
func NewDisabledCorrection() Correction {
	return Correction{Variant: Disabled{}}
}

// NewGaussianSmoothingCorrection returns a Gaussian smoothing correction
// with the given kernel parameters.
func NewGaussianSmoothingCorrection(smoothingLengthFactor float64, endPointsToInterpolate int) Correction {
	return Correction{Variant: &Smoothing{
		SmoothingType: SmoothingKernel{Variant: &GaussianSmoothing{
			SmoothingLengthFactor:          smoothingLengthFactor,
			NumberOfEndPointsToInterpolate: endPointsToInterpolate,
		}},
	}}
}

// NewPrescribedCorrection returns a prescribed-shape correction with the
// elliptic default shape.
func NewPrescribedCorrection() Correction {
	return Correction{Variant: &Prescribed{Shape: NewPrescribedShape()}}
}

// Validate checks that a variant is active and valid.
func (c Correction) Validate() error {
	if c.Variant == nil {
		return document.NewSchemaViolation("circulation correction has no active variant")
	}
	return c.Variant.Validate()
}

// MarshalJSON encodes the active variant.
func (c Correction) MarshalJSON() ([]byte, error) {
	return correctionUnion.Encode(c.Variant)
}

// UnmarshalJSON decodes a bare variant string or a single-key variant object.
func (c *Correction) UnmarshalJSON(data []byte) error {
	v, err := correctionUnion.Decode(data)
	if err != nil {
		return err
	}
	c.Variant = v.(CorrectionVariant)
	return nil
}

// Disabled is the explicit no-correction state, encoded as "None".
type Disabled struct{}

// VariantTag implements document.Variant.
func (Disabled) VariantTag() string { return "None" }

// Validate implements document.Document.
func (Disabled) Validate() error { return nil }

func (Disabled) correctionVariant() {}

// Smoothing smooths the raw circulation distribution with a kernel. The
// kernel choice is itself a tagged union nested one level deeper.
type Smoothing struct {
	SmoothingType SmoothingKernel `json:"smoothing_type"`
}

// VariantTag implements document.Variant.
func (*Smoothing) VariantTag() string { return "Smoothing" }

// Validate implements document.Document.
func (s *Smoothing) Validate() error {
	return s.SmoothingType.Validate()
}

func (*Smoothing) correctionVariant() {}

// KernelVariant is one alternative of the smoothing kernel union.
type KernelVariant interface {
	document.Variant
	Validate() error
	kernelVariant()
}

var kernelUnion = document.NewUnion("smoothing kernel").
	Payload("Gaussian", func() document.Variant { return NewGaussianSmoothing() })

// SmoothingKernel holds the active smoothing kernel variant. Only the
// Gaussian kernel exists in the engine contract today.
type SmoothingKernel struct {
	Variant KernelVariant
}

// Validate checks that a kernel is active and valid.
func (k SmoothingKernel) Validate() error {
	if k.Variant == nil {
		return document.NewSchemaViolation("smoothing kernel has no active variant")
	}
	return k.Variant.Validate()
}

// MarshalJSON encodes the active kernel.
func (k SmoothingKernel) MarshalJSON() ([]byte, error) {
	return kernelUnion.Encode(k.Variant)
}

// UnmarshalJSON decodes a single-key kernel object.
func (k *SmoothingKernel) UnmarshalJSON(data []byte) error {
	v, err := kernelUnion.Decode(data)
	if err != nil {
		return err
	}
	k.Variant = v.(KernelVariant)
	return nil
}

// GaussianSmoothing is the Gaussian kernel's parameters.
type GaussianSmoothing struct {
	SmoothingLengthFactor          float64 `json:"smoothing_length_factor" validate:"gte=0"`
	NumberOfEndPointsToInterpolate int     `json:"number_of_end_points_to_interpolate" validate:"gte=0"`
}

// NewGaussianSmoothing returns the kernel with its canonical defaults.
func NewGaussianSmoothing() *GaussianSmoothing {
	return &GaussianSmoothing{SmoothingLengthFactor: 0.1}
}

// VariantTag implements document.Variant.
func (*GaussianSmoothing) VariantTag() string { return "Gaussian" }

// Validate implements document.Document.
func (g *GaussianSmoothing) Validate() error {
	return document.ValidateStruct(g)
}

func (*GaussianSmoothing) kernelVariant() {}

// UnmarshalJSON fills the canonical defaults before strictly decoding, so a
// sparse document round-trips to the same values the engine would use.
func (g *GaussianSmoothing) UnmarshalJSON(data []byte) error {
	type plain GaussianSmoothing
	tmp := plain(*NewGaussianSmoothing())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*g = GaussianSmoothing(tmp)
	return nil
}

// Prescribed replaces the circulation distribution with a parametric shape,
// scaled to match the estimated circulation.
type Prescribed struct {
	Shape PrescribedShape `json:"shape"`

	// CurveFitShapeParameters asks the engine to fit the shape powers to
	// the raw distribution instead of using them literally.
	CurveFitShapeParameters bool `json:"curve_fit_shape_parameters"`
}

// VariantTag implements document.Variant.
func (*Prescribed) VariantTag() string { return "Prescribed" }

// Validate implements document.Document.
func (p *Prescribed) Validate() error {
	return p.Shape.Validate()
}

func (*Prescribed) correctionVariant() {}

// UnmarshalJSON fills the elliptic default shape before strictly decoding.
func (p *Prescribed) UnmarshalJSON(data []byte) error {
	type plain Prescribed
	tmp := plain{Shape: NewPrescribedShape()}
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*p = Prescribed(tmp)
	return nil
}

// PrescribedShape is the parametric circulation shape. The defaults give an
// elliptical distribution.
type PrescribedShape struct {
	InnerPower float64 `json:"inner_power" validate:"gt=0"`
	OuterPower float64 `json:"outer_power" validate:"gt=0"`
}

// NewPrescribedShape returns the elliptic default shape.
func NewPrescribedShape() PrescribedShape {
	return PrescribedShape{InnerPower: 2.0, OuterPower: 0.5}
}

// Validate implements document.Document.
func (s PrescribedShape) Validate() error {
	return document.ValidateStruct(s)
}

// UnmarshalJSON fills the elliptic defaults before strictly decoding.
func (s *PrescribedShape) UnmarshalJSON(data []byte) error {
	type plain PrescribedShape
	tmp := plain(NewPrescribedShape())
	if err := document.UnmarshalStrict(data, &tmp); err != nil {
		return err
	}
	*s = PrescribedShape(tmp)
	return nil
}
