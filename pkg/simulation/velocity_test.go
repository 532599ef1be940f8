package simulation

import (
	"encoding/json"
	"testing"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

func TestVelocityRatioSerializesAsScalarPayload(t *testing.T) {
	data, err := json.Marshal(NewMaxInducedVelocityRatio(1.0))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"MaxInducedVelocityMagnitudeRatio":1}` {
		t.Errorf("velocity ratio serialized as %s", data)
	}
}

func TestVelocityCorrectionsDisabledSerializesAsNone(t *testing.T) {
	data, err := json.Marshal(NewDisabledVelocityCorrections())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"None"` {
		t.Errorf("disabled correction serialized as %s, want \"None\"", data)
	}
}

func TestVelocityCorrectionsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value VelocityCorrections
	}{
		{"disabled", NewDisabledVelocityCorrections()},
		{"ratio", NewMaxInducedVelocityRatio(0.75)},
		{"freestream clamp", VelocityCorrections{Variant: FixedMagnitudeEqualToFreestream{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			var back VelocityCorrections
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", data, err)
			}
			if back.Variant.VariantTag() != tt.value.Variant.VariantTag() {
				t.Errorf("round trip changed variant: %s -> %s",
					tt.value.Variant.VariantTag(), back.Variant.VariantTag())
			}
		})
	}
}

func TestVelocityRatioDecodesScalarPayload(t *testing.T) {
	var c VelocityCorrections
	if err := json.Unmarshal([]byte(`{"MaxInducedVelocityMagnitudeRatio":0.5}`), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	ratio, ok := c.Variant.(*MaxInducedVelocityMagnitudeRatio)
	if !ok {
		t.Fatalf("decoded variant is %T", c.Variant)
	}
	if ratio.Value != 0.5 {
		t.Errorf("ratio = %v, want 0.5", ratio.Value)
	}
}

func TestVelocityRatioMustBePositive(t *testing.T) {
	c := NewMaxInducedVelocityRatio(0.0)
	if err := c.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestVelocityCorrectionsRejectsNonNumericPayload(t *testing.T) {
	var c VelocityCorrections
	err := json.Unmarshal([]byte(`{"MaxInducedVelocityMagnitudeRatio":"fast"}`), &c)
	if !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}
