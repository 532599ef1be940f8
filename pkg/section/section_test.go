package section

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

func TestEmptyFoilSerializesSparse(t *testing.T) {
	data, err := json.Marshal(NewModel(&Foil{}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"Foil":{}}` {
		t.Errorf("empty foil serialized as %s, want {\"Foil\":{}}", data)
	}
}

func TestFoilSetCoefficientsAppearOnTheWire(t *testing.T) {
	model := NewModel(&Foil{
		ClZeroAngle: document.Float64(0.5),
		CdMin:       document.Float64(0.01),
		StallRange:  document.Float64(0.1),
	})

	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"Foil":{"cl_zero_angle":0.5,"cd_min":0.01,"stall_range":0.1}}`
	if string(data) != want {
		t.Errorf("foil serialized as %s, want %s", data, want)
	}
}

func TestEffectiveWindSensorSerializesAsBareString(t *testing.T) {
	data, err := json.Marshal(NewModel(EffectiveWindSensor{}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"EffectiveWindSensor"` {
		t.Errorf("sensor serialized as %s", data)
	}
}

func TestModelRoundTripAllVariants(t *testing.T) {
	tests := []struct {
		name  string
		model Model
	}{
		{"empty foil", NewModel(&Foil{})},
		{"foil with coefficients", NewModel(&Foil{ClInitialSlope: document.Float64(6.28)})},
		{"varying foil", NewFlappedWing()},
		{"rotating cylinder", NewModel(&RotatingCylinder{RevolutionsPerSecond: 2.5})},
		{"wind sensor", NewModel(EffectiveWindSensor{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.model)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			var back Model
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", data, err)
			}
			if diff := cmp.Diff(tt.model, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelRejectsUnknownVariant(t *testing.T) {
	var m Model
	err := json.Unmarshal([]byte(`{"Sailwing":{}}`), &m)
	if !document.IsUnknownVariantTag(err) {
		t.Errorf("got %v, want unknown variant tag", err)
	}
}

func TestModelRejectsUnknownFoilField(t *testing.T) {
	var m Model
	err := json.Unmarshal([]byte(`{"Foil":{"cl_zero_angle":0.5,"cl_typo":1.0}}`), &m)
	if !document.IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation", err)
	}
}

func TestVaryingFoilLockStep(t *testing.T) {
	v := &VaryingFoil{
		InternalStateData: []float64{-0.2, 0.0, 0.2},
		FoilsData:         []Foil{{}, {}},
	}
	if err := v.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("mismatched tables: got %v, want schema violation", err)
	}

	v.FoilsData = append(v.FoilsData, Foil{})
	if err := v.Validate(); err != nil {
		t.Errorf("matched tables rejected: %v", err)
	}
}

func TestRotatingCylinderTableLockStep(t *testing.T) {
	r := &RotatingCylinder{
		SpinRatioData: []float64{0.0, 1.0, 2.0},
		ClData:        []float64{0.0, 2.0},
	}
	if err := r.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("mismatched cl table: got %v, want schema violation", err)
	}

	r.ClData = []float64{0.0, 2.0, 4.0}
	r.CdData = []float64{0.5}
	if err := r.Validate(); !document.IsSchemaViolation(err) {
		t.Errorf("mismatched cd table: got %v, want schema violation", err)
	}

	r.CdData = []float64{0.5, 0.7, 1.2}
	if err := r.Validate(); err != nil {
		t.Errorf("matched tables rejected: %v", err)
	}
}

func TestFlappedWingArchetype(t *testing.T) {
	model := NewFlappedWing()

	v, ok := model.Variant.(*VaryingFoil)
	if !ok {
		t.Fatalf("flapped wing variant is %T, want *VaryingFoil", model.Variant)
	}
	if len(v.InternalStateData) != 3 || len(v.FoilsData) != 3 {
		t.Fatalf("flapped wing has %d states and %d foils, want 3 and 3",
			len(v.InternalStateData), len(v.FoilsData))
	}
	if v.InternalStateData[0] >= 0 || v.InternalStateData[1] != 0 || v.InternalStateData[2] <= 0 {
		t.Errorf("state table %v is not symmetric around zero", v.InternalStateData)
	}
	if *v.FoilsData[0].ClZeroAngle != -1.75 || *v.FoilsData[2].ClZeroAngle != 1.75 {
		t.Errorf("flap foils have zero-angle lifts %v and %v, want -1.75 and 1.75",
			*v.FoilsData[0].ClZeroAngle, *v.FoilsData[2].ClZeroAngle)
	}
	if err := model.Validate(); err != nil {
		t.Errorf("flapped wing archetype invalid: %v", err)
	}
}

func TestSuctionSailUnsupported(t *testing.T) {
	_, err := NewSuctionSail()
	if !document.IsUnsupportedConfiguration(err) {
		t.Errorf("got %v, want unsupported configuration", err)
	}
}
