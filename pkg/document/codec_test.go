package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sampleDoc struct {
	Name  string   `json:"name" validate:"required"`
	Count int      `json:"count" validate:"gte=1"`
	Scale *float64 `json:"scale,omitempty"`
}

func (d *sampleDoc) Validate() error {
	return ValidateStruct(d)
}

func TestMarshalRefusesInvalidDocument(t *testing.T) {
	doc := &sampleDoc{Name: "", Count: 0}
	if _, err := Marshal(doc); !IsSchemaViolation(err) {
		t.Errorf("Marshal of invalid document: got %v, want schema violation", err)
	}
}

func TestMarshalOmitsUnsetOptionalFields(t *testing.T) {
	data, err := Marshal(&sampleDoc{Name: "a", Count: 1})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"name":"a","count":1}` {
		t.Errorf("sparse document serialized as %s", data)
	}
}

func TestUnmarshalRejectsUnknownField(t *testing.T) {
	var doc sampleDoc
	err := Unmarshal([]byte(`{"name":"a","count":1,"bogus":true}`), &doc)
	if !IsSchemaViolation(err) {
		t.Fatalf("got %v, want schema violation", err)
	}
	var docErr *Error
	if !errors.As(err, &docErr) || docErr.Field != "bogus" {
		t.Errorf("error does not name the unknown field: %v", err)
	}
}

func TestUnmarshalRejectsTrailingContent(t *testing.T) {
	var doc sampleDoc
	err := Unmarshal([]byte(`{"name":"a","count":1} {"second":true}`), &doc)
	if !IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation for trailing content", err)
	}
}

func TestUnmarshalValidatesResult(t *testing.T) {
	var doc sampleDoc
	err := Unmarshal([]byte(`{"name":"a","count":0}`), &doc)
	if !IsSchemaViolation(err) {
		t.Errorf("got %v, want schema violation from validation", err)
	}
}

func TestWriteFileAndReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := &sampleDoc{Name: "a", Count: 2, Scale: Float64(0.5)}

	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var back sampleDoc
	if err := ReadFile(path, &back); err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if back.Name != doc.Name || back.Count != doc.Count {
		t.Errorf("round trip changed document: %+v", back)
	}
	if back.Scale == nil || *back.Scale != 0.5 {
		t.Errorf("round trip lost optional field: %+v", back.Scale)
	}
}

func TestWriteFileInvalidDocumentLeavesNothingBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	err := WriteFile(path, &sampleDoc{Name: "", Count: 0})
	if !IsSchemaViolation(err) {
		t.Fatalf("got %v, want schema violation", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed write left %d files behind", len(entries))
	}
}

func TestReadFileMissingFile(t *testing.T) {
	var doc sampleDoc
	err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), &doc)
	if !IsIOFailure(err) {
		t.Errorf("got %v, want io failure", err)
	}
}

func TestPointerHelpers(t *testing.T) {
	if v := Float64(1.5); *v != 1.5 {
		t.Errorf("Float64 returned %v", *v)
	}
	if v := Int(3); *v != 3 {
		t.Errorf("Int returned %v", *v)
	}
	if v := Bool(true); !*v {
		t.Errorf("Bool returned %v", *v)
	}
}
