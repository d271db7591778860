package io

import (
	"bytes"
	"fmt"
	stdio "io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
)

const sampleJSON = `[
  {"id": "root-1", "parentId": null, "name": "Grandfather", "regionalName": "दादाजी",
   "relationType": "Root", "gender": "male", "spouseName": "Grandmother"},
  {"id": "m-1", "parentId": "root-1", "name": "Asha", "relationType": "Daughter", "gender": "female",
   "birthDate": "1961-04-02"}
]`

const sampleYAML = `
members:
  - id: root-1
    parentId: null
    name: Grandfather
    regionalName: दादाजी
    relationType: Root
    gender: male
    spouseName: Grandmother
  - id: m-1
    parentId: root-1
    name: Asha
    relationType: Daughter
    gender: female
    birthDate: "1961-04-02"
`

func wantSample() family.Members {
	return family.Members{
		{ID: "root-1", Name: "Grandfather", RegionalName: "दादाजी", Relation: "Root",
			Gender: family.GenderMale, SpouseName: "Grandmother"},
		{ID: "m-1", ParentID: "root-1", Name: "Asha", Relation: "Daughter",
			Gender: family.GenderFemale, BirthDate: "1961-04-02"},
	}
}

func TestReadMembers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"json array", sampleJSON, FormatJSON},
		{"json envelope", `{"members": ` + sampleJSON + `}`, FormatJSON},
		{"yaml envelope", sampleYAML, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadMembers(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadMembers() error = %v", err)
			}
			if diff := cmp.Diff(wantSample(), got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadMembersErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `[{"id": `, errors.ErrCodeInvalidFormat},
		{"missing id", `[{"name": "x"}]`, errors.ErrCodeInvalidInput},
		{"duplicate id", `[{"id": "a"}, {"id": "a", "parentId": "a"}]`, errors.ErrCodeInvalidInput},
		{"bad gender", `[{"id": "a", "gender": "robot"}]`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMembers(strings.NewReader(tt.input), FormatJSON)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStructurallyBrokenDocumentImports(t *testing.T) {
	in := `[{"id": "A", "parentId": null}, {"id": "B", "parentId": null}]`
	got, err := ReadMembers(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("ReadMembers() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestWriteMembersRootIsNull(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMembers(&buf, wantSample(), FormatJSON); err != nil {
		t.Fatalf("WriteMembers() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"parentId": null`) {
		t.Errorf("root parentId not null:\n%s", out)
	}
	if !strings.Contains(out, "दादाजी") {
		t.Errorf("regional name escaped or missing:\n%s", out)
	}
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tree.json", "tree.yaml", "tree.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ExportFile(path, wantSample()); err != nil {
				t.Fatalf("ExportFile() error = %v", err)
			}
			got, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile() error = %v", err)
			}
			if diff := cmp.Diff(wantSample(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("leftover temp files: %d entries", len(entries))
	}
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportFile(filepath.Join(dir, "tree.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteFileAtomicFailureKeepsOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := fmt.Errorf("boom")
	err := WriteFileAtomic(path, func(w stdio.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if err == nil {
		t.Fatal("WriteFileAtomic error = nil")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("destination = %q, want untouched", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("leftover files: %d entries", len(entries))
	}
}
