package export

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/scene"
)

var fixed = time.UnixMilli(1718000000123)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func treeScene(t *testing.T) *scene.Scene {
	t.Helper()
	tree, err := hierarchy.Build(family.Seed())
	if err != nil {
		t.Fatal(err)
	}
	return scene.Build(layout.Compute(tree, layout.Options{}), tree, scene.Options{})
}

func TestExportJPEG(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Now: func() time.Time { return fixed }, Logger: quietLogger()}

	res, err := e.Export(context.Background(), treeScene(t), FormatJPEG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := filepath.Join(dir, "VamshaVriksha_1718000000123.jpg")
	if !res.Written || res.Path != want {
		t.Fatalf("Result = %+v, want written to %s", res, want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != res.Size {
		t.Errorf("Size = %d, file has %d bytes", res.Size, len(data))
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// One card plus avatar (220 x 134) and 50 padding on each side.
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 234 || res.Width != 320 || res.Height != 234 {
		t.Errorf("image %dx%d, result %dx%d; want 320x234", b.Dx(), b.Dy(), res.Width, res.Height)
	}
}

func TestExportPDF(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Product: "Family", Now: func() time.Time { return fixed }, Logger: quietLogger()}

	res, err := e.Export(context.Background(), treeScene(t), FormatPDF)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(res.Path) != "Family_1718000000123.pdf" {
		t.Errorf("Path = %s", res.Path)
	}
	data, _ := os.ReadFile(res.Path)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("not a PDF")
	}
}

func TestExportNothingIsNoop(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Logger: quietLogger()}

	for _, s := range []*scene.Scene{nil, scene.Invalid(hierarchy.DiagnosticHeadline, 800, 600)} {
		for _, f := range Formats {
			res, err := e.Export(context.Background(), s, f)
			if err != nil || res.Written || res != (Result{}) {
				t.Errorf("Export(%v) = %+v, %v; want zero result", f, res, err)
			}
		}
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files created: %d", len(entries))
	}
}

func TestExportErrors(t *testing.T) {
	e := &Exporter{Dir: t.TempDir(), Logger: quietLogger()}
	s := treeScene(t)

	if _, err := e.Export(context.Background(), s, "png"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("png error = %v", err)
	}

	e.Product = "../escape"
	if _, err := e.Export(context.Background(), s, FormatJPEG); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("bad product error = %v", err)
	}

	e.Product = ""
	e.Dir = filepath.Join(t.TempDir(), "missing")
	if _, err := e.Export(context.Background(), s, FormatJPEG); err == nil {
		t.Error("missing directory error = nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Export(ctx, s, FormatJPEG); err != context.Canceled {
		t.Errorf("cancelled error = %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"jpg", FormatJPEG, true},
		{"JPEG", FormatJPEG, true},
		{".pdf", FormatPDF, true},
		{"png", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(DefaultProduct, FormatPDF, fixed); got != "VamshaVriksha_1718000000123.pdf" {
		t.Errorf("Filename = %s", got)
	}
}
