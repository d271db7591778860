package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
)

func tree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tr, err := hierarchy.Build(family.Members{
		{ID: "root-1", Name: "Grandfather", RegionalName: "दादाजी", Relation: "Root", SpouseName: "Grandmother", SpouseRegionalName: "दादीजी", BirthDate: "1931"},
		{ID: "c1", ParentID: "root-1", Name: "Father", Relation: "Son"},
		{ID: "c2", ParentID: "root-1", Name: "Aunt", Relation: "Daughter", Gender: family.GenderFemale},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(tree(t), Options{Selected: "c1"})

	for _, want := range []string{
		"digraph G {",
		`"root-1" [label="Grandfather\nदादाजी\n+ Grandmother (दादीजी)"];`,
		`"c1" [label="Father", color="#dc2626", penwidth=3];`,
		`"c2" [label="Aunt", fillcolor="#fee2e2"];`,
		`"root-1" -> "c1";`,
		`"root-1" -> "c2";`,
		"arrowhead=none",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Index(dot, `"c1" [`) > strings.Index(dot, `"c2" [`) {
		t.Error("nodes not in collection order")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(tree(t), Options{Detailed: true})
	if !strings.Contains(dot, `relation: Root\n1931 -"`) {
		t.Errorf("detailed label missing relation/dates:\n%s", dot)
	}
}

func TestToDOTNilTree(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || strings.Contains(dot, "->") {
		t.Errorf("ToDOT(nil) = %s", dot)
	}
}

func TestDiagnosticDOT(t *testing.T) {
	dot := DiagnosticDOT("Invalid Tree Structure. Ensure only one root exists. (cycle through \"A\")")
	if !strings.Contains(dot, `label="Invalid Tree Structure. Ensure only one root exists. (cycle through \"A\")"`) {
		t.Errorf("label not quoted: %s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("diagnostic graph has edges: %s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox changed")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz wasm startup is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(tree(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "Grandfather") {
		t.Errorf("unexpected SVG:\n%s", svg)
	}
}
