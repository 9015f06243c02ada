package analyzer

import (
	"testing"

	"github.com/ivlev/svgmotion/internal/parser"
	"github.com/ivlev/svgmotion/internal/svg"
)

func mustParse(t *testing.T, data string) *svg.Document {
	t.Helper()
	doc, err := parser.ParseWith(&parser.TreeBackend{}, []byte(data), "test.svg")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestUnits(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect id="bg" width="100" height="100" fill="#fff"/>
  <g id="logo"><circle cx="50" cy="50" r="10"/></g>
  <g id="empty-group"></g>
  <path id="ghost" d="M 0 0 L 1 1" opacity="0"/>
  <path id="line" d="M 0 0 L 10 10"/>
  <text id="caption">hi</text>
</svg>`)

	units := Units(doc)
	if len(units) != 3 {
		for _, u := range units {
			t.Logf("unit: %s", u.Name)
		}
		t.Fatalf("Expected 3 units, got %d", len(units))
	}

	wantNames := []string{"bg", "logo", "line"}
	for i, want := range wantNames {
		if units[i].Name != want {
			t.Errorf("Unit %d name = %s, want %s", i, units[i].Name, want)
		}
		if units[i].Index != i {
			t.Errorf("Unit %d index = %d", i, units[i].Index)
		}
	}
}

func TestUnitNameFallback(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <rect width="10" height="10"/>
</svg>`)
	units := Units(doc)
	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}
	if units[0].Name != "rect-1" {
		t.Errorf("Anonymous unit name = %s, want rect-1", units[0].Name)
	}
}

func TestAnalyzeSummary(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <g><rect width="5" height="5"/><circle cx="1" cy="1" r="1"/></g>
  <path d="M 0 0 L 1 1"/>
</svg>`)
	s := Analyze(doc)
	if s.Groups != 1 {
		t.Errorf("Groups = %d, want 1", s.Groups)
	}
	if s.Paths != 1 {
		t.Errorf("Paths = %d, want 1", s.Paths)
	}
	if s.Shapes != 2 {
		t.Errorf("Shapes = %d, want 2", s.Shapes)
	}
	if s.Flat {
		t.Error("Small structured document should not be flat")
	}
}

func TestAnalyzeFlat(t *testing.T) {
	// exporter output: many paths, no grouping
	data := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">`
	for i := 0; i < 25; i++ {
		data += `<path d="M 0 0 L 1 1"/>`
	}
	data += `</svg>`

	s := Analyze(mustParse(t, data))
	if !s.Flat {
		t.Errorf("25 ungrouped paths should be flat: %+v", s)
	}
}
