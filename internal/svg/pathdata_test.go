package svg

import (
	"strings"
	"testing"
)

func TestParsePathDataBasic(t *testing.T) {
	p, err := ParsePathData("M 10 20 L 30 40 L 30 60 Z")
	if err != nil {
		t.Fatalf("ParsePathData failed: %v", err)
	}
	if len(p) != 4 {
		t.Fatalf("Expected 4 operations, got %d", len(p))
	}
	if _, ok := p[0].(MoveTo); !ok {
		t.Errorf("First op should be MoveTo, got %T", p[0])
	}
	if _, ok := p[3].(Close); !ok {
		t.Errorf("Last op should be Close, got %T", p[3])
	}

	bounds := p.ToSVGPath()
	if !strings.HasPrefix(bounds, "M") {
		t.Errorf("Serialized path should start with M: %s", bounds)
	}
}

func TestParsePathDataRelative(t *testing.T) {
	tests := []struct {
		name     string
		abs, rel string
	}{
		{"single-pair", "M 10 10 L 20 30", "m 10 10 l 10 20"},
		// each relative pair chains off the previous point
		{"chained-lineto", "M 0 0 L 10 0 L 20 0 L 20 10", "M 0 0 l 10 0 10 0 0 10"},
		{"chained-moveto", "M 5 5 L 10 10 L 15 15", "m 5 5 5 5 5 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := ParsePathData(tt.abs)
			if err != nil {
				t.Fatalf("absolute parse failed: %v", err)
			}
			rel, err := ParsePathData(tt.rel)
			if err != nil {
				t.Fatalf("relative parse failed: %v", err)
			}
			if abs.ToSVGPath() != rel.ToSVGPath() {
				t.Errorf("Relative form should equal absolute form:\n  abs: %s\n  rel: %s",
					abs.ToSVGPath(), rel.ToSVGPath())
			}
		})
	}
}

func TestParsePathDataCommands(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"horizontal-vertical", "M 0 0 H 50 V 50 H 0 Z"},
		{"cubic", "M 0 0 C 10 0 20 10 20 20"},
		{"smooth-cubic", "M 0 0 C 10 0 20 10 20 20 S 40 40 50 50"},
		{"quadratic", "M 0 0 Q 25 50 50 0"},
		{"smooth-quadratic", "M 0 0 Q 25 50 50 0 T 100 0"},
		{"arc", "M 10 10 A 20 20 0 0 1 50 10"},
		{"implicit-lineto", "M 0 0 10 10 20 0"},
		{"scientific-notation", "M 1e1 2e1 L 3e1 4e1"},
		{"compact-separators", "M10,20L30,40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			if err != nil {
				t.Fatalf("ParsePathData(%q) failed: %v", tt.d, err)
			}
			if len(p) < 2 {
				t.Errorf("Expected at least 2 operations, got %d", len(p))
			}
			t.Logf("%s -> %d ops", tt.d, len(p))
		})
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []string{
		"M 10",        // truncated coordinate pair
		"X 10 20",     // unknown command
		"L 10 20",     // lineto before any moveto
		"M 10 banana", // not a number
	}

	for _, d := range tests {
		if _, err := ParsePathData(d); err == nil {
			t.Errorf("ParsePathData(%q) should fail", d)
		}
	}
}

func TestParsePathDataArcSplitting(t *testing.T) {
	// A 180 degree arc must be split into multiple cubic segments
	p, err := ParsePathData("M 0 0 A 50 50 0 0 1 100 0")
	if err != nil {
		t.Fatalf("arc parse failed: %v", err)
	}
	cubics := 0
	for _, op := range p {
		if _, ok := op.(CubicTo); ok {
			cubics++
		}
	}
	if cubics < 2 {
		t.Errorf("Expected at least 2 cubic segments for a half circle, got %d", cubics)
	}
}

func TestPathBounds(t *testing.T) {
	p, err := ParsePathData("M 10 20 L 110 20 L 110 80 L 10 80 Z")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	minX, minY, maxX, maxY := p.Bounds()
	if minX != 10 || minY != 20 || maxX != 110 || maxY != 80 {
		t.Errorf("Bounds = (%g,%g)-(%g,%g), want (10,20)-(110,80)", minX, minY, maxX, maxY)
	}
}

func TestPathTransform(t *testing.T) {
	p, err := ParsePathData("M 0 0 L 10 0")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	moved := p.Transform(Identity.Translate(5, 7))
	minX, minY, maxX, maxY := moved.Bounds()
	if minX != 5 || minY != 7 || maxX != 15 || maxY != 7 {
		t.Errorf("Translated bounds = (%g,%g)-(%g,%g), want (5,7)-(15,7)", minX, minY, maxX, maxY)
	}
	// original untouched
	if ox, _, _, _ := p.Bounds(); ox != 0 {
		t.Error("Transform must not mutate the receiver")
	}
}
