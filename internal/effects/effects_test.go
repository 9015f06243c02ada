package effects

import (
	"math"
	"testing"

	"github.com/ivlev/svgmotion/internal/analyzer"
	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/svg"
)

func makeUnits(n int) []analyzer.Unit {
	units := make([]analyzer.Unit, n)
	for i := range units {
		units[i] = analyzer.Unit{
			Node:  &svg.Node{Kind: svg.KindPath, Tag: "path"},
			Index: i,
			Name:  "unit",
		}
	}
	return units
}

func TestEffectRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"fade", false},
		{"", false}, // default
		{"scale", false},
		{"draw", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			effect, err := NewEffect(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if effect == nil {
					t.Error("Expected effect, got nil")
				}
			}
		})
	}
}

func TestSynthesizeStagger(t *testing.T) {
	cfg := config.Default() // 90 frames
	elements := Synthesize(makeUnits(5), cfg, &FadeEffect{})
	if len(elements) != 5 {
		t.Fatalf("Expected 5 elements, got %d", len(elements))
	}

	prev := -1.0
	for i, el := range elements {
		if el.Start <= prev {
			t.Errorf("Element %d start %g not after %g", i, el.Start, prev)
		}
		if el.Start < 0 || el.Start >= float64(cfg.NFrames) {
			t.Errorf("Element %d start %g out of timeline", i, el.Start)
		}
		prev = el.Start
	}
	// first element starts immediately
	if elements[0].Start != 0 {
		t.Errorf("First element start = %g, want 0", elements[0].Start)
	}
	// i*F/(n+1)
	want := 2.0 * 90.0 / 6.0
	if elements[2].Start != want {
		t.Errorf("Element 2 start = %g, want %g", elements[2].Start, want)
	}
}

func TestSynthesizeTracksEndAtLastFrame(t *testing.T) {
	cfg := config.Default()
	elements := Synthesize(makeUnits(3), cfg, &FadeEffect{})
	for i, el := range elements {
		if len(el.Tracks) != 1 || el.Tracks[0].Property != "opacity" {
			t.Fatalf("Element %d tracks wrong: %+v", i, el.Tracks)
		}
		kfs := el.Tracks[0].Keyframes
		last := kfs[len(kfs)-1]
		if last.Frame != float64(cfg.NFrames-1) || last.Value != 1 {
			t.Errorf("Element %d final keyframe = %+v, want frame %d value 1", i, last, cfg.NFrames-1)
		}
		if kfs[0].Value != 0 {
			t.Errorf("Element %d initial value = %g, want 0", i, kfs[0].Value)
		}
	}
}

func TestSynthesizeSingleFrame(t *testing.T) {
	cfg := config.Default()
	cfg.NFrames = 1
	elements := Synthesize(makeUnits(4), cfg, &FadeEffect{})
	for i, el := range elements {
		if el.Start != 0 {
			t.Errorf("Element %d start = %g, want 0 for static output", i, el.Start)
		}
		kfs := el.Tracks[0].Keyframes
		if len(kfs) != 1 || kfs[0].Value != 1 {
			t.Errorf("Element %d should hold its final value, got %+v", i, kfs)
		}
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	elements := Synthesize(nil, config.Default(), &FadeEffect{})
	if len(elements) != 0 {
		t.Errorf("Expected no elements, got %d", len(elements))
	}
}

func TestScaleEffectTracks(t *testing.T) {
	elements := Synthesize(makeUnits(1), config.Default(), &ScaleEffect{})
	props := map[string]bool{}
	for _, tr := range elements[0].Tracks {
		props[tr.Property] = true
	}
	if !props["scale"] || !props["opacity"] {
		t.Errorf("Scale effect should drive scale and opacity, got %v", props)
	}
}

func TestValueAt(t *testing.T) {
	tr := Track{Property: "opacity", Keyframes: []Keyframe{
		{Frame: 30, Value: 0},
		{Frame: 89, Value: 1},
	}}

	tests := []struct {
		frame float64
		want  float64
	}{
		{0, 0},   // before first keyframe
		{30, 0},  // at first keyframe
		{89, 1},  // at last keyframe
		{100, 1}, // after last keyframe
		{59.5, 0.5},
	}
	for _, tt := range tests {
		got := tr.ValueAt(tt.frame)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ValueAt(%g) = %g, want %g", tt.frame, got, tt.want)
		}
	}
}

func TestValueAtEased(t *testing.T) {
	tr := Track{Property: "opacity", Keyframes: []Keyframe{
		{Frame: 0, Value: 0, Eased: true},
		{Frame: 100, Value: 1},
	}}
	// ease-in-out passes through the midpoint but starts slow
	if got := tr.ValueAt(50); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ValueAt(50) = %g, want 0.5", got)
	}
	if got := tr.ValueAt(25); got >= 0.25 {
		t.Errorf("ValueAt(25) = %g, should undershoot linear 0.25", got)
	}
	if got := tr.ValueAt(75); got <= 0.75 {
		t.Errorf("ValueAt(75) = %g, should overshoot linear 0.75", got)
	}
}
