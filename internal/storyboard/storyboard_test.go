package storyboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/svgmotion/internal/analyzer"
	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/parser"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect id="frame" width="100" height="100" fill="#eeeeee"/>
  <circle id="pin" cx="50" cy="50" r="10" fill="#cc0000"/>
</svg>`

func sampleElements(t *testing.T, cfg config.Animation) []effects.Element {
	t.Helper()
	doc, err := parser.ParseWith(&parser.TreeBackend{}, []byte(sampleSVG), "sample.svg")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return effects.Synthesize(analyzer.Units(doc), cfg, &effects.FadeEffect{})
}

func TestFromElements(t *testing.T) {
	cfg := config.Default()
	sb := FromElements("sample.svg", cfg, "fade", sampleElements(t, cfg))

	if sb.Version != "1" {
		t.Errorf("Version = %s, want 1", sb.Version)
	}
	if sb.Input != "sample.svg" {
		t.Errorf("Input = %s, want sample.svg", sb.Input)
	}
	if sb.NFrames != 90 || sb.Framerate != 30 {
		t.Errorf("Timeline = %d@%g, want 90@30", sb.NFrames, sb.Framerate)
	}
	if len(sb.Elements) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(sb.Elements))
	}
	if sb.Elements[0].Name != "frame" || sb.Elements[1].Name != "pin" {
		t.Errorf("Element names = %s, %s", sb.Elements[0].Name, sb.Elements[1].Name)
	}
	if sb.Elements[1].Start != 30 {
		t.Errorf("Staggered start = %g, want 30", sb.Elements[1].Start)
	}
	tracks := sb.Elements[0].Tracks
	if len(tracks) != 1 || tracks[0].Property != "opacity" {
		t.Fatalf("Unexpected tracks: %+v", tracks)
	}
	if len(tracks[0].Keyframes) != 2 {
		t.Errorf("Expected 2 keyframes, got %d", len(tracks[0].Keyframes))
	}
}

func TestWriteRead(t *testing.T) {
	cfg := config.Default()
	sb := FromElements("sample.svg", cfg, "fade", sampleElements(t, cfg))

	path := filepath.Join(t.TempDir(), "storyboard.yaml")
	if err := Write(sb, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"version:", "n_frames: 90", "effect: fade", "property: opacity"} {
		if !strings.Contains(text, want) {
			t.Errorf("Storyboard file missing %q:\n%s", want, text)
		}
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.NFrames != sb.NFrames || got.Effect != sb.Effect || len(got.Elements) != len(sb.Elements) {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if got.Elements[1].Start != sb.Elements[1].Start {
		t.Errorf("Start = %g, want %g", got.Elements[1].Start, sb.Elements[1].Start)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error reading missing file")
	}
}
