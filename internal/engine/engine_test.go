package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/export"
)

const goodSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect id="card" x="5" y="5" width="90" height="90" fill="#336699"/>
  <circle id="badge" cx="80" cy="20" r="8" fill="#ff9900"/>
</svg>`

func testProject(t *testing.T, format string) *Project {
	t.Helper()
	exporter, err := export.NewExporter(format, false)
	if err != nil {
		t.Fatal(err)
	}
	return &Project{
		Config:   config.Default(),
		Effect:   &effects.FadeEffect{},
		Exporter: exporter,
	}
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInput(t, dir, "card.svg", goodSVG)

	p := testProject(t, "lottie")
	res, err := p.RunFile(inPath, "")
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if res.Units != 2 {
		t.Errorf("Units = %d, want 2", res.Units)
	}

	wantOut := filepath.Join(dir, "card.json")
	if len(res.Outputs) != 1 || res.Outputs[0] != wantOut {
		t.Fatalf("Outputs = %v, want [%s]", res.Outputs, wantOut)
	}
	data, err := os.ReadFile(wantOut)
	if err != nil {
		t.Fatalf("Output was not written: %v", err)
	}
	if !strings.Contains(string(data), `"v":"5.7.1"`) {
		t.Error("Output does not look like a Lottie animation")
	}
}

func TestRunFileSMILName(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInput(t, dir, "card.svg", goodSVG)

	p := testProject(t, "svg")
	res, err := p.RunFile(inPath, "")
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	// the animated copy must not overwrite the input
	want := filepath.Join(dir, "card.anim.svg")
	if res.Outputs[0] != want {
		t.Errorf("Output = %s, want %s", res.Outputs[0], want)
	}
	if _, err := os.Stat(inPath); err != nil {
		t.Errorf("Input file disappeared: %v", err)
	}
}

func TestRunFileExtras(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInput(t, dir, "card.svg", goodSVG)

	p := testProject(t, "lottie")
	p.Preview = true
	p.Storyboard = true
	res, err := p.RunFile(inPath, "")
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}
	if len(res.Outputs) != 3 {
		t.Fatalf("Outputs = %v, want animation + storyboard + preview", res.Outputs)
	}
	sb, err := os.ReadFile(filepath.Join(dir, "card.storyboard.yaml"))
	if err != nil {
		t.Fatalf("Storyboard was not written: %v", err)
	}
	if !strings.Contains(string(sb), "effect: fade") {
		t.Error("Storyboard is missing the effect name")
	}
	html, err := os.ReadFile(filepath.Join(dir, "card.html"))
	if err != nil {
		t.Fatalf("Preview was not written: %v", err)
	}
	if !strings.Contains(string(html), "card.json") {
		t.Error("Preview does not reference the animation file")
	}
}

func TestRunFileParseError(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInput(t, dir, "broken.svg", "this is not an svg at all")

	p := testProject(t, "lottie")
	if _, err := p.RunFile(inPath, ""); err == nil {
		t.Fatal("Expected parse error")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.json")); !os.IsNotExist(err) {
		t.Error("No output should be written for a failed conversion")
	}
}

func TestRunBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeInput(t, inDir, "a.svg", goodSVG)
	writeInput(t, inDir, "b.svg", goodSVG)
	writeInput(t, inDir, "broken.svg", "<not-svg/>")
	writeInput(t, inDir, "notes.txt", "ignored")

	p := testProject(t, "lottie")
	summary, err := p.RunBatch(context.Background(), inDir, outDir, 2)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("Succeeded/Failed = %d/%d, want 2/1", summary.Succeeded, summary.Failed)
	}
	if len(summary.Failures) != 1 || filepath.Base(summary.Failures[0].Path) != "broken.svg" {
		t.Errorf("Failures = %+v", summary.Failures)
	}
	for _, name := range []string{"a.json", "b.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("Missing batch output %s: %v", name, err)
		}
	}
}

func TestRunBatchEmptyDir(t *testing.T) {
	p := testProject(t, "lottie")
	summary, err := p.RunBatch(context.Background(), t.TempDir(), t.TempDir(), 1)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if summary.Total != 0 || summary.Failed != 0 {
		t.Errorf("Summary = %+v, want empty", summary)
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"in/card.svg", ".json", "in/card.json"},
		{"in/card.svg", ".anim.svg", "in/card.anim.svg"},
		{"in/card.anim.svg", ".html", "in/card.html"},
		{"card", ".json", "card.json"},
	}
	for _, tt := range tests {
		if got := replaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("replaceExt(%s, %s) = %s, want %s", tt.path, tt.ext, got, tt.want)
		}
	}
}
