package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/svgmotion/internal/analyzer"
	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/export"
	"github.com/ivlev/svgmotion/internal/parser"
	"github.com/ivlev/svgmotion/internal/storyboard"
	"github.com/ivlev/svgmotion/internal/system"
)

// Project binds the conversion pipeline together: one configuration,
// one effect, one output format, applied to any number of inputs.
type Project struct {
	Config   config.Animation
	Effect   effects.Effect
	Exporter export.Exporter
	Preview  bool
	// Storyboard dumps the synthesized schedule as YAML next to the
	// output, for inspection and diffing.
	Storyboard bool
	Verbose    bool
}

// Result describes one successful conversion.
type Result struct {
	Input   string
	Outputs []string
	Units   int
	Skipped int
	Summary analyzer.Summary
}

// FileFailure records why one batch entry failed.
type FileFailure struct {
	Path string
	Err  error
}

// BatchSummary aggregates a directory run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []*Result
	Failures  []FileFailure
}

func (p *Project) logf(format string, args ...interface{}) {
	if p.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// RunFile converts a single SVG file. When outPath is empty the output
// lands next to the input with the exporter's extension.
func (p *Project) RunFile(inPath, outPath string) (*Result, error) {
	if outPath == "" {
		outPath = replaceExt(inPath, p.Exporter.Ext())
	}

	p.logf("[1/3] Разбор SVG: %s", inPath)
	doc, err := parser.ParseFile(inPath)
	if err != nil {
		return nil, err
	}

	p.logf("[2/3] Анализ структуры (бэкенд: %s)", doc.Backend)
	summary := analyzer.Analyze(doc)
	units := analyzer.Units(doc)
	p.logf("[*] Групп: %d | Путей: %d | Фигур: %d | Элементов анимации: %d",
		summary.Groups, summary.Paths, summary.Shapes, len(units))
	if summary.Flat {
		p.logf("[!] Плоская структура: анимация будет поэлементной, без групп")
	}

	p.logf("[3/3] Сборка анимации (%s)", p.Exporter.Name())
	elements := effects.Synthesize(units, p.Config, p.Effect)
	name := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	artifact, err := p.Exporter.Export(doc, elements, p.Config, name)
	if err != nil {
		return nil, err
	}
	if artifact.Skipped > 0 {
		p.logf("[!] Пропущено неподдерживаемых элементов: %d", artifact.Skipped)
	}

	if err := writeFile(outPath, artifact.Data); err != nil {
		return nil, err
	}
	result := &Result{
		Input:   inPath,
		Outputs: []string{outPath},
		Units:   len(units),
		Skipped: artifact.Skipped,
		Summary: summary,
	}

	if p.Storyboard {
		sbPath := replaceExt(outPath, ".storyboard.yaml")
		sb := storyboard.FromElements(inPath, p.Config, p.Effect.Name(), elements)
		if err := storyboard.Write(sb, sbPath); err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, sbPath)
	}

	if p.Preview {
		previewPath, err := p.writePreview(outPath, artifact, name)
		if err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, previewPath)
	}
	return result, nil
}

func (p *Project) writePreview(outPath string, artifact *export.Artifact, name string) (string, error) {
	previewPath := replaceExt(outPath, ".html")
	var (
		html []byte
		err  error
	)
	if artifact.Ext == ".json" {
		html, err = export.LottiePreview(filepath.Base(outPath), name)
	} else {
		html, err = export.SVGPreview(artifact.Data, filepath.Base(outPath), name)
	}
	if err != nil {
		return "", err
	}
	if err := writeFile(previewPath, html); err != nil {
		return "", err
	}
	p.logf("[+] Предпросмотр: %s", previewPath)
	return previewPath, nil
}

// RunBatch converts every .svg under inputDir, writing results into
// outputDir (created on demand). Files are processed concurrently up
// to the worker limit; one bad file does not stop the rest.
func (p *Project) RunBatch(ctx context.Context, inputDir, outputDir string, workers int) (*BatchSummary, error) {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(filepath.Clean(inputDir)), "animations")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".svg") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{Total: len(files)}
	p.logf("[*] Найдено SVG-файлов: %d", len(files))
	if len(files) == 0 {
		return summary, nil
	}

	if workers < 1 {
		workers = system.SuggestWorkers(len(files))
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			outPath := filepath.Join(outputDir, base+p.Exporter.Ext())
			res, err := p.RunFile(file, outPath)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, FileFailure{Path: file, Err: err})
				return nil
			}
			summary.Succeeded++
			summary.Results = append(summary.Results, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

func replaceExt(path, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	// .anim.svg outputs should not collide with a .svg input
	if strings.HasSuffix(strings.ToLower(base), ".anim") {
		base = base[:len(base)-len(".anim")]
	}
	return base + ext
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
