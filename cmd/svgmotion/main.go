package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/engine"
	"github.com/ivlev/svgmotion/internal/export"
	"github.com/ivlev/svgmotion/internal/parser"
	"github.com/ivlev/svgmotion/internal/system"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/svg", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к SVG-файлу или папке (по умолчанию: самый свежий файл в input/svg/)")
	outputPtr := flag.String("output", "", "Путь к результату (если пусто, генерируется рядом с входным файлом)")
	formatPtr := flag.String("format", "lottie", "Формат вывода: lottie (JSON) или svg (SMIL)")
	configPtr := flag.String("config", "", "Путь к файлу конфигурации анимации (JSON или YAML)")
	effectPtr := flag.String("effect", "", "Эффект: fade, scale (если пусто, берется из конфигурации)")
	framesPtr := flag.Int("frames", 0, "Число кадров (перекрывает конфигурацию)")
	fpsPtr := flag.Float64("fps", 0, "Частота кадров (перекрывает конфигурацию)")
	widthPtr := flag.Int("width", 0, "Ширина холста (перекрывает конфигурацию)")
	heightPtr := flag.Int("height", 0, "Высота холста (перекрывает конфигурацию)")
	bgPtr := flag.String("bg", "", "Цвет фона, например #ffffff (перекрывает конфигурацию)")
	easingPtr := flag.String("easing", "", "Интерполяция: linear, ease-in-out")
	workersPtr := flag.Int("workers", 0, "Потоки при пакетной обработке (0 - авто)")
	previewPtr := flag.Bool("preview", false, "Создавать HTML-предпросмотр рядом с результатом")
	storyboardPtr := flag.Bool("storyboard", false, "Сохранять расписание анимации в YAML рядом с результатом")
	strictPtr := flag.Bool("strict", false, "Прерывать конвертацию при неподдерживаемых элементах")
	verbosePtr := flag.Bool("verbose", false, "Подробный вывод")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		var err error
		cfg, err = config.Load(*configPtr)
		if err != nil {
			fatal(err)
		}
	}
	if *framesPtr > 0 {
		cfg.NFrames = *framesPtr
	}
	if *fpsPtr > 0 {
		cfg.Framerate = *fpsPtr
	}
	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}
	if *bgPtr != "" {
		cfg.BackgroundColor = *bgPtr
	}
	if *easingPtr != "" {
		cfg.Easing = *easingPtr
	}
	if *effectPtr != "" {
		cfg.Effect = *effectPtr
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	inputPath := *inputPtr
	if inputPath == "" && flag.NArg() > 0 {
		inputPath = flag.Arg(0)
	}
	if inputPath == "" {
		latest, err := system.FindLatestSVG("input/svg")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите SVG в input/svg/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}

	effect, err := effects.NewEffect(cfg.Effect)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	exporter, err := export.NewExporter(*formatPtr, *strictPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	project := &engine.Project{
		Config:     cfg,
		Effect:     effect,
		Exporter:   exporter,
		Preview:    *previewPtr,
		Storyboard: *storyboardPtr,
		Verbose:    *verbosePtr,
	}

	fi, err := os.Stat(inputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка: входной путь не существует: %s", inputPath)
	}

	if fi.IsDir() {
		runBatch(project, inputPath, *outputPtr, *workersPtr)
		return
	}

	result, err := project.RunFile(inputPath, *outputPtr)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("[+++] Успех! Результат:\n")
	for _, out := range result.Outputs {
		fmt.Printf("  - %s\n", out)
	}
	if result.Skipped > 0 {
		fmt.Printf("[!] Пропущено неподдерживаемых элементов: %d\n", result.Skipped)
	}
}

func runBatch(project *engine.Project, inputDir, outputDir string, workers int) {
	summary, err := project.RunBatch(context.Background(), inputDir, outputDir, workers)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("[*] Готово: всего %d, успешно %d, с ошибками %d\n",
		summary.Total, summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		fmt.Println("[-] Файлы с ошибками:")
		for _, f := range summary.Failures {
			fmt.Printf("  - %s: %v\n", f.Path, f.Err)
		}
		os.Exit(1)
	}
}

// fatal prints a diagnostic tailored to the error kind and exits.
func fatal(err error) {
	var parseErr *parser.ParseError
	var cfgErr *config.ConfigError
	var featErr *export.UnsupportedFeatureError
	switch {
	case errors.As(err, &parseErr):
		log.Fatalf("[-] Ошибка разбора SVG: %v", err)
	case errors.As(err, &cfgErr):
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	case errors.As(err, &featErr):
		log.Fatalf("[-] Неподдерживаемый элемент (строгий режим): %v", err)
	default:
		log.Fatalf("[-] Ошибка: %v", err)
	}
}
