package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// perJobEstimate is a generous upper bound on the working set of one
// conversion: parsed tree plus both output buffers.
const perJobEstimate = 64 << 20

// SuggestWorkers picks a batch worker count from the CPU count,
// clamped by available memory so large batches do not swap.
func SuggestWorkers(jobs int) int {
	workers := runtime.NumCPU()
	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perJobEstimate)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < workers {
			workers = byMem
		}
	}
	if jobs > 0 && jobs < workers {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// FindLatestSVG returns the most recently modified .svg file in dir.
func FindLatestSVG(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".svg") {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено SVG-файлов", dir)
	}

	return latestFile, nil
}
