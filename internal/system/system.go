// Package system checks the runtime environment before a run: external
// tools on PATH, machine capacity for sizing the render pool, and input
// discovery helpers.
package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// CheckDependencies verifies the external encoder tools are reachable.
// Runs before any expensive work so a missing binary fails fast.
func CheckDependencies() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("dependency check failed: %s not found in PATH", tool)
		}
	}
	return nil
}

// Snapshot describes the machine a run executes on.
type Snapshot struct {
	CPUs            int
	AvailableMemory uint64 // bytes
}

// Probe inspects the host. Falls back to runtime values when the platform
// probes fail.
func Probe() Snapshot {
	s := Snapshot{CPUs: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.CPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.AvailableMemory = vm.Available
	}
	return s
}

// Workers derives the render pool size: one worker per logical CPU, capped
// so the in-flight frame buffers fit comfortably in available memory.
func (s Snapshot) Workers(frameBytes int) int {
	workers := s.CPUs
	if s.AvailableMemory > 0 && frameBytes > 0 {
		// keep the pool's working set under a quarter of available memory
		limit := int(s.AvailableMemory / 4 / uint64(frameBytes))
		if limit < 1 {
			limit = 1
		}
		if limit < workers {
			workers = limit
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// AudioDuration returns a media file's duration in seconds via ffprobe.
func AudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// FindLatestAudio returns the most recently modified audio file in dir,
// used to auto-pick a background music bed when none is named.
func FindLatestAudio(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isAudio := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isAudio = true
				break
			}
		}
		if isAudio {
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
		return "", fmt.Errorf("no audio files found in %s", dir)
	}

	return latestFile, nil
}
