// Package preflight runs the setup checks that must pass before any file is
// processed: external binaries resolvable and the output directory writable.
// Failures here are fatal; per-file problems later are not.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"wavextract/internal/config"
	"wavextract/internal/deps"
)

// Result captures a single preflight check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckTools verifies the configured ffprobe and ffmpeg binaries resolve.
func CheckTools(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Required for stream metadata"},
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Required for PCM transcoding"},
	})
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// CheckOutputDir verifies the output directory exists (creating it when
// absent) and is writable.
func CheckOutputDir(path string) Result {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: "Output directory", Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: "Output directory", Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: "Output directory", Passed: true, Detail: path}
}

// Run executes all checks and returns an error summarizing any failures.
func Run(cfg *config.Config, outputDir string) error {
	results := CheckTools(cfg)
	results = append(results, CheckOutputDir(outputDir))

	var failures []string
	for _, result := range results {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("preflight failed: %s", strings.Join(failures, "; "))
	}
	return nil
}
