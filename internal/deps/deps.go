// Package deps reports availability of the external tools subkit drives.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subkit/internal/config"
)

// Requirement defines an external dependency subkit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the tools the configured workflows execute. Subtitle
// Edit and alass are optional: extract works without OCR for text codecs and
// fetch needs neither.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "ffprobe", Command: cfg.Tools.FFprobe, Description: "Stream inspection (tracks, extract)"},
		{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "Subtitle demux and conversion (extract)"},
		{Name: "alass", Command: cfg.Tools.Alass, Description: "Subtitle alignment (sync)", Optional: true},
		{Name: "Subtitle Edit", Command: cfg.Tools.SubtitleEdit, Description: "OCR for image-based subtitles (extract)", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
