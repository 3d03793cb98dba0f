package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subkit/internal/services"
)

var videoExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".avi":  {},
	".mov":  {},
	".wmv":  {},
	".ts":   {},
	".webm": {},
}

var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".sub": {},
	".ssa": {},
	".ass": {},
	".txt": {},
	".vtt": {},
}

// IsVideo reports whether the path has a recognized video extension.
func IsVideo(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsSubtitle reports whether the path has a recognized subtitle extension.
func IsSubtitle(path string) bool {
	_, ok := subtitleExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ScanVideos lists video files directly inside dir in name order, excluding
// any whose filename contains "sample" (case-insensitive).
func ScanVideos(dir string) ([]string, error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}
	var videos []string
	for _, name := range entries {
		if !IsVideo(name) {
			continue
		}
		if strings.Contains(strings.ToLower(name), "sample") {
			continue
		}
		videos = append(videos, filepath.Join(dir, name))
	}
	return videos, nil
}

// ScanSubtitles lists subtitle files directly inside dir in name order.
func ScanSubtitles(dir string) ([]string, error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}
	var subs []string
	for _, name := range entries {
		if IsSubtitle(name) {
			subs = append(subs, filepath.Join(dir, name))
		}
	}
	return subs, nil
}

func listDir(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrMissingInput, "", "scan", fmt.Sprintf("directory %q does not exist", dir), nil)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrMissingInput, "", "scan", fmt.Sprintf("%q is not a directory", dir), nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
