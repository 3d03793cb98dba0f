package subtitles

import (
	"path/filepath"
	"strings"
)

// Stem returns the base filename without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MatchesVideo reports whether a subtitle stem belongs to a video stem: the
// stems are equal, or the subtitle stem carries an additional dot-separated
// suffix (conventionally a language code). Anchoring on the full stem plus a
// dot keeps "Show.S01E010" from matching "Show.S01E01".
func MatchesVideo(videoStem, subtitleStem string) bool {
	if subtitleStem == videoStem {
		return true
	}
	return strings.HasPrefix(subtitleStem, videoStem+".")
}

// LanguageSuffix interprets the final dot-separated segment of a stem as a
// language tag. A stem with a single segment has no suffix.
func LanguageSuffix(stem string) string {
	parts := strings.Split(stem, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}

// Candidates filters subtitlePaths down to those matching videoPath's stem,
// preserving input order.
func Candidates(videoPath string, subtitlePaths []string) []string {
	videoStem := Stem(videoPath)
	var matched []string
	for _, sub := range subtitlePaths {
		if MatchesVideo(videoStem, Stem(sub)) {
			matched = append(matched, sub)
		}
	}
	return matched
}

// SelectLanguage returns the first candidate whose language suffix equals
// lang, compared case-insensitively.
func SelectLanguage(candidates []string, lang string) (string, bool) {
	if strings.TrimSpace(lang) == "" {
		return "", false
	}
	for _, candidate := range candidates {
		suffix := LanguageSuffix(Stem(candidate))
		if suffix != "" && strings.EqualFold(suffix, lang) {
			return candidate, true
		}
	}
	return "", false
}
