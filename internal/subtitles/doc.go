// Package subtitles implements the subtitle workflows: extracting embedded
// tracks to SRT, fetching missing subtitles from OpenSubtitles, and aligning
// subtitle timing with alass. File naming follows the `<video stem>.<lang>`
// convention throughout.
package subtitles
