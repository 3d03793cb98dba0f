// Package media derives track records from probe results, formats
// human-readable stream summaries, and scans directories for video and
// subtitle files.
package media
