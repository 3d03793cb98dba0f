// Package ffprobe wraps the ffprobe CLI, decoding its JSON stream and format
// reports into typed records.
package ffprobe
