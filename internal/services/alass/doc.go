// Package alass invokes the alass CLI to time-align subtitles against a
// video's audio track or a reference subtitle.
package alass
