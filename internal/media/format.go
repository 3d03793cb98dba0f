package media

import (
	"fmt"
	"strconv"
	"strings"
)

const unknown = "Unknown"

// FormatDuration renders a duration-in-seconds string as zero-padded
// HH:MM:SS, or "Unknown" when absent or non-numeric.
func FormatDuration(seconds string) string {
	seconds = strings.TrimSpace(seconds)
	if seconds == "" {
		return unknown
	}
	value, err := strconv.ParseFloat(seconds, 64)
	if err != nil || value < 0 {
		return unknown
	}
	total := int(value)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatBitrate renders a bits-per-second string using decimal thresholds:
// >=1,000,000 as Mbps, >=1,000 as kbps, else bps. Non-numeric input yields
// "Unknown".
func FormatBitrate(bitrate string) string {
	bitrate = strings.TrimSpace(bitrate)
	if bitrate == "" {
		return unknown
	}
	value, err := strconv.ParseInt(bitrate, 10, 64)
	if err != nil {
		return unknown
	}
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%.1f Mbps", float64(value)/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.1f kbps", float64(value)/1_000)
	default:
		return fmt.Sprintf("%d bps", value)
	}
}

// FormatFrameRate computes a frame rate from ffprobe's "num/den" fraction,
// rendered to two decimal places. A zero denominator or absent field yields
// "Unknown".
func FormatFrameRate(fraction string) string {
	fraction = strings.TrimSpace(fraction)
	if fraction == "" || !strings.Contains(fraction, "/") {
		return unknown
	}
	parts := strings.SplitN(fraction, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return unknown
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return unknown
	}
	return fmt.Sprintf("%.2f", num/den)
}

// FormatResolution renders "WIDTHxHEIGHT", or "Unknown" when either
// dimension is missing.
func FormatResolution(width, height int) string {
	if width <= 0 || height <= 0 {
		return unknown
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// FormatSampleRate renders an audio sample rate in Hz.
func FormatSampleRate(rate string) string {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return unknown
	}
	if _, err := strconv.Atoi(rate); err != nil {
		return unknown
	}
	return rate + " Hz"
}
