package media

import "testing"

func TestFormatBitrate(t *testing.T) {
	cases := map[string]string{
		"500":     "500 bps",
		"1500":    "1.5 kbps",
		"2000000": "2.0 Mbps",
		"999":     "999 bps",
		"1000000": "1.0 Mbps",
		"abc":     "Unknown",
		"":        "Unknown",
	}
	for input, want := range cases {
		if got := FormatBitrate(input); got != want {
			t.Errorf("FormatBitrate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[string]string{
		"3725.0": "01:02:05",
		"3725":   "01:02:05",
		"59.9":   "00:00:59",
		"0":      "00:00:00",
		"":       "Unknown",
		"nope":   "Unknown",
	}
	for input, want := range cases {
		if got := FormatDuration(input); got != want {
			t.Errorf("FormatDuration(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatFrameRate(t *testing.T) {
	cases := map[string]string{
		"24000/1001": "23.98",
		"25/1":       "25.00",
		"30/0":       "Unknown",
		"":           "Unknown",
		"24":         "Unknown",
		"a/b":        "Unknown",
	}
	for input, want := range cases {
		if got := FormatFrameRate(input); got != want {
			t.Errorf("FormatFrameRate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatResolution(t *testing.T) {
	if got := FormatResolution(1920, 1080); got != "1920x1080" {
		t.Fatalf("FormatResolution = %q", got)
	}
	if got := FormatResolution(0, 1080); got != "Unknown" {
		t.Fatalf("FormatResolution missing width = %q", got)
	}
}

func TestFormatSampleRate(t *testing.T) {
	if got := FormatSampleRate("48000"); got != "48000 Hz" {
		t.Fatalf("FormatSampleRate = %q", got)
	}
	if got := FormatSampleRate(""); got != "Unknown" {
		t.Fatalf("FormatSampleRate empty = %q", got)
	}
}
