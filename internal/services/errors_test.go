package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	err := Wrap(ErrToolNotFound, "ffprobe", "inspect", "not on PATH", nil)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffprobe: inspect") {
		t.Fatalf("missing context in %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("expected ErrToolFailed default, got %v", err)
	}
}

func TestExitCodeExtraction(t *testing.T) {
	inner := &ExitCodeError{Tool: "ffmpeg", Code: 187, Err: ErrToolFailed}
	wrapped := Wrap(ErrToolFailed, "ffmpeg", "demux", "", inner)
	code, ok := ExitCode(wrapped)
	if !ok || code != 187 {
		t.Fatalf("expected code 187, got %d ok=%v", code, ok)
	}
	if !errors.Is(wrapped, ErrToolFailed) {
		t.Fatalf("expected ErrToolFailed chain, got %v", wrapped)
	}
	if _, ok := ExitCode(errors.New("plain")); ok {
		t.Fatal("plain error should not expose an exit code")
	}
}
