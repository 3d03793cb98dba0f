package subtitles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subkit/internal/logging"
	"subkit/internal/services/alass"
)

func newTestSyncer(t *testing.T, runner *scriptRunner) *Syncer {
	t.Helper()
	aligner, err := alass.New("alass-cli", alass.WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}
	return NewSyncer(aligner, "old-subtitles", logging.NewNop())
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("1\n00:00:01,000 --> 00:00:02,000\nhello\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// alignOutput mimics alass writing its corrected subtitle to the last arg.
func alignOutput(binary string, args []string) error {
	return os.WriteFile(args[len(args)-1], []byte("1\n00:00:01,500 --> 00:00:02,500\nhello\n"), 0o644)
}

func TestSyncAlignsAgainstVideo(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E01.spa.srt")

	runner := &scriptRunner{onRun: alignOutput}
	syncer := newTestSyncer(t, runner)

	err := syncer.ProcessDirectory(context.Background(), SyncRequest{
		Dir:               dir,
		TargetLanguage:    "spa",
		ReferenceLanguage: "eng",
		AudioIndex:        2,
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := runner.calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v", calls)
	}
	call := calls[0]
	want := []string{
		"alass-cli",
		"--index", "2",
		filepath.Join(dir, "Show.S01E01.mkv"),
		filepath.Join(dir, "Show.S01E01.spa.srt"),
		filepath.Join(dir, "Show.S01E01.spa.temp.srt"),
	}
	if len(call) != len(want) {
		t.Fatalf("call = %v, want %v", call, want)
	}
	for i := range want {
		if call[i] != want[i] {
			t.Fatalf("call = %v, want %v", call, want)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "old-subtitles", "Show.S01E01.spa.srt")); err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Show.S01E01.spa.temp.srt")); !os.IsNotExist(err) {
		t.Fatal("temp output should have been renamed away")
	}
	data, err := os.ReadFile(filepath.Join(dir, "Show.S01E01.spa.srt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1\n00:00:01,500 --> 00:00:02,500\nhello\n" {
		t.Fatalf("subtitle not replaced with aligned output: %q", data)
	}
}

func TestSyncPrefersReferenceSubtitle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E01.spa.srt", "Show.S01E01.eng.srt")

	runner := &scriptRunner{onRun: alignOutput}
	syncer := newTestSyncer(t, runner)

	err := syncer.ProcessDirectory(context.Background(), SyncRequest{
		Dir:               dir,
		TargetLanguage:    "spa",
		ReferenceLanguage: "eng",
		AudioIndex:        -1,
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := runner.calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v", calls)
	}
	call := calls[0]
	// Text-to-text alignment: reference subtitle, target subtitle, output.
	if len(call) != 4 {
		t.Fatalf("call = %v", call)
	}
	if call[1] != filepath.Join(dir, "Show.S01E01.eng.srt") {
		t.Fatalf("reference = %s", call[1])
	}
	if call[2] != filepath.Join(dir, "Show.S01E01.spa.srt") {
		t.Fatalf("target = %s", call[2])
	}
}

func TestSyncFallsBackToFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E01.srt")

	runner := &scriptRunner{onRun: alignOutput}
	syncer := newTestSyncer(t, runner)

	err := syncer.ProcessDirectory(context.Background(), SyncRequest{
		Dir:               dir,
		TargetLanguage:    "spa",
		ReferenceLanguage: "eng",
		AudioIndex:        -1,
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := runner.calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v", calls)
	}
	// No --index with a negative audio index.
	if calls[0][1] != filepath.Join(dir, "Show.S01E01.mkv") {
		t.Fatalf("call = %v", calls[0])
	}
}

func TestSyncFailureKeepsOriginalAndRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E01.spa.srt")

	runner := &scriptRunner{onRun: func(binary string, args []string) error {
		if err := alignOutput(binary, args); err != nil {
			return err
		}
		return errors.New("alignment diverged")
	}}
	syncer := newTestSyncer(t, runner)

	err := syncer.ProcessDirectory(context.Background(), SyncRequest{
		Dir:               dir,
		TargetLanguage:    "spa",
		ReferenceLanguage: "eng",
		AudioIndex:        -1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "Show.S01E01.spa.srt")); err != nil {
		t.Fatalf("original must survive a failed alignment: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Show.S01E01.spa.temp.srt")); !os.IsNotExist(err) {
		t.Fatal("temp output must be removed on failure")
	}
	if _, err := os.Stat(filepath.Join(dir, "old-subtitles", "Show.S01E01.spa.srt")); !os.IsNotExist(err) {
		t.Fatal("no backup should exist for a failed alignment")
	}
}

func TestSyncSkipsVideosWithoutSubtitles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Show.S01E01.mkv", "Other.S01E02.spa.srt")

	runner := &scriptRunner{}
	syncer := newTestSyncer(t, runner)

	err := syncer.ProcessDirectory(context.Background(), SyncRequest{
		Dir:               dir,
		TargetLanguage:    "spa",
		ReferenceLanguage: "eng",
		AudioIndex:        -1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.calls()) != 0 {
		t.Fatalf("nothing should be aligned, got %v", runner.calls())
	}
}
