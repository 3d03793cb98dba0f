package ffprobe

import (
	"context"
	"errors"
	"testing"

	"subkit/internal/services"
)

type stubRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (s *stubRunner) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls = append(s.calls, append([]string{binary}, args...))
	return s.err
}

func (s *stubRunner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.calls = append(s.calls, append([]string{binary}, args...))
	return s.output, s.err
}

func TestInspectDecodesStreamsAndFormat(t *testing.T) {
	payload := `{
		"streams": [
			{"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "24000/1001"},
			{"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 6, "tags": {"language": "eng", "title": "Surround"}},
			{"index": 2, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"lang": "spa"}, "disposition": {"default": 1, "forced": 0}}
		],
		"format": {"format_name": "matroska,webm", "duration": "5400.2", "bit_rate": "12000000", "nb_streams": 3}
	}`
	runner := &stubRunner{output: []byte(payload)}
	prober := New("", WithRunner(runner))

	result, err := prober.Inspect(context.Background(), "movie.mkv")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(result.Streams) != 3 {
		t.Fatalf("expected 3 streams, got %d", len(result.Streams))
	}
	if result.Format.FormatName != "matroska,webm" {
		t.Fatalf("unexpected format: %+v", result.Format)
	}
	if lang := result.Streams[1].Language(); lang != "eng" {
		t.Fatalf("audio language: %q", lang)
	}
	// "lang" is an accepted alternate tag key.
	if lang := result.Streams[2].Language(); lang != "spa" {
		t.Fatalf("subtitle language: %q", lang)
	}
	if result.Streams[2].Disposition.Default != 1 {
		t.Fatalf("disposition lost: %+v", result.Streams[2].Disposition)
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != "ffprobe" {
		t.Fatalf("unexpected invocation: %v", runner.calls)
	}
}

func TestLanguageDefaultsToUnknown(t *testing.T) {
	s := Stream{}
	if got := s.Language(); got != "unknown" {
		t.Fatalf("Language() = %q", got)
	}
}

func TestTitleFallsBackToHandlerName(t *testing.T) {
	s := Stream{Tags: map[string]string{"handler_name": "SoundHandler"}}
	if got := s.Title(); got != "SoundHandler" {
		t.Fatalf("Title() = %q", got)
	}
}

func TestInspectMalformedJSON(t *testing.T) {
	prober := New("ffprobe", WithRunner(&stubRunner{output: []byte("{not json")}))
	_, err := prober.Inspect(context.Background(), "movie.mkv")
	if !errors.Is(err, services.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestInspectPropagatesToolFailure(t *testing.T) {
	toolErr := services.Wrap(services.ErrToolFailed, "ffprobe", "", "boom", nil)
	prober := New("ffprobe", WithRunner(&stubRunner{err: toolErr}))
	_, err := prober.Inspect(context.Background(), "movie.mkv")
	if !errors.Is(err, services.ErrToolFailed) {
		t.Fatalf("expected ErrToolFailed, got %v", err)
	}
}

func TestInspectSubtitlesSelectsSubtitleStreams(t *testing.T) {
	runner := &stubRunner{output: []byte(`{"streams": []}`)}
	prober := New("ffprobe", WithRunner(runner))
	if _, err := prober.InspectSubtitles(context.Background(), "movie.mkv"); err != nil {
		t.Fatalf("InspectSubtitles: %v", err)
	}
	args := runner.calls[0]
	found := false
	for i, arg := range args {
		if arg == "-select_streams" && i+1 < len(args) && args[i+1] == "s" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing -select_streams s in %v", args)
	}
}

func TestInspectEmptyPath(t *testing.T) {
	prober := New("ffprobe", WithRunner(&stubRunner{}))
	if _, err := prober.Inspect(context.Background(), "  "); !errors.Is(err, services.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}
