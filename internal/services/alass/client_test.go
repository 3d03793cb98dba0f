package alass

import (
	"context"
	"testing"
)

type recordingRunner struct {
	err   error
	calls [][]string
}

func (r *recordingRunner) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	r.calls = append(r.calls, append([]string{binary}, args...))
	return r.err
}

func (r *recordingRunner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	return nil, r.err
}

func assertArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args %v, want %v", got, want)
		}
	}
}

func TestAlignToVideoWithoutIndex(t *testing.T) {
	runner := &recordingRunner{}
	client, _ := New("alass-cli", WithRunner(runner))
	if err := client.AlignToVideo(context.Background(), "movie.mkv", "movie.eng.srt", "movie.eng.temp.srt", -1); err != nil {
		t.Fatalf("AlignToVideo: %v", err)
	}
	assertArgs(t, runner.calls[0], []string{"alass-cli", "movie.mkv", "movie.eng.srt", "movie.eng.temp.srt"})
}

func TestAlignToVideoWithIndex(t *testing.T) {
	runner := &recordingRunner{}
	client, _ := New("alass-cli", WithRunner(runner))
	if err := client.AlignToVideo(context.Background(), "movie.mkv", "movie.eng.srt", "out.srt", 2); err != nil {
		t.Fatalf("AlignToVideo: %v", err)
	}
	assertArgs(t, runner.calls[0], []string{"alass-cli", "--index", "2", "movie.mkv", "movie.eng.srt", "out.srt"})
}

func TestAlignToReference(t *testing.T) {
	runner := &recordingRunner{}
	client, _ := New("alass-cli", WithRunner(runner))
	if err := client.AlignToReference(context.Background(), "movie.eng.srt", "movie.spa.srt", "out.srt"); err != nil {
		t.Fatalf("AlignToReference: %v", err)
	}
	assertArgs(t, runner.calls[0], []string{"alass-cli", "movie.eng.srt", "movie.spa.srt", "out.srt"})
}
