package subtitleedit

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

func TestConvertToSRTArgs(t *testing.T) {
	runner := &recordingRunner{}
	client, err := New("subtitle-edit", WithRunner(runner))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.ConvertToSRT(context.Background(), "movie.eng.sup", "movie.eng.srt"); err != nil {
		t.Fatalf("ConvertToSRT: %v", err)
	}
	want := []string{"subtitle-edit", "/convert", "movie.eng.sup", "SubRip", "/outputfilename:movie.eng.srt", "/encoding:utf-8"}
	got := runner.calls[0]
	if len(got) != len(want) {
		t.Fatalf("args %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args %v, want %v", got, want)
		}
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
