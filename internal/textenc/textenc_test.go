package textenc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestRewriteUTF8FromLatin1(t *testing.T) {
	original := "1\n00:00:01,000 --> 00:00:02,000\nCâmara, ação!\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(original))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "movie.por.srt")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := RewriteUTF8(path); err != nil {
		t.Fatalf("RewriteUTF8: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != original {
		t.Fatalf("got %q, want %q", got, original)
	}
}

func TestRewriteUTF8FromUTF16(t *testing.T) {
	original := "1\n00:00:01,000 --> 00:00:02,000\nHello there\n"
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(original))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "movie.eng.srt")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := RewriteUTF8(path); err != nil {
		t.Fatalf("RewriteUTF8: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Contains(got, []byte("Hello there")) {
		t.Fatalf("utf-16 content lost: %q", got)
	}
}

func TestRewriteUTF8KeepsUTF8(t *testing.T) {
	original := "1\n00:00:01,000 --> 00:00:02,000\nplain ascii line\n"
	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := RewriteUTF8(path); err != nil {
		t.Fatalf("RewriteUTF8: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != original {
		t.Fatalf("ascii content changed: %q", got)
	}
}

func TestRewriteUTF8MissingFile(t *testing.T) {
	if err := RewriteUTF8(filepath.Join(t.TempDir(), "absent.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeUnsupportedCharset(t *testing.T) {
	if _, err := DecodeAsUTF8([]byte("x"), "definitely-not-a-charset"); err == nil {
		t.Fatal("expected error for unsupported charset")
	}
}
