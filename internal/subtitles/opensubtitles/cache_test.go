package opensubtitles

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "fetch-cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheSearchRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	key := SearchKey("Show S01E01", []string{"pt-br"})
	if _, found, err := cache.GetSearch(ctx, key); err != nil || found {
		t.Fatalf("fresh cache: found=%v err=%v", found, err)
	}

	hits := []Subtitle{{ID: "100", Language: "pt-br", FileID: 42, FileName: "show.srt", DownloadCount: 5000}}
	if err := cache.PutSearch(ctx, key, hits); err != nil {
		t.Fatal(err)
	}

	got, found, err := cache.GetSearch(ctx, key)
	if err != nil || !found {
		t.Fatalf("after put: found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0].FileID != 42 {
		t.Fatalf("got %+v", got)
	}

	// Drop the LRU entry to force a database read.
	cache.searches.Remove(key)
	got, found, err = cache.GetSearch(ctx, key)
	if err != nil || !found {
		t.Fatalf("database read: found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0].ID != "100" {
		t.Fatalf("database read got %+v", got)
	}
}

func TestCacheStoresEmptySearchResults(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	key := SearchKey("Nothing Here", []string{"eng"})
	if err := cache.PutSearch(ctx, key, nil); err != nil {
		t.Fatal(err)
	}
	got, found, err := cache.GetSearch(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("empty result sets must still be cache hits")
	}
	if len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestCacheDownloadRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	if _, found, err := cache.GetDownload(ctx, 42); err != nil || found {
		t.Fatalf("fresh cache: found=%v err=%v", found, err)
	}
	body := []byte("1\n00:00:01,000 --> 00:00:02,000\nola\n")
	if err := cache.PutDownload(ctx, 42, body); err != nil {
		t.Fatal(err)
	}
	got, found, err := cache.GetDownload(ctx, 42)
	if err != nil || !found {
		t.Fatalf("after put: found=%v err=%v", found, err)
	}
	if string(got) != string(body) {
		t.Fatalf("got %q", got)
	}
}

func TestOpenCacheRejectsConcurrentUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch-cache.db")
	first, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	if _, err := OpenCache(path); err == nil {
		t.Fatal("second open must fail while the lock is held")
	}
}

func TestCacheReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch-cache.db")
	first, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	key := SearchKey("Show", []string{"eng"})
	if err := first.PutSearch(context.Background(), key, []Subtitle{{ID: "1", FileID: 7}}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	got, found, err := second.GetSearch(context.Background(), key)
	if err != nil || !found {
		t.Fatalf("reopen: found=%v err=%v", found, err)
	}
	if got[0].FileID != 7 {
		t.Fatalf("got %+v", got)
	}
}
