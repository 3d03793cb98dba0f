package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"subkit/internal/language"
	"subkit/internal/logging"
	"subkit/internal/media"
	"subkit/internal/subtitles/opensubtitles"
	"subkit/internal/textenc"
)

// FetchStatus classifies the outcome of one video's download attempt.
type FetchStatus string

const (
	FetchSkipped    FetchStatus = "skipped"
	FetchNotFound   FetchStatus = "not_found"
	FetchDownloaded FetchStatus = "downloaded"
	FetchFailed     FetchStatus = "failed"
)

// FetchResult is the per-video record collected for the end-of-run summary.
type FetchResult struct {
	VideoPath    string
	Status       FetchStatus
	Message      string
	SubtitlePath string
	Release      string
}

// Fetcher downloads missing subtitles from OpenSubtitles, going through the
// persistent cache so re-runs over the same library cost no API quota.
type Fetcher struct {
	client *opensubtitles.Client
	cache  *opensubtitles.Cache
	logger *slog.Logger
}

// NewFetcher wires the download workflow. A nil cache disables caching.
func NewFetcher(client *opensubtitles.Client, cache *opensubtitles.Cache, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  cache,
		logger: logging.WithComponent(logger, "fetcher"),
	}
}

// ProcessDirectory fetches a subtitle in the requested language for every
// video in dir that does not already have one. langCode accepts ISO 639-1 or
// 639-2 codes with an optional country ("por-BR"). Per-video failures are
// folded into results; only scan and language errors abort the run.
func (f *Fetcher) ProcessDirectory(ctx context.Context, dir, langCode string) ([]FetchResult, error) {
	tag, err := language.ParseTag(langCode)
	if err != nil {
		return nil, err
	}

	videos, err := media.ScanVideos(dir)
	if err != nil {
		return nil, err
	}
	subtitlePaths, err := media.ScanSubtitles(dir)
	if err != nil {
		return nil, err
	}
	f.logger.Info("scanned directory",
		logging.Int("videos", len(videos)),
		logging.Int("subtitles", len(subtitlePaths)),
		logging.String("language", tag),
	)

	results := make([]FetchResult, 0, len(videos))
	for _, video := range videos {
		results = append(results, f.processOne(ctx, video, subtitlePaths, tag))
		if ctx.Err() != nil {
			break
		}
	}
	return results, nil
}

func (f *Fetcher) processOne(ctx context.Context, video string, subtitlePaths []string, tag string) FetchResult {
	result := FetchResult{VideoPath: video}
	name := filepath.Base(video)

	candidates := Candidates(video, subtitlePaths)
	if existing, ok := SelectLanguage(candidates, tag); ok {
		result.Status = FetchSkipped
		result.Message = fmt.Sprintf("subtitle exists: %s", existing)
		result.SubtitlePath = existing
		return result
	}

	stem := Stem(video)
	hits, err := f.search(ctx, stem, tag)
	if err != nil {
		f.logger.Error("search failed", logging.String("video", name), logging.Error(err))
		result.Status = FetchFailed
		result.Message = err.Error()
		return result
	}
	if len(hits) == 0 {
		f.logger.Info("no subtitles found", logging.String("video", name), logging.String("language", tag))
		result.Status = FetchNotFound
		result.Message = fmt.Sprintf("no %s subtitles for %s", tag, stem)
		return result
	}

	best := hits[0]
	result.Release = best.Release
	f.logger.Info("subtitle selected",
		logging.String("video", name),
		logging.String("release", best.Release),
		logging.Int("downloads", best.DownloadCount),
	)

	body, err := f.download(ctx, best.FileID)
	if err != nil {
		f.logger.Error("download failed", logging.String("video", name), logging.Error(err))
		result.Status = FetchFailed
		result.Message = err.Error()
		return result
	}

	if charset, detectErr := textenc.DetectCharset(body); detectErr == nil {
		if decoded, decodeErr := textenc.DecodeAsUTF8(body, charset); decodeErr == nil {
			body = decoded
		}
	}

	result.SubtitlePath = filepath.Join(filepath.Dir(video), fmt.Sprintf("%s.%s.srt", stem, tag))
	if err := os.WriteFile(result.SubtitlePath, body, 0o644); err != nil {
		result.Status = FetchFailed
		result.Message = fmt.Sprintf("write subtitle: %v", err)
		return result
	}
	result.Status = FetchDownloaded
	result.Message = fmt.Sprintf("downloaded to %s", result.SubtitlePath)
	f.logger.Info("subtitle written", logging.String("path", result.SubtitlePath))
	return result
}

// search consults the cache before the API. Results, including empty ones,
// are cached; a cache write failure is logged but never fails the fetch.
func (f *Fetcher) search(ctx context.Context, query, tag string) ([]opensubtitles.Subtitle, error) {
	key := opensubtitles.SearchKey(query, []string{tag})
	if f.cache != nil {
		hits, found, err := f.cache.GetSearch(ctx, key)
		if err != nil {
			f.logger.Warn("cache read failed", logging.Error(err))
		} else if found {
			return hits, nil
		}
	}
	hits, err := f.client.Search(ctx, opensubtitles.SearchRequest{Query: query, Languages: []string{tag}})
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		if err := f.cache.PutSearch(ctx, key, hits); err != nil {
			f.logger.Warn("cache write failed", logging.Error(err))
		}
	}
	return hits, nil
}

func (f *Fetcher) download(ctx context.Context, fileID int64) ([]byte, error) {
	if f.cache != nil {
		body, found, err := f.cache.GetDownload(ctx, fileID)
		if err != nil {
			f.logger.Warn("cache read failed", logging.Error(err))
		} else if found {
			return body, nil
		}
	}
	body, err := f.client.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		if err := f.cache.PutDownload(ctx, fileID, body); err != nil {
			f.logger.Warn("cache write failed", logging.Error(err))
		}
	}
	return body, nil
}
