package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"subkit/internal/logging"
	"subkit/internal/media"
	"subkit/internal/media/ffprobe"
	"subkit/internal/services"
	"subkit/internal/services/ffmpeg"
	"subkit/internal/services/subtitleedit"
	"subkit/internal/workers"
)

// Status classifies the outcome of one video's extraction pipeline.
type Status string

const (
	StatusNoTracks         Status = "no_tracks"
	StatusNoLangTrack      Status = "no_lang_track"
	StatusSRTExists        Status = "srt_exists"
	StatusAlreadyExtracted Status = "already_extracted"
	StatusExtracted        Status = "extracted"
	StatusConverted        Status = "converted"
	StatusAlreadySRT       Status = "already_srt"
	StatusError            Status = "error"
)

// Result is the per-video processing record collected for the end-of-run
// summary. Never persisted.
type Result struct {
	VideoPath    string
	Track        *media.Track
	Status       Status
	Message      string
	OriginalPath string
	SRTPath      string
}

// codecExtensions maps ffprobe subtitle codec names to file extensions.
// Unrecognized codecs fall back to ".srt".
var codecExtensions = map[string]string{
	"subrip":           ".srt",
	"srt":              ".srt",
	"ass":              ".ass",
	"ssa":              ".ssa",
	"microdvd":         ".sub",
	"mpl2":             ".mpl",
	"tmp":              ".txt",
	"vtt":              ".vtt",
	"webvtt":           ".vtt",
	"hdmv_pgs_subtitle": ".sup",
	"dvd_subtitle":      ".sub",
}

// CodecExtension returns the file extension for a subtitle codec name.
func CodecExtension(codecName string) string {
	if ext, ok := codecExtensions[strings.ToLower(strings.TrimSpace(codecName))]; ok {
		return ext
	}
	return ".srt"
}

// Extractor materializes SRT subtitles from video containers: demux via
// ffmpeg, OCR of image-based formats via Subtitle Edit.
type Extractor struct {
	prober *ffprobe.Prober
	ffmpeg *ffmpeg.Client
	ocr    *subtitleedit.Client
	logger *slog.Logger
}

// NewExtractor wires the extraction pipeline.
func NewExtractor(prober *ffprobe.Prober, ff *ffmpeg.Client, ocr *subtitleedit.Client, logger *slog.Logger) *Extractor {
	return &Extractor{
		prober: prober,
		ffmpeg: ff,
		ocr:    ocr,
		logger: logging.WithComponent(logger, "extractor"),
	}
}

// SelectTrack returns the first subtitle track whose language tag exactly
// equals the requested language. Comparison is case-sensitive; container
// language tags are expected in ISO 639-2 form.
func SelectTrack(tracks []media.Track, language string) (media.Track, bool) {
	for _, track := range tracks {
		if track.Language == language {
			return track, true
		}
	}
	return media.Track{}, false
}

// Process runs the extraction pipeline for one video and one target
// language. Failures are folded into the returned Result; Process never
// aborts a batch.
func (e *Extractor) Process(ctx context.Context, videoPath, language string) Result {
	result := Result{VideoPath: videoPath}

	probe, err := e.prober.InspectSubtitles(ctx, videoPath)
	if err != nil {
		e.logger.Error("probe failed", logging.String("video", videoPath), logging.Error(err))
		result.Status = StatusError
		result.Message = err.Error()
		return result
	}
	tracks := media.SubtitleTracks(media.Tracks(probe.Streams))
	if len(tracks) == 0 {
		result.Status = StatusNoTracks
		result.Message = "no subtitle tracks found"
		return result
	}

	track, ok := SelectTrack(tracks, language)
	if !ok {
		result.Status = StatusNoLangTrack
		result.Message = fmt.Sprintf("no track for language %s", language)
		return result
	}
	result.Track = &track
	e.logger.Info("track selected",
		logging.String("video", filepath.Base(videoPath)),
		logging.Int("index", track.Index),
		logging.String("codec", track.CodecName),
		logging.String("language", track.Language),
	)

	extension := CodecExtension(track.CodecName)
	dir := filepath.Dir(videoPath)
	stem := Stem(videoPath)
	result.OriginalPath = filepath.Join(dir, fmt.Sprintf("%s.%s%s", stem, track.Language, extension))
	result.SRTPath = filepath.Join(dir, fmt.Sprintf("%s.%s.srt", stem, track.Language))

	if _, err := os.Stat(result.SRTPath); err == nil {
		result.Status = StatusSRTExists
		result.Message = fmt.Sprintf("SRT exists: %s", result.SRTPath)
		return result
	}

	if _, err := os.Stat(result.OriginalPath); err == nil {
		result.Status = StatusAlreadyExtracted
		result.Message = fmt.Sprintf("subtitle file exists: %s", result.OriginalPath)
	} else {
		if err := e.ffmpeg.ExtractSubtitle(ctx, videoPath, track.TypePosition, result.OriginalPath); err != nil {
			e.logger.Error("extraction failed", logging.String("video", videoPath), logging.Error(err))
			result.Status = StatusError
			if code, ok := services.ExitCode(err); ok {
				result.Message = fmt.Sprintf("extraction failed with exit code %d", code)
			} else {
				result.Message = fmt.Sprintf("extraction failed: %v", err)
			}
			return result
		}
		result.Status = StatusExtracted
		result.Message = fmt.Sprintf("extracted to %s", result.OriginalPath)
	}

	if strings.EqualFold(track.CodecName, "subrip") {
		result.Status = StatusAlreadySRT
		result.Message = fmt.Sprintf("already SRT: %s", result.OriginalPath)
		return result
	}

	if err := e.convert(ctx, result.OriginalPath, result.SRTPath); err != nil {
		e.logger.Error("conversion failed", logging.String("video", videoPath), logging.Error(err))
		result.Status = StatusError
		result.Message = fmt.Sprintf("conversion failed: %v", err)
		return result
	}
	result.Status = StatusConverted
	result.Message = fmt.Sprintf("converted to SRT: %s", result.SRTPath)
	return result
}

// convert turns the extracted subtitle into SRT. PGS goes through the OCR
// tool, which writes the SRT itself; everything else is an ffmpeg re-encode.
func (e *Extractor) convert(ctx context.Context, inputPath, outputPath string) error {
	if strings.EqualFold(filepath.Ext(inputPath), ".sup") {
		e.logger.Info("image-based subtitle, using OCR conversion", logging.String("input", inputPath))
		return e.ocr.ConvertToSRT(ctx, inputPath, outputPath)
	}
	return e.ffmpeg.ConvertToSRT(ctx, inputPath, outputPath)
}

// ProcessDirectory runs the pipeline for every video in dir through a
// bounded worker pool. All tasks run to completion; per-video failures are
// collected into results, never raised. Result order is not guaranteed.
func (e *Extractor) ProcessDirectory(ctx context.Context, dir, language string, poolSize int) ([]Result, error) {
	videos, err := media.ScanVideos(dir)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, services.Wrap(services.ErrMissingInput, "", "extract", fmt.Sprintf("no video files in %s", dir), nil)
	}
	e.logger.Info("processing videos",
		logging.Int("count", len(videos)),
		logging.String("language", language),
		logging.Int("workers", poolSize),
	)
	results := workers.Map(ctx, poolSize, videos, func(ctx context.Context, video string) Result {
		return e.Process(ctx, video, language)
	})
	return results, nil
}
