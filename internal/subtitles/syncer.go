package subtitles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"subkit/internal/logging"
	"subkit/internal/media"
	"subkit/internal/services/alass"
	"subkit/internal/textenc"
)

// SyncRequest describes one directory alignment run.
type SyncRequest struct {
	Dir               string
	TargetLanguage    string
	ReferenceLanguage string
	// AudioIndex pins the audio stream used for audio alignment; negative
	// lets the aligner choose.
	AudioIndex int
}

// Syncer aligns subtitle timing against a video's audio track or against a
// reference-language subtitle, keeping pre-sync backups.
type Syncer struct {
	aligner       *alass.Client
	backupDirName string
	logger        *slog.Logger
}

// NewSyncer wires the synchronization workflow.
func NewSyncer(aligner *alass.Client, backupDirName string, logger *slog.Logger) *Syncer {
	if backupDirName == "" {
		backupDirName = "old-subtitles"
	}
	return &Syncer{
		aligner:       aligner,
		backupDirName: backupDirName,
		logger:        logging.WithComponent(logger, "syncer"),
	}
}

// ProcessDirectory synchronizes subtitles for every video in the directory.
// Per-video failures are logged and skipped; the loop always continues.
func (s *Syncer) ProcessDirectory(ctx context.Context, req SyncRequest) error {
	videos, err := media.ScanVideos(req.Dir)
	if err != nil {
		return err
	}
	subtitlePaths, err := media.ScanSubtitles(req.Dir)
	if err != nil {
		return err
	}
	s.logger.Info("scanned directory",
		logging.Int("videos", len(videos)),
		logging.Int("subtitles", len(subtitlePaths)),
	)

	backupDir := filepath.Join(req.Dir, s.backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	for _, video := range videos {
		candidates := Candidates(video, subtitlePaths)
		if len(candidates) == 0 {
			s.logger.Info("no matching subtitle", logging.String("video", filepath.Base(video)))
			continue
		}

		target, targetFound := SelectLanguage(candidates, req.TargetLanguage)
		reference, referenceFound := SelectLanguage(candidates, req.ReferenceLanguage)

		if targetFound && referenceFound {
			s.logger.Info("reference subtitle found",
				logging.String("video", filepath.Base(video)),
				logging.String("reference", filepath.Base(reference)),
			)
			s.syncOne(ctx, target, func(ctx context.Context, out string) error {
				return s.aligner.AlignToReference(ctx, reference, target, out)
			})
			continue
		}

		if !targetFound {
			target = candidates[0]
		}
		s.syncOne(ctx, target, func(ctx context.Context, out string) error {
			return s.aligner.AlignToVideo(ctx, video, target, out, req.AudioIndex)
		})
	}
	return nil
}

// syncOne rewrites the subtitle as UTF-8, runs the alignment into a temp
// path, then swaps: original into the backup directory, aligned output onto
// the original path. On alignment failure the temp output is removed.
func (s *Syncer) syncOne(ctx context.Context, subtitlePath string, align func(context.Context, string) error) {
	name := filepath.Base(subtitlePath)
	s.logger.Info("synchronizing", logging.String("subtitle", name))

	if err := textenc.RewriteUTF8(subtitlePath); err != nil {
		s.logger.Error("utf-8 rewrite failed", logging.String("subtitle", name), logging.Error(err))
		return
	}

	ext := filepath.Ext(subtitlePath)
	tempPath := subtitlePath[:len(subtitlePath)-len(ext)] + ".temp" + ext

	if err := align(ctx, tempPath); err != nil {
		s.logger.Error("alignment failed", logging.String("subtitle", name), logging.Error(err))
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Warn("temp output not removed", logging.String("path", tempPath), logging.Error(removeErr))
		}
		return
	}
	s.logger.Info("aligned subtitle written", logging.String("path", tempPath))

	backupPath := filepath.Join(filepath.Dir(subtitlePath), s.backupDirName, name)
	if err := moveFile(subtitlePath, backupPath); err != nil {
		s.logger.Error("backup move failed", logging.String("subtitle", name), logging.Error(err))
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Warn("temp output not removed", logging.String("path", tempPath), logging.Error(removeErr))
		}
		return
	}
	if err := moveFile(tempPath, subtitlePath); err != nil {
		s.logger.Error("replace failed", logging.String("subtitle", name), logging.Error(err))
		return
	}
	s.logger.Info("synchronized", logging.String("subtitle", name))
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return os.Remove(src)
}
