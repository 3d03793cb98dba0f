package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subkit/internal/logging"
	"subkit/internal/media/ffprobe"
	"subkit/internal/services/ffmpeg"
	"subkit/internal/services/subtitleedit"
	"subkit/internal/subtitles"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var workersFlag int

	cmd := &cobra.Command{
		Use:   "extract <directory>",
		Short: "Extract embedded subtitles to SRT for every video in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDirectory(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			lang := strings.TrimSpace(languageFlag)
			if lang == "" {
				lang = cfg.Extract.Language
			}
			workers := workersFlag
			if workers <= 0 {
				workers = cfg.Extract.Workers
			}

			prober := ffprobe.New(cfg.Tools.FFprobe)
			ff, err := ffmpeg.New(cfg.Tools.FFmpeg, ffmpeg.WithOutputSink(func(line string) {
				logger.Debug("ffmpeg output", logging.String("line", line))
			}))
			if err != nil {
				return err
			}
			ocr, err := subtitleedit.New(cfg.Tools.SubtitleEdit)
			if err != nil {
				return err
			}

			extractor := subtitles.NewExtractor(prober, ff, ocr, logger)
			results, err := extractor.ProcessDirectory(cmd.Context(), dir, lang, workers)
			if err != nil {
				return err
			}
			printExtractSummary(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Subtitle track language to extract (ISO 639-2, e.g. eng)")
	cmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Number of videos to process in parallel")
	return cmd
}

func printExtractSummary(cmd *cobra.Command, results []subtitles.Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].VideoPath < results[j].VideoPath
	})

	rows := make([][]string, 0, len(results))
	counts := make(map[subtitles.Status]int, 8)
	for _, r := range results {
		counts[r.Status]++
		trackIdx, lang, codec := "", "", ""
		if r.Track != nil {
			trackIdx = strconv.Itoa(r.Track.Index)
			lang = r.Track.Language
			codec = r.Track.CodecName
		}
		rows = append(rows, []string{
			filepath.Base(r.VideoPath),
			string(r.Status),
			trackIdx,
			lang,
			codec,
			r.Message,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Video", "Status", "Track", "Lang", "Codec", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	))

	ready := counts[subtitles.StatusExtracted] + counts[subtitles.StatusConverted] +
		counts[subtitles.StatusAlreadySRT] + counts[subtitles.StatusSRTExists]
	fmt.Fprintf(out, "\n%d of %d videos have an SRT subtitle", ready, len(results))
	if errs := counts[subtitles.StatusError]; errs > 0 {
		fmt.Fprintf(out, " (%d failed)", errs)
	}
	fmt.Fprintln(out)
}

func resolveDirectory(arg string) (string, error) {
	dir := strings.TrimSpace(arg)
	if dir == "" {
		return "", fmt.Errorf("directory path is required")
	}
	dir, _ = filepath.Abs(dir)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("directory %q not found", dir)
		}
		return "", fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", dir)
	}
	return dir, nil
}
