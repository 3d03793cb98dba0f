package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"subkit/internal/language"
	"subkit/internal/media"
	"subkit/internal/media/ffprobe"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:   "tracks <video>",
		Short: "Show container and stream information for a video file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := fileFlag
			if len(args) == 1 {
				arg = args[0]
			}
			path, err := resolveVideoPath(arg)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			prober := ffprobe.New(cfg.Tools.FFprobe)
			result, err := prober.Inspect(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printGeneralInfo(out, path, result)

			classified := media.Classify(result.Streams)
			if len(classified.Video) > 0 {
				fmt.Fprintf(out, "\nVideo streams:\n%s\n", renderVideoTable(classified.Video))
			}
			if len(classified.Audio) > 0 {
				fmt.Fprintf(out, "\nAudio streams:\n%s\n", renderAudioTable(classified.Audio))
			}
			subs := media.SubtitleTracks(media.Tracks(result.Streams))
			if len(subs) > 0 {
				fmt.Fprintf(out, "\nSubtitle streams:\n%s\n", renderSubtitleTable(subs))
			} else {
				fmt.Fprintln(out, "\nNo subtitle streams.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Video file to inspect (alternative to the positional argument)")
	return cmd
}

func resolveVideoPath(arg string) (string, error) {
	path := strings.TrimSpace(arg)
	if path == "" {
		return "", fmt.Errorf("video file path is required")
	}
	path, _ = filepath.Abs(path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("video file %q not found", path)
		}
		return "", fmt.Errorf("stat video: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path %q is a directory", path)
	}
	return path, nil
}

func printGeneralInfo(out io.Writer, path string, result ffprobe.Result) {
	fmt.Fprintf(out, "File:      %s\n", filepath.Base(path))
	fmt.Fprintf(out, "Container: %s\n", orUnknown(result.Format.FormatName))
	fmt.Fprintf(out, "Duration:  %s\n", media.FormatDuration(result.Format.Duration))
	fmt.Fprintf(out, "Size:      %s\n", formatSize(result.Format.Size))
	fmt.Fprintf(out, "Bitrate:   %s\n", media.FormatBitrate(result.Format.BitRate))
	fmt.Fprintf(out, "Streams:   %d\n", result.Format.NBStreams)
}

func formatSize(size string) string {
	value, err := strconv.ParseUint(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return "Unknown"
	}
	return humanize.Bytes(value)
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Unknown"
	}
	return value
}

func renderVideoTable(streams []ffprobe.Stream) string {
	rows := make([][]string, 0, len(streams))
	for _, stream := range streams {
		rows = append(rows, []string{
			strconv.Itoa(stream.Index),
			stream.CodecName,
			media.FormatResolution(stream.Width, stream.Height),
			media.FormatFrameRate(stream.RFrameRate),
			media.FormatBitrate(stream.BitRate),
			language.DisplayName(stream.Language()),
			stream.Title(),
		})
	}
	return renderTable(
		[]string{"#", "Codec", "Resolution", "FPS", "Bitrate", "Language", "Title"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func renderAudioTable(streams []ffprobe.Stream) string {
	rows := make([][]string, 0, len(streams))
	for _, stream := range streams {
		rows = append(rows, []string{
			strconv.Itoa(stream.Index),
			stream.CodecName,
			strconv.Itoa(stream.Channels),
			media.FormatSampleRate(stream.SampleRate),
			media.FormatBitrate(stream.BitRate),
			language.DisplayName(stream.Language()),
			stream.Title(),
		})
	}
	return renderTable(
		[]string{"#", "Codec", "Channels", "Sample Rate", "Bitrate", "Language", "Title"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func renderSubtitleTable(tracks []media.Track) string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(track.Index),
			track.CodecName,
			track.Language,
			language.DisplayName(track.Language),
			track.Title,
			track.Flags(),
		})
	}
	return renderTable(
		[]string{"#", "Codec", "Tag", "Language", "Title", "Flags"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
