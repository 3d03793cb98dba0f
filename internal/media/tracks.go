package media

import (
	"strings"

	"subkit/internal/media/ffprobe"
)

// Codec type values as reported by ffprobe.
const (
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeSubtitle = "subtitle"
)

// Track is the per-stream record derived once from a probe and discarded
// after use. TypePosition is the 0-based rank among streams sharing the same
// codec type; ffmpeg addresses subtitle streams as 0:s:<TypePosition>, not by
// the global Index.
type Track struct {
	Index        int
	TypePosition int
	CodecName    string
	CodecType    string
	Language     string
	Title        string
	Default      bool
	Forced       bool
}

// Flags renders the subtitle disposition bits as a comma-joined list.
func (t Track) Flags() string {
	var flags []string
	if t.Default {
		flags = append(flags, "Default")
	}
	if t.Forced {
		flags = append(flags, "Forced")
	}
	return strings.Join(flags, ", ")
}

// Tracks converts probed streams into track records, computing per-type
// positions in stream order.
func Tracks(streams []ffprobe.Stream) []Track {
	positions := make(map[string]int, 3)
	tracks := make([]Track, 0, len(streams))
	for _, stream := range streams {
		codecType := strings.ToLower(strings.TrimSpace(stream.CodecType))
		if codecType == "" {
			codecType = "unknown"
		}
		codecName := strings.TrimSpace(stream.CodecName)
		if codecName == "" {
			codecName = "unknown"
		}
		tracks = append(tracks, Track{
			Index:        stream.Index,
			TypePosition: positions[codecType],
			CodecName:    codecName,
			CodecType:    codecType,
			Language:     stream.Language(),
			Title:        stream.Title(),
			Default:      stream.Disposition.Default == 1,
			Forced:       stream.Disposition.Forced == 1,
		})
		positions[codecType]++
	}
	return tracks
}

// Classified partitions streams by codec type, preserving stream order.
type Classified struct {
	Video    []ffprobe.Stream
	Audio    []ffprobe.Stream
	Subtitle []ffprobe.Stream
}

// Classify partitions the ordered stream sequence on the codec_type field.
func Classify(streams []ffprobe.Stream) Classified {
	var c Classified
	for _, stream := range streams {
		switch strings.ToLower(stream.CodecType) {
		case TypeVideo:
			c.Video = append(c.Video, stream)
		case TypeAudio:
			c.Audio = append(c.Audio, stream)
		case TypeSubtitle:
			c.Subtitle = append(c.Subtitle, stream)
		}
	}
	return c
}

// SubtitleTracks filters track records down to subtitle streams.
func SubtitleTracks(tracks []Track) []Track {
	var subs []Track
	for _, track := range tracks {
		if track.CodecType == TypeSubtitle {
			subs = append(subs, track)
		}
	}
	return subs
}
