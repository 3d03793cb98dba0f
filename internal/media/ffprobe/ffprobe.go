package ffprobe

import (
	"context"
	"encoding/json"
	"strings"

	"subkit/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container. Numeric fields
// ffprobe reports as strings stay strings; formatting happens downstream.
type Stream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	RFrameRate  string            `json:"r_frame_rate"`
	BitRate     string            `json:"bit_rate"`
	Duration    string            `json:"duration"`
	Channels    int               `json:"channels"`
	SampleRate  string            `json:"sample_rate"`
	Tags        map[string]string `json:"tags"`
	Disposition Disposition       `json:"disposition"`
}

// Disposition carries the stream flags subkit cares about.
type Disposition struct {
	Default int `json:"default"`
	Forced  int `json:"forced"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Tag reads a stream tag, tolerating muxing-tool key variance: the first
// present key among names wins.
func (s Stream) Tag(names ...string) string {
	for _, name := range names {
		if value, ok := s.Tags[name]; ok {
			value = strings.TrimSpace(value)
			if value != "" {
				return value
			}
		}
	}
	return ""
}

// Language returns the stream language tag, defaulting to "unknown".
func (s Stream) Language() string {
	if lang := s.Tag("language", "lang"); lang != "" {
		return lang
	}
	return "unknown"
}

// Title returns the stream title tag, possibly empty.
func (s Stream) Title() string {
	return s.Tag("title", "handler_name")
}

// Prober invokes ffprobe and decodes its JSON output.
type Prober struct {
	binary string
	runner services.Runner
}

// Option configures the prober.
type Option func(*Prober)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(runner services.Runner) Option {
	return func(p *Prober) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// New constructs a Prober. An empty binary falls back to "ffprobe".
func New(binary string, opts ...Option) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	prober := &Prober{binary: binary, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(prober)
	}
	return prober
}

// Inspect probes the full container: all streams plus format metadata.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, services.Wrap(services.ErrMissingInput, p.binary, "inspect", "empty path", nil)
	}
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	return p.run(ctx, args)
}

// InspectSubtitles probes only subtitle streams, requesting the entries the
// extraction pipeline needs.
func (p *Prober) InspectSubtitles(ctx context.Context, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, services.Wrap(services.ErrMissingInput, p.binary, "inspect subtitles", "empty path", nil)
	}
	args := []string{
		"-v", "error",
		"-select_streams", "s",
		"-show_entries", "stream=index,codec_name,codec_type:stream_tags=language,title:stream_disposition=default,forced",
		"-of", "json",
		path,
	}
	return p.run(ctx, args)
}

func (p *Prober) run(ctx context.Context, args []string) (Result, error) {
	output, err := p.runner.Output(ctx, p.binary, args)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrMalformedOutput, p.binary, "decode json", "", err)
	}
	return result, nil
}
