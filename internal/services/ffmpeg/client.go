package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subkit/internal/services"
)

// Client wraps ffmpeg CLI interactions for subtitle demux and re-encode.
type Client struct {
	binary string
	runner services.Runner
	onLine func(string)
}

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(runner services.Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithOutputSink forwards ffmpeg's combined output lines to fn.
func WithOutputSink(fn func(string)) Option {
	return func(c *Client) {
		c.onLine = fn
	}
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ExtractSubtitle demuxes the subtitle stream at the given per-type position
// (0:s:<position>) into outputPath, copying the codec without re-encoding.
func (c *Client) ExtractSubtitle(ctx context.Context, videoPath string, position int, outputPath string) error {
	if position < 0 {
		return services.Wrap(services.ErrMissingInput, c.binary, "extract", fmt.Sprintf("invalid stream position %d", position), nil)
	}
	args := []string{
		"-i", videoPath,
		"-map", fmt.Sprintf("0:s:%d", position),
		"-c", "copy",
		"-an", "-vn",
		outputPath,
		"-y",
	}
	if err := c.runner.Run(ctx, c.binary, args, c.onLine); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

// ConvertToSRT re-encodes a text-based subtitle file into SubRip format.
func (c *Client) ConvertToSRT(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		outputPath,
	}
	if err := c.runner.Run(ctx, c.binary, args, nil); err != nil {
		return fmt.Errorf("ffmpeg convert: %w", err)
	}
	return nil
}
