package alass

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"subkit/internal/services"
)

// Client wraps the alass subtitle-alignment CLI. The alignment algorithm is
// alass's; this client builds the two invocation shapes it accepts.
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

// WithOutputSink forwards alass's combined output lines to fn.
func WithOutputSink(fn func(string)) Option {
	return func(c *Client) {
		c.onLine = fn
	}
}

// New constructs an alass client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("alass binary required")
	}
	client := &Client{binary: binary, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AlignToVideo aligns subtitlePath against the video's audio track, writing
// the corrected subtitle to outputPath. audioIndex pins a specific audio
// stream; pass a negative value to let alass choose.
func (c *Client) AlignToVideo(ctx context.Context, videoPath, subtitlePath, outputPath string, audioIndex int) error {
	var args []string
	if audioIndex >= 0 {
		args = append(args, "--index", strconv.Itoa(audioIndex))
	}
	args = append(args, videoPath, subtitlePath, outputPath)
	if err := c.runner.Run(ctx, c.binary, args, c.onLine); err != nil {
		return fmt.Errorf("alass align to video: %w", err)
	}
	return nil
}

// AlignToReference aligns subtitlePath against an already-correct subtitle in
// another language (text-to-text alignment).
func (c *Client) AlignToReference(ctx context.Context, referencePath, subtitlePath, outputPath string) error {
	args := []string{referencePath, subtitlePath, outputPath}
	if err := c.runner.Run(ctx, c.binary, args, c.onLine); err != nil {
		return fmt.Errorf("alass align to reference: %w", err)
	}
	return nil
}
