package subtitleedit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subkit/internal/services"
)

// Client wraps Subtitle Edit's batch-convert CLI mode, used for OCR of
// image-based subtitle formats (PGS). The OCR itself is Subtitle Edit's
// problem; this client only builds the invocation.
type Client struct {
	binary string
	runner services.Runner
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

// New constructs a Subtitle Edit client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("subtitle edit binary required")
	}
	client := &Client{binary: binary, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ConvertToSRT OCR-converts an image-based subtitle file (e.g. .sup) straight
// to a UTF-8 SubRip file at outputPath.
func (c *Client) ConvertToSRT(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"/convert",
		inputPath,
		"SubRip",
		fmt.Sprintf("/outputfilename:%s", outputPath),
		"/encoding:utf-8",
	}
	if err := c.runner.Run(ctx, c.binary, args, nil); err != nil {
		return fmt.Errorf("subtitle edit convert: %w", err)
	}
	return nil
}
