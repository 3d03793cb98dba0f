package textenc

import (
	"fmt"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"subkit/internal/services"
)

// DetectCharset names the most likely charset of raw text bytes.
func DetectCharset(data []byte) (string, error) {
	if len(data) == 0 {
		return "", services.Wrap(services.ErrMissingInput, "", "detect charset", "empty input", nil)
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", services.Wrap(services.ErrMalformedOutput, "", "detect charset", "", err)
	}
	return result.Charset, nil
}

// DecodeAsUTF8 converts raw bytes in the named charset to UTF-8.
func DecodeAsUTF8(data []byte, charset string) ([]byte, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "", "decode", fmt.Sprintf("charset %s", charset), err)
	}
	return decoded, nil
}

// RewriteUTF8 detects the byte encoding of the file at path and rewrites it
// in place as UTF-8. Destructive: the original bytes are replaced. A file
// already in UTF-8 (or ASCII) is rewritten unchanged.
func RewriteUTF8(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	charset, err := DetectCharset(data)
	if err != nil {
		return err
	}
	decoded, err := DecodeAsUTF8(data, charset)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, decoded, info.Mode().Perm()); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	return nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.TrimSpace(charset)
	switch strings.ToLower(name) {
	case "", "utf-8", "us-ascii", "ascii":
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "", "decode", fmt.Sprintf("unsupported charset %q", charset), err)
	}
	return enc, nil
}
