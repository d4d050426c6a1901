package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"billmaker/metrics"
)

// TypefaceFamily is the family name custom font data is registered under.
const TypefaceFamily = "billface"

const (
	base64SourcePrefix = "base64:"
	maxTypefaceBytes   = 16 << 20
)

// Typeface is TrueType font data to embed in rendered bills.
type Typeface struct {
	Family string
	Data   []byte
}

// LoadTypeface fetches font data from source: an http(s) URL, a "base64:"
// prefixed inline value, or a file path. Any failure is logged and yields
// nil so callers fall back to the built-in font.
func LoadTypeface(ctx context.Context, client *http.Client, source string, timeout time.Duration) *Typeface {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil
	}

	data, err := readTypeface(ctx, client, source, timeout)
	if err != nil {
		slog.Warn("typeface: could not load custom font, using default", "source", source, "error", err)
		metrics.TypefaceFallbacks.Inc()
		return nil
	}
	if len(data) == 0 {
		slog.Warn("typeface: custom font is empty, using default", "source", source)
		metrics.TypefaceFallbacks.Inc()
		return nil
	}

	slog.Info("typeface: loaded custom font", "source", source, "bytes", len(data))
	return &Typeface{Family: TypefaceFamily, Data: data}
}

func readTypeface(ctx context.Context, client *http.Client, source string, timeout time.Duration) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, base64SourcePrefix):
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(source, base64SourcePrefix))
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
		return data, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetchTypeface(ctx, client, source, timeout)
	default:
		return os.ReadFile(source)
	}
}

func fetchTypeface(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTypefaceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
