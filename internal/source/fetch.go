// Package source loads the budget dataset and narrative details from a local
// file or an HTTP endpoint and decodes them tolerantly: one bad record must
// never blank the whole visualization.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 32 << 20 // 32 MB
)

// ErrUnavailable marks the retryable failure class: network errors, bad HTTP
// statuses, and payloads that are not a JSON array. Callers surface it as
// "unavailable, retry later" rather than a fatal condition.
var ErrUnavailable = errors.New("source unavailable")

// FetchBytes reads ref, which is either a filesystem path or an http(s) URL,
// and returns the raw payload.
func FetchBytes(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return fetchURL(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return data, nil
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrUnavailable, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: status %d", ErrUnavailable, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, url, err)
	}
	return data, nil
}
