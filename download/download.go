// Package download fetches a remote document into memory with a bounded body,
// a request timeout and a content digest for diagnostics.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

const DefaultMaxBytes = 16 * 1024 * 1024

var (
	ErrEmptyURL     = errors.New("download: URL is empty")
	ErrEmptyBody    = errors.New("download: empty response body")
	ErrBodyTooLarge = errors.New("download: response body exceeds limit")
)

// Request configures a single fetch.
type Request struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

// Result holds the fetched document and the response metadata worth logging.
type Result struct {
	Body         []byte
	StatusCode   int
	Bytes        int64
	Digest       uint64
	ContentType  string
	ETag         string
	LastModified string
	FetchedAt    time.Time
}

// Purpose: Fetch a remote document into memory exactly once.
// Key aspects: Applies timeout and User-Agent, rejects non-2xx, bounds the body,
// and computes an xxh3 digest. No retries and no on-disk caching.
// Upstream: main startup before the terminal is opened.
// Downstream: net/http client, xxh3.Hash.
func Fetch(ctx context.Context, req Request) (Result, error) {
	var result Result
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return result, ErrEmptyURL
	}
	maxBytes := req.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	client := req.Client
	if client == nil {
		client = &http.Client{}
	}
	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("download: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("download: fetch failed: %w", err)
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return result, fmt.Errorf("download: fetch failed: status %s", resp.Status)
	}

	// Read one byte past the limit so an oversized body is detected, not truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return result, fmt.Errorf("download: read body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return result, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, maxBytes)
	}
	if len(body) == 0 {
		return result, ErrEmptyBody
	}

	result.Body = body
	result.Bytes = int64(len(body))
	result.Digest = xxh3.Hash(body)
	result.ContentType = strings.TrimSpace(resp.Header.Get("Content-Type"))
	result.ETag = strings.TrimSpace(resp.Header.Get("ETag"))
	result.LastModified = strings.TrimSpace(resp.Header.Get("Last-Modified"))
	result.FetchedAt = time.Now().UTC()
	return result, nil
}
