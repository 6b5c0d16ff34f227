// Package webfetch retrieves web pages and converts their HTML content to
// Markdown, suitable for inclusion as conversation context.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/observability"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "yunchat-webfetch/1.0"
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is the maximum time an idle connection can be reused
	IdleConnTimeout = 90 * time.Second
)

// Result holds a fetched page. URL reflects the final destination after all
// HTTP redirects.
type Result struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// defaultClient blocks slow or unresponsive servers at every phase of the
// request instead of relying on the overall timeout alone.
var defaultClient = &http.Client{
	Timeout: DefaultTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		IdleConnTimeout:       IdleConnTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
	},
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("too many redirects (>10)")
		}
		return nil
	},
}

// Fetch retrieves the web page at rawURL and returns its content as Markdown.
//
// Partial URLs (e.g. "google.com") are normalised by prepending "https://".
// Up to ten HTTP redirects are followed; the final URL after all redirects is
// returned in [Result.URL]. The response body is capped at [MaxBodySize]
// bytes.
//
// Fetch returns an error when the URL is empty, the HTTP status code is not
// 200 OK, the body exceeds [MaxBodySize], HTML-to-Markdown conversion fails,
// or the context is cancelled or times out.
func Fetch(ctx context.Context, rawURL string) (Result, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return Result{}, fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Debug(ctx, "webfetch.request.prepared",
			observability.String(observability.AttrHTTPMethod, http.MethodGet),
			observability.String(observability.AttrHTTPURL, url),
		)
	}

	resp, err := defaultClient.Do(req)
	if err != nil {
		if ctxWithTimeout.Err() != nil {
			return Result{}, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return Result{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, resp.Status)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(htmlBytes) == MaxBodySize {
		return Result{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	if observer != nil {
		observer.Debug(ctx, "webfetch.response.received",
			observability.Int(observability.AttrHTTPStatusCode, resp.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(htmlBytes)),
		)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return Result{
		URL:      resp.Request.URL.String(),
		Markdown: markdown,
	}, nil
}
