// Package fetch retrieves external documents and normalizes them into
// generation-ready content.
package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/toolbridge"
)

// Interface compliance check.
var _ toolbridge.Fetcher = (*Client)(nil)

const defaultMaxBytes = 32 << 20

// Client implements [toolbridge.Fetcher] for http(s) URLs, file:// URLs and
// local paths.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for remote sources.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxBytes caps the size of a single document. Larger documents fail.
func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// New creates a [Client].
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		maxBytes:   defaultMaxBytes,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch retrieves source and normalizes it. HTML becomes tag-stripped text,
// PDF becomes base64. Every failure is a *toolbridge.FetchError.
func (c *Client) Fetch(ctx context.Context, source toolbridge.DocumentSource) (toolbridge.NormalizedContent, error) {
	data, err := c.read(ctx, source.Locator)
	if err != nil {
		return toolbridge.NormalizedContent{}, &toolbridge.FetchError{Locator: source.Locator, Err: err}
	}
	switch source.Kind {
	case toolbridge.KindHTML:
		text := strings.ToValidUTF8(string(data), "�")
		return toolbridge.NormalizedContent{Data: StripTags(text), MIMEType: toolbridge.MIMEText}, nil
	case toolbridge.KindPDF:
		return toolbridge.NormalizedContent{
			Data:     base64.StdEncoding.EncodeToString(data),
			MIMEType: toolbridge.MIMEPDF,
		}, nil
	default:
		return toolbridge.NormalizedContent{}, &toolbridge.FetchError{
			Locator: source.Locator,
			Err:     fmt.Errorf("unsupported source kind %q", source.Kind),
		}
	}
}

func (c *Client) read(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		return c.get(ctx, locator)
	case "file":
		return c.readFile(u.Path)
	case "":
		return c.readFile(locator)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (c *Client) get(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return c.readAll(resp.Body)
}

func (c *Client) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.readAll(f)
}

var errTooLarge = errors.New("document too large")

func (c *Client) readAll(r io.Reader) ([]byte, error) {
	if c.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", errTooLarge, c.maxBytes)
	}
	return data, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every <...> span in a single pass. Unterminated markup
// is left in place.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
