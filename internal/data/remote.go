package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"business-analysis/internal/model"
)

// DefaultMaxFetchBytes caps a fetched document unless the client sets MaxBytes.
const DefaultMaxFetchBytes int64 = 10 << 20

// Client fetches record series published over HTTP as CSV or JSON.
type Client struct {
	HTTP         *http.Client
	// MaxBytes caps the response body; larger documents fail with RESPONSE_TOO_LARGE.
	MaxBytes     int64
	// AllowPrivate permits loopback, private and link-local sources. Off by default.
	AllowPrivate bool
}

func NewClient() *Client {
	c := &Client{MaxBytes: DefaultMaxFetchBytes}

	// The dialer re-checks every resolved address, so DNS names and redirects
	// cannot reach a host the URL check would have refused.
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   c.checkDial,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	c.HTTP = &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
	return c
}

// FetchError represents a failed remote fetch.
type FetchError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *FetchError) Error() string {
	return e.Message
}

// FetchRecords downloads and decodes a record series. The format follows the response
// content type, falling back to the URL extension; JSON is the default.
func (c *Client) FetchRecords(ctx context.Context, rawURL string) (model.Series, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &FetchError{Code: "INVALID_URL", Message: fmt.Sprintf("invalid source url %q", rawURL)}
	}

	if err := c.checkHost(u.Hostname()); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx).With().Str("url", u.Redacted()).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	duration := time.Since(start)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			log.Warn().Str("code", fetchErr.Code).Msg("fetch refused")
			return nil, fetchErr
		}
		log.Error().Err(err).Dur("duration", duration).Msg("fetch failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("fetch response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "source rejected the request: unauthorized",
		}
	case http.StatusNotFound:
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    "source not found",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Code:       "FETCH_ERROR",
			Message:    fmt.Sprintf("source returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxFetchBytes
	}
	body := &countingReader{r: io.LimitReader(resp.Body, limit+1)}

	var s model.Series
	if isCSV(resp.Header.Get("Content-Type"), u.Path) {
		s, err = ReadRecordsCSV(body)
	} else {
		s, err = ReadRecordsJSON(body)
	}
	if body.n > limit {
		return nil, &FetchError{
			Code:    "RESPONSE_TOO_LARGE",
			Message: fmt.Sprintf("source document exceeds %d bytes", limit),
		}
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("records", len(s)).Msg("fetched records")
	return s, nil
}

func isCSV(contentType, urlPath string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "csv") {
		return true
	}
	if strings.Contains(ct, "json") {
		return false
	}
	return strings.EqualFold(path.Ext(urlPath), ".csv")
}

// checkHost refuses literal addresses and names that always resolve locally.
func (c *Client) checkHost(host string) error {
	if c.AllowPrivate {
		return nil
	}
	h := strings.TrimSuffix(strings.ToLower(host), ".")
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return forbiddenSource(host)
	}
	if ip := net.ParseIP(h); ip != nil && !publicIP(ip) {
		return forbiddenSource(host)
	}
	return nil
}

func (c *Client) checkDial(_, address string, _ syscall.RawConn) error {
	if c.AllowPrivate {
		return nil
	}
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !publicIP(ip) {
		return forbiddenSource(host)
	}
	return nil
}

func publicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast())
}

func forbiddenSource(host string) *FetchError {
	return &FetchError{
		Code:    "FORBIDDEN_SOURCE",
		Message: fmt.Sprintf("source host %q is not a public address", host),
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
