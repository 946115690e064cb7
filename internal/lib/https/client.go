package https

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/quintans/wallfetch/internal/lib/fails"
	"github.com/quintans/wallfetch/internal/lib/retry"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type Client struct {
	BaseURL string
	Header  http.Header
	// HTTP defaults to http.DefaultClient.
	HTTP *http.Client
	// Limiter, when set, is waited on before every request.
	Limiter *rate.Limiter
}

// Get requests BaseURL+uri and returns the whole body of a 200 response.
func (c *Client) Get(ctx context.Context, uri string, query url.Values, header http.Header) ([]byte, error) {
	u := c.BaseURL + uri
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	resp, err := c.Do(ctx, http.MethodGet, u, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body of %s: %w", c.BaseURL+uri, err)
	}
	return body, nil
}

// Stream copies the body of an absolute url into w, calling onProgress
// after every chunk with the bytes written so far and the announced length
// (0 when the server did not send one).
func (c *Client) Stream(ctx context.Context, rawURL string, w io.Writer, onProgress func(written, total int64)) error {
	resp, err := c.Do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	total := max(resp.ContentLength, 0)
	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return retry.NewPermanentError(fmt.Errorf("writing %s: %w", rawURL, err))
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("reading %s: %w", rawURL, rerr)
		}
	}
}

// Do executes the request and returns the response when the status is 200.
// The caller must close the body.
func (c *Client) Do(ctx context.Context, method, rawURL string, header http.Header) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, retry.NewPermanentError(fmt.Errorf("waiting for rate limiter: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, retry.NewPermanentError(fmt.Errorf("creating request: %w", err))
	}
	req.Header = mergeHeaders(c.Header, header)

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanentError(err)
		}
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(req.URL)
		}
		return nil, fails.NewWithErr(err, "request failed", "url", redact(req.URL))
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	return nil, StatusError(resp)
}

// StatusError classifies a non 200 response. Throttling and server errors
// can be retried, everything else is permanent.
func StatusError(resp *http.Response) error {
	u := redact(resp.Request.URL)
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		err := fails.New("too many requests", "url", u, "status", resp.StatusCode)
		if after := resp.Header.Get("Retry-After"); after != "" {
			err = err.WithValues(RetryAfter, after)
		}
		return err
	case resp.StatusCode >= http.StatusInternalServerError:
		return fails.New("server error", "url", u, "status", resp.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return retry.NewPermanentError(fails.New("unexpected response", "url", u, "status", resp.StatusCode, "body", string(body)))
}

// Status returns the HTTP status carried by an error built by StatusError.
func Status(err error) int {
	v, ok := fails.Value(err, "status")
	if !ok {
		return 0
	}
	s, _ := v.(int)
	return s
}

func mergeHeaders(base, extra http.Header) http.Header {
	h := make(http.Header, len(base)+len(extra))
	for k, v := range base {
		h[k] = slices.Clone(v)
	}
	for k, v := range extra {
		h[k] = slices.Clone(v)
	}
	return h
}

// redact drops the query string, it may carry an api key.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	c.RawQuery = ""
	return c.String()
}
