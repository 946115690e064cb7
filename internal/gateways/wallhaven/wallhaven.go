package wallhaven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/https"
	"github.com/quintans/wallfetch/internal/lib/retry"
	"github.com/quintans/wallfetch/internal/model"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	BaseURL = "https://wallhaven.cc/api/v1"
	// API calls allowed per minute.
	callsPerMinute  = 45
	createdAtLayout = "2006-01-02 15:04:05"
)

var (
	ErrUnauthorized    = errors.New("invalid or missing API key")
	ErrInvalidResponse = errors.New("invalid response")
)

type Client struct {
	api   https.Client
	files https.Client
}

type Option func(*Client)

// WithHTTPClient replaces the http client of both API calls and file
// transfers.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.api.HTTP = c
		cl.files.HTTP = c
	}
}

// WithRateLimit overrides the API rate limit. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(cl *Client) {
		if perMinute <= 0 {
			cl.api.Limiter = nil
			return
		}
		cl.api.Limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

func New(baseURL string, opts ...Option) *Client {
	header := http.Header{
		"User-Agent": {fmt.Sprintf("%s v%s", app.Name, app.Version)},
	}
	c := &Client{
		api: https.Client{
			BaseURL: baseURL,
			Header:  header,
			Limiter: rate.NewLimiter(rate.Every(time.Minute/callsPerMinute), 1),
		},
		files: https.Client{
			Header: header,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Search(ctx context.Context, search *model.Search, apiKey string) (model.SearchResult, error) {
	var header http.Header
	if apiKey != "" {
		header = http.Header{"X-API-Key": {apiKey}}
	}

	body, err := retry.Do2(func() ([]byte, error) {
		return c.api.Get(ctx, "/search", search.Encode(), header)
	}, retry.WithDelayFunc(https.DelayFunc), retry.WithContext(ctx))
	if err != nil {
		if https.Status(err) == http.StatusUnauthorized {
			return model.SearchResult{}, faults.Errorf("searching: %w", ErrUnauthorized)
		}
		return model.SearchResult{}, faults.Errorf("searching: %w", err)
	}

	return decodeSearch(body)
}

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := retry.Do2(func() ([]byte, error) {
		return c.files.Get(ctx, url, nil, nil)
	}, retry.WithDelayFunc(https.DelayFunc), retry.WithContext(ctx))
	if err != nil {
		return nil, faults.Errorf("fetching %s: %w", url, err)
	}
	return body, nil
}

// Download is not retried, w may already hold part of the file.
func (c *Client) Download(ctx context.Context, url string, w io.Writer, onProgress func(written, total int64)) error {
	err := c.files.Stream(ctx, url, w, onProgress)
	if err != nil {
		return faults.Errorf("downloading %s: %w", url, err)
	}
	return nil
}

func decodeSearch(body []byte) (model.SearchResult, error) {
	if !gjson.ValidBytes(body) {
		return model.SearchResult{}, faults.Errorf("%w: not json", ErrInvalidResponse)
	}

	res := gjson.ParseBytes(body)
	if e := res.Get("error"); e.Exists() && e.String() != "" {
		return model.SearchResult{}, faults.Errorf("%w: %s", ErrInvalidResponse, e.String())
	}

	data := res.Get("data")
	if !data.IsArray() {
		return model.SearchResult{}, faults.Errorf("%w: no data", ErrInvalidResponse)
	}

	var result model.SearchResult
	for _, d := range data.Array() {
		w, err := decodeWallpaper(d)
		if err != nil {
			return model.SearchResult{}, err
		}
		result.Wallpapers = append(result.Wallpapers, w)
	}

	meta := res.Get("meta")
	result.Page = model.Page{
		CurrentPage: int(meta.Get("current_page").Int()),
		LastPage:    int(meta.Get("last_page").Int()),
		PerPage:     stringOrInt(meta.Get("per_page")),
		Total:       int(meta.Get("total").Int()),
		Seed:        meta.Get("seed").String(),
	}

	return result, nil
}

func decodeWallpaper(d gjson.Result) (model.Wallpaper, error) {
	w := model.Wallpaper{
		ID:         d.Get("id").String(),
		URL:        d.Get("url").String(),
		ShortURL:   d.Get("short_url").String(),
		Views:      int(d.Get("views").Int()),
		Favorites:  int(d.Get("favorites").Int()),
		Source:     d.Get("source").String(),
		Purity:     d.Get("purity").String(),
		Category:   d.Get("category").String(),
		DimensionX: int(d.Get("dimension_x").Int()),
		DimensionY: int(d.Get("dimension_y").Int()),
		Resolution: d.Get("resolution").String(),
		Ratio:      d.Get("ratio").String(),
		FileSize:   d.Get("file_size").Int(),
		FileType:   d.Get("file_type").String(),
		Path:       d.Get("path").String(),
		Thumbs: model.Thumbs{
			Large:    d.Get("thumbs.large").String(),
			Original: d.Get("thumbs.original").String(),
			Small:    d.Get("thumbs.small").String(),
		},
	}
	for _, c := range d.Get("colors").Array() {
		w.Colors = append(w.Colors, c.String())
	}

	if w.ID == "" || w.Path == "" {
		return model.Wallpaper{}, faults.Errorf("%w: wallpaper without id or path: %s", ErrInvalidResponse, d.Raw)
	}

	if s := d.Get("created_at").String(); s != "" {
		t, err := time.Parse(createdAtLayout, s)
		if err != nil {
			return model.Wallpaper{}, faults.Errorf("%w: created_at %q of %s", ErrInvalidResponse, s, w.ID)
		}
		w.CreatedAt = t
	}

	return w, nil
}

// stringOrInt reads a number that the API sometimes sends quoted.
func stringOrInt(r gjson.Result) int {
	if r.Type == gjson.String {
		n, err := strconv.Atoi(r.String())
		if err != nil {
			return 0
		}
		return n
	}
	return int(r.Int())
}
