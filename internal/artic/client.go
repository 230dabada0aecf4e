// Package artic is a small client for the Art Institute of Chicago public API.
package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"artgrip/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.artic.edu/api/v1"
	DefaultImageBaseURL = "https://www.artic.edu/iiif/2"

	// Image widths used by the views
	TileImageWidth    = 843
	DetailImageWidth  = 1686
	PreviewImageWidth = 400

	listFields   = "id,image_id,title,thumbnail"
	batchFields  = "id,title,image_id,thumbnail"
	detailFields = "id,title,image_id,thumbnail,description,artist_title,artist_display,place_of_origin,date_display,medium_display,dimensions,artist_id"
)

// ErrNotFound is returned when the catalog has no such record
var ErrNotFound = errors.New("record not found")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned %d for %s", e.Code, e.URL)
}

// Client talks to the catalog API
type Client struct {
	baseURL      string
	imageBaseURL string
	userAgent    string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithImageBaseURL sets the IIIF image service base
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		c.imageBaseURL = strings.TrimRight(base, "/")
	}
}

// WithRateLimit caps outbound requests. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the AIC-User-Agent header the catalog asks clients to send
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "artic").Logger()
	}
}

// NewClient creates a new catalog client
func NewClient(baseURL string, options ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: DefaultImageBaseURL,
		userAgent:    "artgrip",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: zerolog.Nop(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// ImageURL builds the IIIF url for imageID scaled to width
func (c *Client) ImageURL(imageID string, width int) string {
	if imageID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/full/%d,/0/default.jpg", c.imageBaseURL, imageID, width)
}

// SearchArtworks returns one page of public-domain search results
func (c *Client) SearchArtworks(ctx context.Context, term string, page, limit int) ([]domain.ArtRecord, error) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("query[term][is_public_domain]", "true")
	params.Set("fields", listFields)

	var resp listResponse
	if err := c.get(ctx, "/artworks/search", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "search %q page %d", term, page)
	}
	return resp.records(), nil
}

// ArtworksByIDs looks up several artworks in one request. The response
// order is whatever the catalog returns.
func (c *Client) ArtworksByIDs(ctx context.Context, ids []int) ([]domain.ArtRecord, error) {
	if len(ids) == 0 {
		return []domain.ArtRecord{}, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(parts, ","))
	params.Set("fields", batchFields)

	var resp listResponse
	if err := c.get(ctx, "/artworks", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "lookup %d artworks", len(ids))
	}
	return resp.records(), nil
}

// Artwork loads the full record for one artwork
func (c *Client) Artwork(ctx context.Context, id int) (domain.ArtworkDetail, error) {
	params := url.Values{}
	params.Set("fields", detailFields)

	var resp struct {
		Data rawArtwork `json:"data"`
	}
	if err := c.get(ctx, "/artworks/"+strconv.Itoa(id), params, &resp); err != nil {
		return domain.ArtworkDetail{}, errors.Wrapf(err, "artwork %d", id)
	}
	return resp.Data.detail(), nil
}

// Agent loads one artist record
func (c *Client) Agent(ctx context.Context, id int) (domain.Artist, error) {
	var resp struct {
		Data rawAgent `json:"data"`
	}
	if err := c.get(ctx, "/agents/"+strconv.Itoa(id), nil, &resp); err != nil {
		return domain.Artist{}, errors.Wrapf(err, "agent %d", id)
	}
	return resp.Data.artist(), nil
}

// PreviewImageID returns the image id of the first public-domain match for term
func (c *Client) PreviewImageID(ctx context.Context, term string) (string, error) {
	params := url.Values{}
	params.Set("q", term)
	params.Set("query[term][is_public_domain]", "true")
	params.Set("limit", "1")
	params.Set("fields", "id,image_id")

	var resp listResponse
	if err := c.get(ctx, "/artworks/search", params, &resp); err != nil {
		return "", errors.Wrapf(err, "preview for %q", term)
	}
	for _, item := range resp.Data {
		if item.ImageID != nil && *item.ImageID != "" {
			return *item.ImageID, nil
		}
	}
	return "", nil
}

// get performs a rate limited GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limiter")
		}
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("AIC-User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("catalog request")

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
