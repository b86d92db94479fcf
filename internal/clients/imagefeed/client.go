// Package imagefeed fetches the decorative boss image from an
// image-of-the-day style endpoint that answers {"message": "<image url>"}
package imagefeed

//go:generate mockgen -destination=mock/mock_client.go -package=imagefeedmock github.com/KirkDiggler/onemillion/internal/clients/imagefeed Client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Defaults for Config
const (
	DefaultURL     = "https://dog.ceo/api/breeds/image/random"
	DefaultTimeout = 5 * time.Second
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 64 << 10

// Image is a displayable picture and its alt text
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Client defines the interface for fetching images
type Client interface {
	// FetchImage returns a random image. Any failure is returned as an error;
	// callers decide on a fallback.
	FetchImage(ctx context.Context) (*Image, error)
}

// Config configures the HTTP client
type Config struct {
	// URL of the feed (optional, defaults to DefaultURL)
	URL string
	// HTTPTimeout for requests (optional, defaults to DefaultTimeout)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultTimeout
	}

	vb := errors.NewValidationBuilder()
	if u, err := url.Parse(cfg.URL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.Field("URL", "must be an absolute URL")
	}
	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	url        string
	httpClient *http.Client
}

// New creates an image feed client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		url:        cfg.URL,
		httpClient: httpClient,
	}, nil
}

type feedResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// FetchImage performs a single GET against the feed
func (c *client) FetchImage(ctx context.Context) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build image request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "image feed request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Unavailablef("HTTP error! status: %d", resp.StatusCode).
			WithMeta("status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read image feed response")
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "image feed returned malformed JSON")
	}
	if feed.Message == "" {
		return nil, errors.Unavailable("image feed returned no image")
	}

	image := &Image{
		URL: feed.Message,
		Alt: AltText(feed.Message),
	}

	slog.Debug("Fetched image", "url", image.URL)

	return image, nil
}

// AltText derives alt text from the path segment after "breeds", e.g.
// https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg
func AltText(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "Random image"
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg == "breeds" && i+1 < len(segments) && segments[i+1] != "" {
			return "Dog of breed " + segments[i+1]
		}
	}
	return "Random image"
}
