// File: internal/geocode/geocode.go
package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/config"
)

// DefaultEndpoint is the Geoapify reverse geocoding API.
const DefaultEndpoint = "https://api.geoapify.com/v1/geocode/reverse"

// ErrNoAPIKey is returned by New when no key is configured.
var ErrNoAPIKey = errors.New("geocode: no API key configured")

// ErrNoResult is returned when the API answers without any feature.
var ErrNoResult = errors.New("geocode: no result")

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Client reverse geocodes coordinates through the Geoapify API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// New creates a Client. httpClient may be nil.
func New(cfg config.GeocodeConfig, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger.Named("geocode"),
	}, nil
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			AddressLine1 string `json:"address_line1"`
			Street       string `json:"street"`
			HouseNumber  string `json:"housenumber"`
			Name         string `json:"name"`
			City         string `json:"city"`
			Town         string `json:"town"`
			Municipality string `json:"municipality"`
			State        string `json:"state"`
			County       string `json:"county"`
			Postcode     string `json:"postcode"`
			Country      string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ReverseGeocode returns the postal address closest to lat/lon.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*schemas.AddressBlock, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode: waiting for rate limiter: %w", err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("geocode: reading response: %w", err)
	}
	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("geocode: decoding response: %w", err)
	}
	if len(parsed.Features) == 0 {
		return nil, ErrNoResult
	}

	props := parsed.Features[0].Properties
	block := &schemas.AddressBlock{
		Address: firstNonEmpty(props.AddressLine1, props.Street, props.Name),
		City:    firstNonEmpty(props.City, props.Town, props.Municipality),
		State:   firstNonEmpty(props.State, props.County),
		ZipCode: props.Postcode,
		Country: props.Country,
	}
	c.logger.Debug("Reverse geocoded coordinates.",
		zap.Float64("lat", lat), zap.Float64("lon", lon), zap.String("city", block.City))
	return block, nil
}
