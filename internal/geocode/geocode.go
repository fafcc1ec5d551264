package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	DefaultLimit = 5
	MaxLimit     = 10

	cacheTTL = 15 * time.Minute
)

type Suggestion struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Client wraps Mapbox forward geocoding. It never returns an error to
// callers: a missing token, an upstream failure or garbage JSON all come
// back as an empty suggestion list so typing in the location field keeps
// working.
type Client struct {
	token    string
	country  string
	language string
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	cache    *redis.Client
}

func NewClient(token, country, language string, cache *redis.Client) *Client {
	return &Client{
		token:    token,
		country:  country,
		language: language,
		baseURL:  "https://api.mapbox.com/geocoding/v5/mapbox.places",
		http:     &http.Client{Timeout: 5 * time.Second},
		// Mapbox free tier allows 600 req/min; stay well under it.
		limiter: rate.NewLimiter(rate.Limit(8), 16),
		cache:   cache,
	}
}

func (c *Client) Suggest(ctx context.Context, query string, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" || c.token == "" {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	cacheKey := fmt.Sprintf("geocode:%s:%d", strings.ToLower(query), limit)
	if cached := c.fromCache(ctx, cacheKey); cached != nil {
		return cached
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return []Suggestion{}
	}

	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("autocomplete", "true")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("language", c.language)
	params.Set("country", c.country)
	params.Set("types", "address,place,locality,postcode")

	reqURL := c.baseURL + "/" + url.PathEscape(query) + ".json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return []Suggestion{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("geocode: mapbox request: %v", err)
		return []Suggestion{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: mapbox status %d", resp.StatusCode)
		return []Suggestion{}
	}

	var body struct {
		Features []struct {
			PlaceName string    `json:"place_name"`
			Center    []float64 `json:"center"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("geocode: decode: %v", err)
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(body.Features))
	for _, f := range body.Features {
		if len(f.Center) < 2 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name: f.PlaceName,
			Lon:  f.Center[0],
			Lat:  f.Center[1],
		})
	}

	c.toCache(ctx, cacheKey, suggestions)
	return suggestions
}

func (c *Client) fromCache(ctx context.Context, key string) []Suggestion {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil
	}
	return suggestions
}

func (c *Client) toCache(ctx context.Context, key string, suggestions []Suggestion) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	// cache failures are invisible to the caller
	_ = c.cache.Set(ctx, key, raw, cacheTTL).Err()
}
