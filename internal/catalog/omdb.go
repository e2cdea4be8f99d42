// Package catalog fetches movie metadata from the OMDb API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// OMDbClient talks to the OMDb HTTP API. Responses with
// Response="False" are reported as errors carrying OMDb's message.
type OMDbClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

// SearchResult is one entry of an OMDb title search.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Poster string `json:"Poster"`
}

// MovieDetail is the full OMDb record for a single title.
type MovieDetail struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
}

type searchResponse struct {
	Search   []SearchResult `json:"Search"`
	Response string         `json:"Response"`
	Error    string         `json:"Error"`
}

type detailResponse struct {
	MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func NewOMDbClient(config utils.OMDbConfig, log *zap.Logger) *OMDbClient {
	return &OMDbClient{
		baseURL: config.URL,
		apiKey:  config.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With(zap.String("client", "omdb")),
	}
}

// Search runs a title search and returns the first page of matches.
func (c *OMDbClient) Search(ctx context.Context, term string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("s", term)
	params.Set("type", "movie")

	var result searchResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	if result.Response != "True" {
		return nil, fmt.Errorf("search %q: omdb: %s", term, result.Error)
	}

	return result.Search, nil
}

// Detail fetches the full record for an IMDb ID.
func (c *OMDbClient) Detail(ctx context.Context, imdbID string) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "short")

	var result detailResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("detail %s: %w", imdbID, err)
	}

	if result.Response != "True" {
		return nil, fmt.Errorf("detail %s: omdb: %s", imdbID, result.Error)
	}

	return &result.MovieDetail, nil
}

func (c *OMDbClient) get(ctx context.Context, params url.Values, dest any) error {
	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call omdb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}

	return nil
}
