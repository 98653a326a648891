// Package api talks to the forkify-compatible recipe API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eTEats_recipes/models"
)

// StatusError is returned for every non-2xx response. Message comes from the
// API's error envelope when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("recipe api: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// Client is safe for concurrent use.
type Client struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
}

// New builds a client. baseURL is the recipes collection URL, e.g.
// "https://forkify-api.herokuapp.com/api/v2/recipes/".
func New(baseURL, key string, timeout time.Duration) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		BaseURL: baseURL,
		Key:     key,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Recipe fetches GET {base}{id}?key={key}.
func (c *Client) Recipe(ctx context.Context, id string) (models.RecipeDTO, error) {
	var env models.RecipeEnvelope
	u := c.BaseURL + url.PathEscape(id) + "?" + url.Values{"key": {c.Key}}.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &env); err != nil {
		return models.RecipeDTO{}, err
	}
	return env.Data.Recipe, nil
}

// Search fetches GET {base}?search={query}&key={key}.
func (c *Client) Search(ctx context.Context, query string) ([]models.RecipeDTO, error) {
	var env models.SearchEnvelope
	u := c.BaseURL + "?" + url.Values{"search": {query}, "key": {c.Key}}.Encode()
	if err := c.do(ctx, http.MethodGet, u, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Recipes, nil
}

// Upload posts a new recipe to POST {base}?key={key} and returns the stored
// recipe, id included.
func (c *Client) Upload(ctx context.Context, recipe models.RecipeDTO) (models.RecipeDTO, error) {
	body, err := json.Marshal(recipe)
	if err != nil {
		return models.RecipeDTO{}, fmt.Errorf("encode recipe: %w", err)
	}
	var env models.RecipeEnvelope
	u := c.BaseURL + "?" + url.Values{"key": {c.Key}}.Encode()
	if err := c.do(ctx, http.MethodPost, u, body, &env); err != nil {
		return models.RecipeDTO{}, err
	}
	return env.Data.Recipe, nil
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("recipe api %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("recipe api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env models.ErrorEnvelope
		_ = json.Unmarshal(data, &env)
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("recipe api: decode response: %w", err)
	}
	return nil
}
