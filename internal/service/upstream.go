package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// maxUpstreamBody caps how much of a provider response is read.
const maxUpstreamBody = 10 << 20

// UpstreamConfig configures the recipe provider client.
type UpstreamConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	SearchCount int
	BrowseCount int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// UpstreamClient talks to a Spoonacular-compatible recipe provider and
// returns its JSON bodies unmodified.
type UpstreamClient struct {
	baseURL     string
	apiKey      string
	searchCount int
	browseCount int
	httpClient  *http.Client
}

// NewUpstreamClient creates a new recipe provider client
func NewUpstreamClient(cfg UpstreamConfig) *UpstreamClient {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &UpstreamClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		searchCount: cfg.SearchCount,
		browseCount: cfg.BrowseCount,
		httpClient:  client,
	}
}

// BuildSearchQuery maps the present fields of filter onto provider search
// parameters. Absent fields are left out entirely.
func BuildSearchQuery(filter model.ExtractedFilter, number int) url.Values {
	q := url.Values{}
	if filter.Cuisine != nil {
		q.Set("cuisine", *filter.Cuisine)
	}
	if filter.Diet != nil {
		q.Set("diet", *filter.Diet)
	}
	if len(filter.Ingredients) > 0 {
		q.Set("includeIngredients", strings.Join(filter.Ingredients, ","))
	}
	if filter.MaxReadyTimeMinutes != nil {
		q.Set("maxReadyTime", strconv.Itoa(*filter.MaxReadyTimeMinutes))
	}
	q.Set("addRecipeInformation", "true")
	q.Set("number", strconv.Itoa(number))
	return q
}

// FilterFromIngredients builds a search filter that only constrains ingredients.
func FilterFromIngredients(ingredients []string) model.ExtractedFilter {
	var out []string
	for _, i := range ingredients {
		if i = strings.TrimSpace(i); i != "" {
			out = append(out, i)
		}
	}
	return model.ExtractedFilter{Ingredients: out}
}

// Search runs a complex search with filter.
func (c *UpstreamClient) Search(ctx context.Context, filter model.ExtractedFilter) (json.RawMessage, error) {
	return c.get(ctx, "search", "/recipes/complexSearch", BuildSearchQuery(filter, c.searchCount))
}

// Random returns a batch of random recipes.
func (c *UpstreamClient) Random(ctx context.Context) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(c.browseCount))
	return c.get(ctx, "random", "/recipes/random", q)
}

// Recipe returns the full information of one recipe.
func (c *UpstreamClient) Recipe(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "information", fmt.Sprintf("/recipes/%d/information", id), url.Values{})
}

func (c *UpstreamClient) get(ctx context.Context, op, path string, q url.Values) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.do(ctx, path, q)
	upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
		slog.Warn("recipe provider request failed", "operation", op, "error", err)
	}
	upstreamRequestsTotal.WithLabelValues(op, outcome).Inc()
	return body, err
}

func (c *UpstreamClient) do(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	q.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.Internal("failed to build provider request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.Upstream(resp.StatusCode, string(body))
	}
	if !json.Valid(body) {
		return nil, apperror.BadGateway("recipe provider returned invalid JSON", string(body), nil)
	}
	return json.RawMessage(body), nil
}

// transportError classifies a failed exchange. Deadlines report 504.
func transportError(err error) error {
	// url.Error embeds the request URL, which carries the API key
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}

	e := apperror.BadGateway("recipe provider unreachable", "", err)
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		e.Status = http.StatusGatewayTimeout
		e.Message = "recipe provider timed out"
	}
	return e
}
