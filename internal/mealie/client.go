package mealie

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
)

// Client talks to the Mealie REST API. Every public operation swallows
// remote failures: it logs them and reports an absent or empty result so a
// single bad request never aborts a run.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
	logger    *slog.Logger
}

const (
	defaultUserAgent = "mealie-menu/0.1"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 32 << 20
	logBodyLimit     = 2048
)

// Option customises a Client.
type Option func(*Client)

// WithLogger routes client diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the server at baseURL authenticating with token.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("api token is required")
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		token:     token,
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListIngredients returns every food known to the server. The endpoint has
// answered with a bare array, an {"items": [...]} page and an id-keyed object
// across Mealie releases; all three are accepted.
func (c *Client) ListIngredients(ctx context.Context) []Food {
	body, err := c.do(ctx, http.MethodGet, "/foods", allPages(), nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch ingredients failed", "error", err)
		return nil
	}
	list := classifyListing(body)
	if list.shape == shapeUnknown {
		c.logger.WarnContext(ctx, "unexpected ingredient payload", "payload", clip(body))
		return nil
	}
	return lo.Map(list.entries, func(entry gjson.Result, _ int) Food {
		return foodFromResult(entry)
	})
}

// CreateIngredient adds a food named name. It returns nil when the server
// rejects the request.
func (c *Client) CreateIngredient(ctx context.Context, name string) *Food {
	req := foodRequest{
		Name:        name,
		Description: "Auto-created ingredient: " + name,
	}
	body, err := c.do(ctx, http.MethodPost, "/foods", nil, req)
	if err != nil {
		c.logger.ErrorContext(ctx, "create ingredient failed", "name", name, "error", err)
		return nil
	}
	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return &Food{Name: name, Raw: json.RawMessage(body)}
	}
	food := foodFromResult(result)
	if food.Name == "" {
		food.Name = name
	}
	return &food
}

// FindIngredientByName scans the full food list for a case-insensitive,
// whitespace-trimmed name match.
func (c *Client) FindIngredientByName(ctx context.Context, name string) *Food {
	want := foldName(name)
	food, ok := lo.Find(c.ListIngredients(ctx), func(f Food) bool {
		return foldName(f.Name) == want
	})
	if !ok {
		return nil
	}
	return &food
}

// EnsureIngredientExists finds the food by name or creates it. created is
// true only when this call created it.
func (c *Client) EnsureIngredientExists(ctx context.Context, name string) (food *Food, created bool) {
	if existing := c.FindIngredientByName(ctx, name); existing != nil {
		c.logger.DebugContext(ctx, "ingredient already exists", "name", name, "id", existing.ID)
		return existing, false
	}
	c.logger.DebugContext(ctx, "creating ingredient", "name", name)
	food = c.CreateIngredient(ctx, name)
	return food, food != nil
}

// ListRecipes returns the recipes on the server's recipe page.
func (c *Client) ListRecipes(ctx context.Context) []Recipe {
	body, err := c.do(ctx, http.MethodGet, "/recipes", allPages(), nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch recipes failed", "error", err)
		return nil
	}
	items := gjson.GetBytes(body, "items")
	if !items.IsArray() {
		c.logger.WarnContext(ctx, "unexpected recipe listing payload", "payload", clip(body))
		return nil
	}
	recipes := lo.Filter(items.Array(), func(entry gjson.Result, _ int) bool {
		return entry.IsObject()
	})
	return lo.Map(recipes, func(entry gjson.Result, _ int) Recipe {
		return recipeFromResult(entry)
	})
}

// FindRecipeByName applies the same matching rule as FindIngredientByName.
func (c *Client) FindRecipeByName(ctx context.Context, name string) *Recipe {
	want := foldName(name)
	recipe, ok := lo.Find(c.ListRecipes(ctx), func(r Recipe) bool {
		return foldName(r.Name) == want
	})
	if !ok {
		return nil
	}
	return &recipe
}

// CreateRecipe posts payload. The server may answer with the recipe record,
// a bare identifier string or a one-element array.
func (c *Client) CreateRecipe(ctx context.Context, payload RecipePayload) *Recipe {
	body, err := c.do(ctx, http.MethodPost, "/recipes", nil, payload)
	if err != nil {
		c.logFailure(ctx, "create recipe failed", err, "name", payload.Name)
		return nil
	}
	resp := classifyCreated(body)
	switch resp.shape {
	case createdRecord, createdFirstOfArray:
		recipe := recipeFromResult(resp.record)
		if recipe.Name == "" {
			recipe.Name = payload.Name
		}
		return &recipe
	case createdIdentifier:
		return &Recipe{ID: resp.identifier, Name: payload.Name, Raw: json.RawMessage(body)}
	default:
		c.logger.WarnContext(ctx, "unexpected recipe creation response", "name", payload.Name, "payload", clip(body))
		return nil
	}
}

// CreateMealPlanEntry schedules recipeID on date (YYYY-MM-DD) as entryType.
func (c *Client) CreateMealPlanEntry(ctx context.Context, date, entryType, recipeID string) *MealPlanEntry {
	req := mealPlanRequest{Date: date, EntryType: entryType, RecipeID: recipeID}
	body, err := c.do(ctx, http.MethodPost, "/groups/mealplans", nil, req)
	if err != nil {
		c.logFailure(ctx, "create meal plan entry failed", err, "date", date, "recipe_id", recipeID)
		return nil
	}
	entry := MealPlanEntry{Date: date, EntryType: entryType, RecipeID: recipeID}
	if result := gjson.ParseBytes(body); result.IsObject() {
		entry.ID = result.Get("id").String()
		entry.Date = lo.CoalesceOrEmpty(result.Get("date").String(), date)
		entry.EntryType = lo.CoalesceOrEmpty(result.Get("entryType").String(), entryType)
		entry.RecipeID = lo.CoalesceOrEmpty(result.Get("recipeId").String(), recipeID)
	}
	return &entry
}

func (c *Client) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Body != "" {
		args = append(args, "response", clip([]byte(statusErr.Body)))
	}
	c.logger.ErrorContext(ctx, msg, args...)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.JoinPath("api", path)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Operation:  method + " /api" + path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// allPages asks Mealie's paginated listings for every row in one response.
func allPages() url.Values {
	return url.Values{"perPage": []string{"-1"}}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func clip(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > logBodyLimit {
		cut := logBodyLimit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "…"
	}
	return s
}
