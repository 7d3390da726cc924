package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mealie-menu/internal/config"
	"github.com/five82/mealie-menu/internal/menu"
)

type requestLog struct {
	mu    sync.Mutex
	calls []string
	plans []string
}

func (l *requestLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// newMealie serves an empty Mealie that accepts every creation.
func newMealie(t *testing.T) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		log.mu.Lock()
		log.calls = append(log.calls, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/api/groups/mealplans" {
			log.plans = append(log.plans, string(body))
		}
		log.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/foods", "GET /api/recipes":
			_, _ = io.WriteString(w, `{"items":[]}`)
		case "POST /api/foods":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"f1","name":"oats"}`)
		case "POST /api/recipes":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `"oatmeal"`)
		case "POST /api/groups/mealplans":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"p1"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, log
}

func baseOptions(t *testing.T, stdin string) (Options, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		DotEnvPath: filepath.Join(dir, ".env"),
		Stdin:      strings.NewReader(stdin),
		Stdout:     &stdout,
		Stderr:     &stderr,
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}, &stdout, &stderr
}

const oatmealMenu = `{"week": 1, "monday": [{"name": "Oatmeal", "recipeIngredient": ["50 g oats"]}]}`

func TestRun_ImportsMenuFromStdin(t *testing.T) {
	server, log := newMealie(t)
	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, "token")

	opts, stdout, stderr := baseOptions(t, oatmealMenu)
	require.NoError(t, Run(context.Background(), opts))

	assert.Equal(t, []string{
		"GET /api/recipes",
		"GET /api/foods",
		"POST /api/foods",
		"POST /api/recipes",
		"POST /api/groups/mealplans",
	}, log.snapshot())
	require.Len(t, log.plans, 1)
	assert.JSONEq(t, `{"date":"2024-12-30","entryType":"dinner","recipeId":"oatmeal"}`, log.plans[0])

	assert.Contains(t, stdout.String(), "Processing Week 1 Menu (2025)")
	assert.Contains(t, stdout.String(), "Monday (2024-12-30):")
	assert.Contains(t, stdout.String(), "Week 1 processing complete!")
	assert.Contains(t, stderr.String(), "run_id=")
}

func TestRun_YearFlagAndConfiguredMealTypes(t *testing.T) {
	server, log := newMealie(t)
	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, "token")

	opts, _, _ := baseOptions(t, `{"week": 1, "year": 2030, "monday": [{"name": "Oatmeal", "keywords": "porridge"}]}`)
	require.NoError(t, writeFile(opts.ConfigPath, `
[[meal_types]]
keyword = "porridge"
type = "breakfast"
`))
	opts.Year = 2026

	require.NoError(t, Run(context.Background(), opts))
	require.Len(t, log.plans, 1)
	assert.JSONEq(t, `{"date":"2025-12-29","entryType":"breakfast","recipeId":"oatmeal"}`, log.plans[0])
}

func TestRun_MissingTokenFailsBeforeAnyRequest(t *testing.T) {
	server, log := newMealie(t)
	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, "")

	opts, _, _ := baseOptions(t, oatmealMenu)
	err := Run(context.Background(), opts)

	var cfgErr *config.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, config.EnvAPIToken, cfgErr.Key)
	assert.Empty(t, log.snapshot())
}

func TestRun_BadMenuFailsBeforeAnyRequest(t *testing.T) {
	server, log := newMealie(t)
	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, "token")

	opts, _, _ := baseOptions(t, `{"week": `)
	err := Run(context.Background(), opts)

	var inputErr *menu.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Empty(t, log.snapshot())
}

func TestRun_WarnsAboutExpiredToken(t *testing.T) {
	server, _ := newMealie(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "menu-importer",
		"exp": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, token)

	opts, stdout, stderr := baseOptions(t, `{"week": 2}`)
	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, stdout.String(), "MEALIE_API_TOKEN expired on 2025-01-01")
	assert.Contains(t, stderr.String(), "api token has expired")
}

func TestRun_CancelledContext(t *testing.T) {
	server, _ := newMealie(t)
	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvAPIToken, "token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _, _ := baseOptions(t, oatmealMenu)
	err := Run(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolveYear(t *testing.T) {
	now := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, resolveYear(2025, 2030, now))
	assert.Equal(t, 2030, resolveYear(0, 2030, now))
	assert.Equal(t, 2027, resolveYear(0, 0, now))
}

func TestKeywordTable(t *testing.T) {
	assert.Equal(t, menu.DefaultKeywordTable(), keywordTable(nil))
	assert.Equal(t, menu.KeywordTable{{Keyword: "brunch", MealType: menu.Lunch}},
		keywordTable([]config.MealTypeRule{{Keyword: "brunch", Type: "lunch"}}))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
