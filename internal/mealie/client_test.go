package mealie

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewClient(server.URL+"/", "test-token", WithLogger(logger))
	require.NoError(t, err)
	return c, &logs
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient("http://localhost:9000", "  ")
	require.Error(t, err)
}

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("mealie.lan:9925")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "mealie.lan:9925", u.Host)

	u, err = parseBaseURL("https://example.com/mealie/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/mealie", u.String())
	assert.Equal(t, "https://example.com/mealie/api/foods", u.JoinPath("api", "/foods").String())

	_, err = parseBaseURL("   ")
	require.Error(t, err)
}

func TestClient_SendsAuthHeadersAndPaths(t *testing.T) {
	var got *http.Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		writeJSON(w, http.StatusOK, `{"items":[]}`)
	})

	c.ListIngredients(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/foods", got.URL.Path)
	assert.Equal(t, "-1", got.URL.Query().Get("perPage"))
	assert.Equal(t, "Bearer test-token", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Contains(t, got.Header.Get("User-Agent"), "mealie-menu/")
}

func TestListIngredients_NormalizesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array", `[{"id":"1","name":"oats"},"salt",{"id":"3","title":"milk"}]`, []string{"oats", "salt", "milk"}},
		{"items", `{"page":1,"items":[{"id":"1","name":"oats"},42]}`, []string{"oats", "42"}},
		{"keyed", `{"a":{"id":"a","name":"oats"},"b":"salt","c":"","d":0,"e":false,"f":null}`, []string{"oats", "salt"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			})
			foods := c.ListIngredients(context.Background())
			names := make([]string, 0, len(foods))
			for _, f := range foods {
				names = append(names, f.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestListIngredients_FailuresYieldEmpty(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	assert.Empty(t, c.ListIngredients(context.Background()))
	assert.Contains(t, logs.String(), "fetch ingredients failed")
	assert.Nil(t, c.FindIngredientByName(context.Background(), "oats"))

	c, logs = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `"not a listing"`)
	})
	assert.Empty(t, c.ListIngredients(context.Background()))
	assert.Contains(t, logs.String(), "unexpected ingredient payload")
}

func TestListIngredients_TransportErrorYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url, "token", WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	assert.Empty(t, c.ListIngredients(context.Background()))
	assert.Empty(t, c.ListRecipes(context.Background()))
}

func TestFindIngredientByName_CaseInsensitiveTrimmed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[{"id":"7","name":"ajvár"},{"id":"8","name":"Oats"}]}`)
	})

	food := c.FindIngredientByName(context.Background(), "  Ajvár ")
	require.NotNil(t, food)
	assert.Equal(t, "7", food.ID)

	food = c.FindIngredientByName(context.Background(), "OATS")
	require.NotNil(t, food)
	assert.Equal(t, "8", food.ID)

	assert.Nil(t, c.FindIngredientByName(context.Background(), "salt"))
}

func TestEnsureIngredientExists_FindsOrCreates(t *testing.T) {
	var posted []foodRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, `{"items":[{"id":"1","name":"oats"}]}`)
		case http.MethodPost:
			var req foodRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			posted = append(posted, req)
			writeJSON(w, http.StatusCreated, `{"id":"2","name":"`+req.Name+`"}`)
		}
	})

	food, created := c.EnsureIngredientExists(context.Background(), "Oats")
	require.NotNil(t, food)
	assert.False(t, created)
	assert.Empty(t, posted)

	food, created = c.EnsureIngredientExists(context.Background(), "milk")
	require.NotNil(t, food)
	assert.True(t, created)
	assert.Equal(t, "2", food.ID)
	require.Len(t, posted, 1)
	assert.Equal(t, foodRequest{Name: "milk", Description: "Auto-created ingredient: milk"}, posted[0])
}

func TestEnsureIngredientExists_CreateFailure(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, `[]`)
			return
		}
		writeJSON(w, http.StatusBadRequest, `{"detail":"duplicate"}`)
	})
	food, created := c.EnsureIngredientExists(context.Background(), "milk")
	assert.Nil(t, food)
	assert.False(t, created)
	assert.Contains(t, logs.String(), "create ingredient failed")
}

func TestListRecipes_UnwrapsItems(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"items":[{"id":"r1","slug":"oatmeal","name":"Oatmeal"},"junk"]}`)
	})

	recipes := c.ListRecipes(context.Background())
	require.Len(t, recipes, 1)
	assert.Equal(t, Recipe{ID: "r1", Slug: "oatmeal", Name: "Oatmeal", Raw: json.RawMessage(`{"id":"r1","slug":"oatmeal","name":"Oatmeal"}`)}, recipes[0])

	found := c.FindRecipeByName(context.Background(), " oatmeal")
	require.NotNil(t, found)
	assert.Equal(t, "r1", found.Identifier())
	assert.Nil(t, c.FindRecipeByName(context.Background(), "Goulash"))
}

func TestListRecipes_UnexpectedShape(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"name":"Oatmeal"}]`)
	})
	assert.Empty(t, c.ListRecipes(context.Background()))
	assert.Contains(t, logs.String(), "unexpected recipe listing payload")
}

func TestCreateRecipe_NormalizesResponses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   string
		wantSlug string
	}{
		{"record", `{"id":"r1","slug":"oatmeal","name":"Oatmeal"}`, "r1", "oatmeal"},
		{"identifier", `"oatmeal"`, "oatmeal", ""},
		{"array", `[{"id":"r2","name":"Oatmeal"}]`, "r2", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got RecipePayload
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				writeJSON(w, http.StatusCreated, tc.body)
			})

			recipe := c.CreateRecipe(context.Background(), RecipePayload{Name: "Oatmeal", Settings: DefaultRecipeSettings()})
			require.NotNil(t, recipe)
			assert.Equal(t, tc.wantID, recipe.ID)
			assert.Equal(t, tc.wantSlug, recipe.Slug)
			assert.Equal(t, "Oatmeal", recipe.Name)
			assert.Equal(t, "Oatmeal", got.Name)
			assert.True(t, got.Settings.Public)
		})
	}
}

func TestCreateRecipe_UnknownShapeAndErrors(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	assert.Nil(t, c.CreateRecipe(context.Background(), RecipePayload{Name: "Oatmeal"}))
	assert.Contains(t, logs.String(), "unexpected recipe creation response")

	c, logs = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{"detail":"recipeYield invalid"}`)
	})
	assert.Nil(t, c.CreateRecipe(context.Background(), RecipePayload{Name: "Oatmeal"}))
	assert.Contains(t, logs.String(), "create recipe failed")
	assert.Contains(t, logs.String(), "recipeYield invalid")
	assert.Contains(t, logs.String(), "returned status 422")
}

func TestCreateMealPlanEntry(t *testing.T) {
	var got mealPlanRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/groups/mealplans", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, `{"id":42,"date":"2025-01-06","entryType":"dinner","recipeId":"r1"}`)
	})

	entry := c.CreateMealPlanEntry(context.Background(), "2025-01-06", "dinner", "r1")
	require.NotNil(t, entry)
	assert.Equal(t, mealPlanRequest{Date: "2025-01-06", EntryType: "dinner", RecipeID: "r1"}, got)
	assert.Equal(t, MealPlanEntry{ID: "42", Date: "2025-01-06", EntryType: "dinner", RecipeID: "r1"}, *entry)
}

func TestCreateMealPlanEntry_ErrorLogsBody(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"detail":"not allowed"}`)
	})
	assert.Nil(t, c.CreateMealPlanEntry(context.Background(), "2025-01-06", "lunch", "r1"))
	assert.Contains(t, logs.String(), "create meal plan entry failed")
	assert.Contains(t, logs.String(), "not allowed")
}

func TestRecipeIdentifierFallsBackToSlug(t *testing.T) {
	assert.Equal(t, "oatmeal", Recipe{Slug: "oatmeal"}.Identifier())
	assert.Equal(t, "", Recipe{}.Identifier())
}

func TestClip_KeepsRunesWhole(t *testing.T) {
	short := `{"name":"ajvár"}`
	assert.Equal(t, short, clip([]byte(short)))

	long := "a" + strings.Repeat("á", logBodyLimit)
	got := clip([]byte(long))
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len(strings.TrimSuffix(got, "…")), logBodyLimit)
	assert.Equal(t, logBodyLimit-1, len(strings.TrimSuffix(got, "…")))
}
