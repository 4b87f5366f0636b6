package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/config"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/identity"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/version"
)

type testEnv struct {
	t        *testing.T
	handler  http.Handler
	catalog  *catalog.Service
	resolver *identity.Resolver
	trigger  chan struct{}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.NewNop()

	resolver, err := identity.NewResolver("test-secret", identity.WithIssuer("toolshelf"))
	require.NoError(t, err)

	svc := catalog.New(log)
	svc.SeedAdmins([]string{"root"})

	trigger := make(chan struct{}, 1)
	cfg := &config.Config{
		ListenPort:     ":0",
		RequestTimeout: 5 * time.Second,
		RateBurst:      1000,
		RatePerMin:     1000,
	}
	d := deps.Deps{
		Logger:            log,
		StartTime:         time.Now(),
		Build:             version.Info{Version: "test"},
		Catalog:           svc,
		Resolver:          resolver,
		SeedFile:          "seed.yaml",
		SeedReloadTrigger: trigger,
	}

	return &testEnv{
		t:        t,
		handler:  New(cfg, log, d).Handler(),
		catalog:  svc,
		resolver: resolver,
		trigger:  trigger,
	}
}

func (e *testEnv) token(subject string) string {
	tok, err := e.resolver.Issue(subject, time.Minute)
	require.NoError(e.t, err)
	return tok
}

func (e *testEnv) do(method, path, caller string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(caller))
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func figma(category string) domain.EntryInput {
	return domain.EntryInput{
		Name:        "Figma",
		Description: "Collaborative design",
		Category:    category,
		Icon:        "figma.svg",
		URL:         "https://figma.com",
		Featured:    true,
	}
}

func TestProbes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])

	rec = env.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/infra", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory-only", decode[map[string]any](t, rec)["storage_mode"])
}

func TestEntryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/categories", "root", map[string]string{"name": "Design"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, domain.Category{Name: "Design"}, decode[domain.Category](t, rec))

	rec = env.do(http.MethodPost, "/api/entries", "root", figma("design"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[map[string]string](t, rec)["id"]
	require.NotEmpty(t, id)
	assert.Equal(t, "/api/entries/"+id, rec.Header().Get("Location"))

	rec = env.do(http.MethodGet, "/api/entries/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Entry](t, rec)
	assert.Equal(t, "Design", got.Category)
	assert.Equal(t, "Figma", got.Name)

	rec = env.do(http.MethodGet, "/api/entries/featured", "", nil)
	assert.Len(t, decode[[]domain.Entry](t, rec), 1)

	rec = env.do(http.MethodGet, "/api/categories/Design/entries", "", nil)
	assert.Len(t, decode[[]domain.Entry](t, rec), 1)

	rec = env.do(http.MethodGet, "/api/entries/search?q=fig", "", nil)
	assert.Len(t, decode[[]domain.Entry](t, rec), 1)

	upd := figma("image")
	upd.Featured = false
	rec = env.do(http.MethodPut, "/api/entries/"+id, "root", upd)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/entries/featured", "", nil)
	assert.Empty(t, decode[[]domain.Entry](t, rec))

	rec = env.do(http.MethodDelete, "/api/categories/Design", "root", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodDelete, "/api/entries/"+id, "root", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/entries/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, rec).Error.Code)

	rec = env.do(http.MethodGet, "/api/entries", "", nil)
	assert.Empty(t, decode[[]domain.Entry](t, rec))
}

func TestErrorMapping(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		caller string
		body   any
		status int
		code   string
	}{
		{"non admin add entry", http.MethodPost, "/api/entries", "bob", figma("image"), http.StatusForbidden, "unauthorized"},
		{"anonymous add entry", http.MethodPost, "/api/entries", "", figma("image"), http.StatusForbidden, "unauthorized"},
		{"non admin removes default", http.MethodDelete, "/api/categories/image", "bob", nil, http.StatusForbidden, "unauthorized"},
		{"unknown category", http.MethodPost, "/api/entries", "root", figma("nowhere"), http.StatusBadRequest, "invalid_category"},
		{"blank name", http.MethodPost, "/api/entries", "root", domain.EntryInput{Description: "d", Icon: "i", Category: "image"}, http.StatusBadRequest, "invalid_argument"},
		{"unknown field", http.MethodPost, "/api/entries", "root", map[string]any{"name": "x", "bogus": 1}, http.StatusBadRequest, "invalid_argument"},
		{"duplicate category", http.MethodPost, "/api/categories", "root", map[string]string{"name": "IMAGE"}, http.StatusConflict, "duplicate_category"},
		{"blank category", http.MethodPost, "/api/categories", "root", map[string]string{"name": " "}, http.StatusBadRequest, "invalid_argument"},
		{"protected category", http.MethodDelete, "/api/categories/Image", "root", nil, http.StatusConflict, "protected_category"},
		{"missing category", http.MethodDelete, "/api/categories/nope", "root", nil, http.StatusNotFound, "not_found"},
		{"update missing entry", http.MethodPut, "/api/entries/nope", "root", figma("image"), http.StatusNotFound, "not_found"},
		{"remove missing entry", http.MethodDelete, "/api/entries/nope", "root", nil, http.StatusNotFound, "not_found"},
		{"non admin assigns role", http.MethodPut, "/api/users/bob/role", "bob", map[string]string{"role": "admin"}, http.StatusForbidden, "unauthorized"},
		{"unknown role", http.MethodPut, "/api/users/bob/role", "root", map[string]string{"role": "root"}, http.StatusBadRequest, "invalid_argument"},
		{"anonymous me", http.MethodGet, "/api/me/role", "", nil, http.StatusUnauthorized, "unauthenticated"},
		{"non admin seed reload", http.MethodPost, "/api/seed/reload", "bob", nil, http.StatusForbidden, "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.caller, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode[errorBody](t, rec).Error.Code)
		})
	}

	assert.Empty(t, env.catalog.Entries())
}

func TestNonAdminMutationIsRejectedBeforeBodyIsRead(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.catalog.SaveCallerProfile(domain.Caller{Key: "bob"}, domain.Profile{Name: "Bob"}))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/entries"},
		{http.MethodPut, "/api/entries/x"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/users/bob/role"},
	}
	bodies := map[string]any{
		"unknown field": map[string]any{"bogus": 1},
		"not an object": "not json",
		"empty":         nil,
	}

	for _, caller := range []string{"carol", "bob", ""} {
		for _, route := range routes {
			for name, body := range bodies {
				t.Run(caller+" "+route.method+" "+route.path+" "+name, func(t *testing.T) {
					rec := env.do(route.method, route.path, caller, body)
					assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
					assert.Equal(t, "unauthorized", decode[errorBody](t, rec).Error.Code)
				})
			}
		}
	}

	// the same malformed body from an admin is a validation error
	rec := env.do(http.MethodPost, "/api/entries", "root", map[string]any{"bogus": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.catalog.Entries())
}

func TestCategoryInUse(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/categories", "root", map[string]string{"name": "Design"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(http.MethodPost, "/api/entries", "root", figma("Design"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodDelete, "/api/categories/design", "root", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "category_in_use", decode[errorBody](t, rec).Error.Code)

	rec = env.do(http.MethodGet, "/api/categories/counts", "", nil)
	counts := decode[[]catalog.CategoryCount](t, rec)
	require.Len(t, counts, 6)
	assert.Equal(t, catalog.CategoryCount{Name: "Design", Count: 1}, counts[5])
}

func TestInvalidTokenIsRejected(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestRolesAndProfiles(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/me/is-admin", "root", nil)
	assert.True(t, decode[map[string]bool](t, rec)["isAdmin"])
	rec = env.do(http.MethodGet, "/api/me/is-caller-admin", "bob", nil)
	assert.False(t, decode[map[string]bool](t, rec)["isAdmin"])

	rec = env.do(http.MethodGet, "/api/me/role", "bob", nil)
	assert.Equal(t, "guest", decode[map[string]string](t, rec)["role"])

	rec = env.do(http.MethodGet, "/api/me/profile", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = env.do(http.MethodPut, "/api/me/profile", "bob", domain.Profile{Name: "Bob"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/me/role", "bob", nil)
	assert.Equal(t, "user", decode[map[string]string](t, rec)["role"])

	rec = env.do(http.MethodGet, "/api/users/bob/profile", "", nil)
	assert.Equal(t, domain.Profile{Name: "Bob"}, decode[domain.Profile](t, rec))

	rec = env.do(http.MethodPut, "/api/users/bob/role", "root", map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = env.do(http.MethodPut, "/api/users/bob/role", "root", map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/me/is-admin", "bob", nil)
	assert.True(t, decode[map[string]bool](t, rec)["isAdmin"])

	rec = env.do(http.MethodPost, "/api/entries", "bob", figma("image"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]domain.Category](t, rec)
	require.Len(t, cats, len(domain.DefaultCategories))
	for i, c := range cats {
		assert.Equal(t, domain.DefaultCategories[i], c.Name)
		assert.True(t, c.IsDefault)
	}
}

func TestSeedReloadTrigger(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/seed/reload", "root", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = env.do(http.MethodPost, "/api/seed/reload", "root", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	<-env.trigger
}
