package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dcf/internal/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := cache.NewMemoryStore(time.Hour, 0)
	t.Cleanup(func() { _ = store.Close() })
	return NewRouter(Deps{
		Store:     store,
		PresetDir: filepath.Join("..", "..", "examples", "presets"),
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "no error object in %v", body)
	return e["code"].(string)
}

func TestHealth(t *testing.T) {
	w, body := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestRunAndFetchAnalysis(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/analyses", map[string]any{
		"preset_id": "reference_office",
		"options":   map[string]any{"include_cash_flows": true},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Len(t, body["input_hash"], 64)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 10, summary["holding_years"])
	assert.InDelta(t, 0.0394, summary["irr_asset"], 1e-3)
	assert.Equal(t, "newton-raphson", summary["irr_method_asset"])
	assert.Equal(t, "3.94%", summary["display"].(map[string]any)["irr_asset"])

	flows := body["cash_flows"].(map[string]any)
	assert.Len(t, flows["asset"], 11)
	assert.Nil(t, body["years"])

	warnings := body["warnings"].([]any)
	require.Len(t, warnings, 1)
	assert.Equal(t, "loan_term", warnings[0].(map[string]any)["field"])

	w, body = do(t, r, http.MethodGet, "/api/v1/analyses/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, body["id"])
	assert.Len(t, body["years"], 10)
	assert.Len(t, body["debt_schedule"], 10)
}

func TestRunAnalysis_OverridesPreset(t *testing.T) {
	w, body := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyses", map[string]any{
		"preset_id": "reference_office",
		"input":     map[string]any{"loan_amount": 0},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := body["summary"].(map[string]any)
	assert.Equal(t, summary["irr_asset"], summary["irr_equity"])
	assert.EqualValues(t, 0, summary["remaining_debt_at_exit"])
}

func TestRunAnalysis_Errors(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/analyses", map[string]any{
		"preset_id": "reference_office",
		"input":     map[string]any{"vacancy": 1.5},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, body))
	assert.Equal(t, "vacancy", body["error"].(map[string]any)["details"].(map[string]any)["field"])

	w, body = do(t, r, http.MethodPost, "/api/v1/analyses", map[string]any{
		"preset_id": "reference_office",
		"input":     map[string]any{"inflation": 0, "price_decay": 1},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "MARKET_INCONSISTENCY", errorCode(t, body))

	w, body = do(t, r, http.MethodPost, "/api/v1/analyses", map[string]any{"preset_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PRESET_NOT_FOUND", errorCode(t, body))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	w, body := do(t, newTestRouter(t), http.MethodGet, "/api/v1/analyses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestCompareAnalyses(t *testing.T) {
	w, body := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyses/compare", map[string]any{
		"preset_id": "reference_office",
		"variations": []map[string]any{
			{"name": "base", "input": map[string]any{}},
			{"name": "broken", "input": map[string]any{"years": 0}},
			{"name": "cheap", "input": map[string]any{"p0": 40_000_000}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rows := body["comparison"].([]any)
	require.Len(t, rows, 3)
	names := make([]string, 0, 3)
	for _, row := range rows {
		names = append(names, row.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"cheap", "base", "broken"}, names)

	broken := rows[2].(map[string]any)
	assert.EqualValues(t, 3, broken["rank"])
	assert.Equal(t, "INVALID_INPUT", broken["error"].(map[string]any)["code"])
	assert.Nil(t, broken["summary"])
}

func TestCompareAnalyses_RequiresVariations(t *testing.T) {
	w, _ := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyses/compare", map[string]any{
		"preset_id": "reference_office",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidate(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodPost, "/api/v1/validate", map[string]any{
		"preset_id": "reference_office",
		"input":     map[string]any{"inflation": 0.5},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["is_valid"])
	assert.Empty(t, body["errors"])
	assert.NotEmpty(t, body["warnings"])

	w, body = do(t, r, http.MethodPost, "/api/v1/validate", map[string]any{
		"input": map[string]any{"p0": -1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_valid"])
	assert.NotEmpty(t, body["errors"])
}

func TestPresets(t *testing.T) {
	r := newTestRouter(t)

	w, body := do(t, r, http.MethodGet, "/api/v1/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	presets := body["presets"].([]any)
	require.NotEmpty(t, presets)
	assert.Equal(t, "reference_office", presets[0].(map[string]any)["id"])

	w, body = do(t, r, http.MethodGet, "/api/v1/presets/reference_office", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 35, body["input"].(map[string]any)["loan_term"])

	w, _ = do(t, r, http.MethodGet, "/api/v1/presets/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresets_MissingDirIsEmpty(t *testing.T) {
	r := NewRouter(Deps{PresetDir: filepath.Join(t.TempDir(), "none")})
	w, body := do(t, r, http.MethodGet, "/api/v1/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["presets"])
}

func TestIRRMethods(t *testing.T) {
	w, body := do(t, newTestRouter(t), http.MethodGet, "/api/v1/irr-methods", nil)
	require.Equal(t, http.StatusOK, w.Code)
	methods := body["methods"].([]any)
	require.Len(t, methods, 3)
	assert.Equal(t, "newton-raphson", methods[0].(map[string]any)["name"])
	assert.Equal(t, "grid-search", methods[2].(map[string]any)["name"])
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	r := NewRouter(Deps{StaticDir: dir, PresetDir: t.TempDir()})

	req := httptest.NewRequest(http.MethodGet, "/analyses/123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")

	w2, body := do(t, r, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w2.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}
