// internal/api/server_test.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sake-reco/internal/catalog"
	"sake-reco/internal/common/config"
	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/matching"
	"sake-reco/internal/models"
	"sake-reco/internal/questionnaire"
	refreshcatalog "sake-reco/internal/workers/catalog/refresh-catalog"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"
	findsimilarsake "sake-reco/internal/workers/recommendation/find-similar-sake"
	matchsake "sake-reco/internal/workers/recommendation/match-sake"
	parsepreferences "sake-reco/internal/workers/recommendation/parse-preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context) ([]models.CatalogItem, error)

func (f fetchFunc) Fetch(ctx context.Context) ([]models.CatalogItem, error) { return f(ctx) }

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func testItems() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "dassai", Name: "獺祭", StyleTags: []string{"モダン"}, TasteTags: []string{"フルーティ", "甘口"},
			ServeTemp: []models.TempKey{models.TempCold},
			Purchase:  &models.Purchase{AffiliateURL: "https://aff.example/dassai"}},
		{ID: "kokuryu", Name: "黒龍", StyleTags: []string{"食中酒"}, TasteTags: []string{"辛口", "キレ"},
			ServeTemp: []models.TempKey{models.TempRoom, models.TempWarm}},
		{ID: "jikon", Name: "而今", StyleTags: []string{"モダン"}, TasteTags: []string{"フルーティ"},
			ServeTemp: []models.TempKey{models.TempCold, models.TempRoom}},
	}
}

type testEnv struct {
	server  *Server
	store   *catalog.Store
	handler http.Handler
}

func newTestEnv(t *testing.T, fetch fetchFunc, rateLimit int) *testEnv {
	t.Helper()
	log := logger.NewTestLogger(t)
	store := catalog.NewStore(fetch, log)
	validator, err := validation.NewDefaultValidator()
	require.NoError(t, err)

	handlers := Handlers{
		Refresh:  refreshcatalog.NewHandler(&refreshcatalog.Config{Timeout: time.Second}, store, validator, nil, log),
		Parse:    parsepreferences.NewHandler(&parsepreferences.Config{Timeout: time.Second}, validator, nil, log),
		Match:    matchsake.NewHandler(&matchsake.Config{Timeout: time.Second, QuestionnaireLimit: 20}, store, validator, nil, log),
		Similar:  findsimilarsake.NewHandler(&findsimilarsake.Config{Timeout: time.Second, DefaultLimit: 5}, store, validator, nil, log),
		Response: buildsakeresponse.NewHandler(&buildsakeresponse.Config{Timeout: time.Second, ValidateOutput: true}, validator, nil, log),
	}
	sessions := NewSessionStore(time.Hour, func(p models.Preferences) []models.RankedResult {
		return matching.Match(store.Items(), p, matching.QuestionnaireOptions())
	}, log, TrackCatalog(store.Snapshot))

	srv := NewServer(config.ServerConfig{RefreshRateLimit: rateLimit}, store, handlers, sessions, log)
	return &testEnv{server: srv, store: store, handler: srv.Router()}
}

func loadedEnv(t *testing.T) *testEnv {
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		return testItems(), nil
	}, 0)
	_, err := env.store.Load(context.Background())
	require.NoError(t, err)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// ==========================
// Health and catalog
// ==========================

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		return testItems(), nil
	}, 0)

	rec, _ := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, err := env.store.Load(context.Background())
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var state catalog.State
	decodeData(t, body, &state)
	assert.Equal(t, 3, state.Count)
	assert.NotNil(t, state.LoadedAt)
}

func TestMetricsEndpoint(t *testing.T) {
	env := loadedEnv(t)
	rec, _ := env.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sake_catalog_items")
}

func TestGetCatalog(t *testing.T) {
	env := loadedEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp catalogResponse
	decodeData(t, body, &resp)
	assert.Equal(t, 3, resp.State.Count)
	assert.Len(t, resp.Items, 3)

	_, body = env.do(t, http.MethodGet, "/api/v1/catalog?items=false", "")
	resp = catalogResponse{}
	decodeData(t, body, &resp)
	assert.Nil(t, resp.Items)
}

func TestRefreshCatalog(t *testing.T) {
	fail := false
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		if fail {
			return nil, apperrors.NewCatalogHTTPStatusError(500)
		}
		return testItems(), nil
	}, 2)

	rec, body := env.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out refreshcatalog.Output
	decodeData(t, body, &out)
	assert.True(t, out.OK)
	assert.Equal(t, 3, out.Count)

	fail = true
	rec, body = env.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out = refreshcatalog.Output{}
	decodeData(t, body, &out)
	assert.False(t, out.OK)
	assert.Equal(t, "HTTP 500", out.Error)
	assert.Equal(t, 3, out.Count, "previous catalog kept")

	rec, _ = env.do(t, http.MethodPost, "/api/v1/catalog/refresh", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

// ==========================
// Matching and similarity
// ==========================

func TestMatch(t *testing.T) {
	env := loadedEnv(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		validate   func(t *testing.T, body envelope)
	}{
		{
			name:       "simple filter form",
			path:       "/api/v1/match",
			body:       `{"temperature":"cold","tagQuery":"フルーティ"}`,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body envelope) {
				var out buildsakeresponse.Output
				decodeData(t, body, &out)
				require.Equal(t, 2, out.Count)
				assert.Equal(t, "dassai", out.Items[0].ID)
				assert.True(t, out.Items[0].PurchaseEnabled)
				assert.Equal(t, "jikon", out.Items[1].ID)
				assert.False(t, out.Items[1].PurchaseEnabled)
				assert.NotEmpty(t, out.RequestID)
				assert.Empty(t, out.Message)
			},
		},
		{
			name:       "empty body returns the whole catalog",
			path:       "/api/v1/match",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body envelope) {
				var out buildsakeresponse.Output
				decodeData(t, body, &out)
				assert.Equal(t, 3, out.Count)
			},
		},
		{
			name:       "no matches",
			path:       "/api/v1/match?mode=questionnaire",
			body:       `{"tagQuery":"スパークリング"}`,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body envelope) {
				var out buildsakeresponse.Output
				decodeData(t, body, &out)
				assert.Equal(t, 0, out.Count)
				assert.Equal(t, questionnaire.MsgNoMatches, out.Message)
			},
		},
		{
			name:       "unknown temperature",
			path:       "/api/v1/match",
			body:       `{"temperature":"hot"}`,
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body envelope) {
				require.NotNil(t, body.Error)
				assert.Equal(t, string(apperrors.ErrCodeInvalidPreferences), body.Error.Code)
			},
		},
		{
			name:       "unknown mode",
			path:       "/api/v1/match?mode=fuzzy",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			path:       "/api/v1/match",
			body:       `{"temperature":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, body)
			}
		})
	}
}

func TestMatch_WhileCatalogFailed(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		return nil, apperrors.NewCatalogNotOKError()
	}, 0)
	_, err := env.store.Load(context.Background())
	require.Error(t, err)

	rec, body := env.do(t, http.MethodPost, "/api/v1/match", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out buildsakeresponse.Output
	decodeData(t, body, &out)
	assert.Equal(t, "API returned ok=false", out.Error)
	assert.Equal(t, "API returned ok=false", out.Message)
}

func TestSimilar(t *testing.T) {
	env := loadedEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/items/dassai/similar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out findsimilarsake.Output
	decodeData(t, body, &out)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "jikon", out.Results[0].Item.ID)
	assert.Equal(t, []string{"味わいが「フルーティ」", "スタイルが「モダン」", "「冷やして」で楽しめる"}, out.Results[0].MatchedPoints)

	rec, body = env.do(t, http.MethodGet, "/api/v1/items/ghost/similar", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(apperrors.ErrCodeAnchorNotFound), body.Error.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/items/dassai/similar?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimilar_LimitIsCapped(t *testing.T) {
	items := make([]models.CatalogItem, 12)
	for i := range items {
		items[i] = models.CatalogItem{ID: fmt.Sprintf("s%d", i), TasteTags: []string{"辛口"}}
	}
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		return items, nil
	}, 0)
	_, err := env.store.Load(context.Background())
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodGet, "/api/v1/items/s0/similar?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out findsimilarsake.Output
	decodeData(t, body, &out)
	assert.Equal(t, 5, out.Count)
	assert.Len(t, out.Results, 5)
}

// ==========================
// Sessions
// ==========================

func TestSessionFlow(t *testing.T) {
	env := loadedEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var view SessionView
	decodeData(t, body, &view)
	assert.Equal(t, "scene", view.Step)
	assert.Equal(t, 1, view.StepNumber)
	assert.Len(t, view.Options, len(questionnaire.SceneOptions))
	assert.Len(t, view.Transcript, 2)
	id := view.ID

	rec, body = env.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/actions", `{"type":"chooseScene","value":"モダン"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	assert.Equal(t, "direction", view.Step)

	rec, body = env.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/actions", `{"actions":[
		{"type":"chooseDirection","value":"フルーティ"},
		{"type":"confirmBody"},
		{"type":"toggleTemp","value":"冷やして"},
		{"type":"confirmTemp"},
		{"type":"setFreeText","value":"甘口 が好き"},
		{"type":"submit"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	assert.True(t, view.Completed)
	assert.Equal(t, 5, view.StepNumber)
	assert.Empty(t, view.Options)
	require.Len(t, view.Results, 2)
	assert.Equal(t, "dassai", view.Results[0].ID)
	assert.Equal(t, 1, view.Results[0].Rank)
	assert.Equal(t, "条件まとめ：シーン：モダン｜方向：フルーティ｜温度：冷やして", view.Summary)

	rec, body = env.do(t, http.MethodGet, "/api/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	assert.True(t, view.Completed)

	rec, body = env.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/rematch", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	assert.Len(t, view.Results, 2)

	rec, body = env.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	assert.Equal(t, "scene", view.Step)
	assert.Empty(t, view.Results)
	assert.Len(t, view.Transcript, 2)
}

func TestSession_RematchesAfterCatalogRefresh(t *testing.T) {
	env := newTestEnv(t, func(ctx context.Context) ([]models.CatalogItem, error) {
		return testItems(), nil
	}, 0)

	_, body := env.do(t, http.MethodPost, "/api/v1/sessions", "")
	var view SessionView
	decodeData(t, body, &view)
	id := view.ID

	rec, body := env.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/actions", `{"actions":[
		{"type":"skipScene"},
		{"type":"chooseDirection","value":"辛口"},
		{"type":"confirmBody"},
		{"type":"confirmTemp"},
		{"type":"skip"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	require.True(t, view.Completed)
	assert.Empty(t, view.Results)
	assert.Equal(t, questionnaire.MsgNoMatches, view.Message)

	_, err := env.store.Load(context.Background())
	require.NoError(t, err)

	rec, body = env.do(t, http.MethodGet, "/api/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = SessionView{}
	decodeData(t, body, &view)
	require.Len(t, view.Results, 1)
	assert.Equal(t, "kokuryu", view.Results[0].ID)
	assert.Empty(t, view.Message)
}

func TestSessionErrors(t *testing.T) {
	env := loadedEnv(t)

	_, body := env.do(t, http.MethodPost, "/api/v1/sessions", "")
	var view SessionView
	decodeData(t, body, &view)
	id := view.ID

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{
			name: "action for a later step", method: http.MethodPost, path: "/api/v1/sessions/" + id + "/actions",
			body: `{"type":"submit"}`, wantStatus: http.StatusConflict, wantCode: apperrors.ErrCodeInvalidStepAction,
		},
		{
			name: "unknown option", method: http.MethodPost, path: "/api/v1/sessions/" + id + "/actions",
			body: `{"type":"chooseScene","value":"宇宙"}`, wantStatus: http.StatusBadRequest, wantCode: apperrors.ErrCodeUnknownOption,
		},
		{
			name: "no action", method: http.MethodPost, path: "/api/v1/sessions/" + id + "/actions",
			body: `{}`, wantStatus: http.StatusBadRequest, wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name: "rematch before completion", method: http.MethodPost, path: "/api/v1/sessions/" + id + "/rematch",
			wantStatus: http.StatusConflict, wantCode: apperrors.ErrCodeInvalidStepAction,
		},
		{
			name: "unknown session", method: http.MethodGet, path: "/api/v1/sessions/nope",
			wantStatus: http.StatusNotFound, wantCode: apperrors.ErrCodeSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, string(tt.wantCode), body.Error.Code)
		})
	}

	// Rejected actions leave the session where it was.
	_, body = env.do(t, http.MethodGet, "/api/v1/sessions/"+id, "")
	view = SessionView{}
	decodeData(t, body, &view)
	assert.Equal(t, "scene", view.Step)
}
