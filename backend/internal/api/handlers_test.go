package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/metrics"
	"socialgraph/backend/internal/network"
	apperrors "socialgraph/backend/pkg/errors"
	"go.uber.org/zap"
)

type fakeProjector struct {
	snap network.Snapshot
	err  error
}

func (f *fakeProjector) ProjectSnapshot(ctx context.Context, snap network.Snapshot) (*graph.ProjectionStats, error) {
	f.snap = snap
	if f.err != nil {
		return nil, f.err
	}
	return &graph.ProjectionStats{People: len(snap.People), Friendships: len(snap.Friendships)}, nil
}

func newTestRouter(t *testing.T, projector Projector) (*gin.Engine, *network.SocialGraph) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	g := network.New(zap.NewNop(), network.WithRecorder(metrics.NewRecorder(reg)))
	router := NewRouter(NewHandler(g, projector, zap.NewNop()), reg)
	return router, g
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := do(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_IsEchoed(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestAddPersonEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := do(router, "POST", "/api/people", `{"name":"Alice","attributes":{"age":30}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, map[string]interface{}{"age": 30.0}, body["attributes"])

	w = do(router, "POST", "/api/people", `{"name":"Alice","attributes":{"age":99}}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, "POST", "/api/people", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, "POST", "/api/people", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, "POST", "/api/people", `{"name":"Bob","attributes":{"nested":{"x":1}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, "GET", "/api/people/Alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"age": 30.0}, decode(t, w)["attributes"])
}

func TestUpdatePersonEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	require.Equal(t, http.StatusCreated, do(router, "POST", "/api/people", `{"name":"Alice"}`).Code)

	w := do(router, "PATCH", "/api/people/Alice", `{"attributes":{"age":30}}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, "PATCH", "/api/people/Alice", `{"attributes":{"occupation":"Engineer"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"age": 30.0, "occupation": "Engineer"}, decode(t, w)["attributes"])

	w = do(router, "PATCH", "/api/people/Zed", `{"attributes":{"age":1}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, "PATCH", "/api/people/Alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendshipAndSeparationEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	for _, name := range []string{"Alice", "Bob", "Charlie", "David", "Matthew", "Hermit"} {
		require.Equal(t, http.StatusCreated, do(router, "POST", "/api/people", `{"name":"`+name+`"}`).Code)
	}
	for _, pair := range [][2]string{{"Alice", "Bob"}, {"Bob", "Charlie"}, {"Charlie", "David"}, {"Matthew", "David"}} {
		w := do(router, "POST", "/api/friendships", `{"a":"`+pair[0]+`","b":"`+pair[1]+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Equal(t, http.StatusNotFound, do(router, "POST", "/api/friendships", `{"a":"Alice","b":"Zed"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, "POST", "/api/friendships", `{"a":"Alice","b":"Alice"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, "POST", "/api/friendships", `{"a":"Alice"}`).Code)

	tests := []struct {
		query   string
		degree  float64
		outcome string
	}{
		{"from=Matthew&to=David", 1, "connected"},
		{"from=Alice&to=David", 3, "connected"},
		{"from=Alice&to=Charlie", 2, "connected"},
		{"from=Alice&to=Alice", 0, "connected"},
		{"from=Alice&to=Hermit", -1, "unreachable"},
		{"from=Alice&to=Zed", -1, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(router, "GET", "/api/separation?"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.degree, body["degree"])
			assert.Equal(t, tt.outcome, body["outcome"])
		})
	}

	assert.Equal(t, http.StatusBadRequest, do(router, "GET", "/api/separation?from=Alice", "").Code)

	w := do(router, "GET", "/api/people", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6.0, decode(t, w)["count"])
}

func TestProjectionEndpoint(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		assert.Equal(t, http.StatusServiceUnavailable, do(router, "POST", "/api/projection", "").Code)
	})

	t.Run("projects current snapshot", func(t *testing.T) {
		fp := &fakeProjector{}
		router, g := newTestRouter(t, fp)
		ctx := context.Background()
		require.NoError(t, g.AddPerson(ctx, "Alice", nil))
		require.NoError(t, g.AddPerson(ctx, "Bob", nil))
		require.NoError(t, g.AddFriendship(ctx, "Alice", "Bob"))

		w := do(router, "POST", "/api/projection", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2.0, decode(t, w)["people"])
		assert.Equal(t, []network.Friendship{{A: "Alice", B: "Bob"}}, fp.snap.Friendships)
	})

	t.Run("graph failure maps to bad gateway", func(t *testing.T) {
		fp := &fakeProjector{err: apperrors.NewGraphQueryFailed("MERGE", errors.New("down"))}
		router, _ := newTestRouter(t, fp)
		assert.Equal(t, http.StatusBadGateway, do(router, "POST", "/api/projection", "").Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	require.Equal(t, http.StatusCreated, do(router, "POST", "/api/people", `{"name":"Alice"}`).Code)

	w := do(router, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `socialgraph_mutations_total{operation="add_person",result="ok"} 1`)
}
