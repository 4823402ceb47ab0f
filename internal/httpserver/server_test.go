package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/cache"
	"go-market-cache/internal/interfaces/mock"
	"go-market-cache/internal/procedure"
)

const testAdminToken = "s3cret"

type echoInput struct {
	Ticker string `json:"ticker" validate:"required"`
	Limit  int    `json:"limit"`
}

type echoOutput struct {
	Ticker string `json:"ticker"`
	Limit  int    `json:"limit"`
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupServer(t *testing.T, database Pinger) (*Server, *mock.MockFastCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := zaptest.NewLogger(t)

	reg := procedure.NewRegistry(logger)
	procedure.Register(reg, "test.echo", func(ctx context.Context, in echoInput) (echoOutput, error) {
		return echoOutput(in), nil
	})
	procedure.Register(reg, "test.fail", func(ctx context.Context, in echoInput) (echoOutput, error) {
		return echoOutput{}, &apierror.UpstreamError{Provider: "cmc", StatusCode: 503, Message: "Service Unavailable"}
	})

	fastCache := mock.NewMockFastCache(ctrl)
	return NewServer(reg, fastCache, cache.NewKeyBuilder(), database, testAdminToken, logger), fastCache
}

func do(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.createRouter().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestServer_HandleProcedure(t *testing.T) {
	s, _ := setupServer(t, nil)

	rr := do(t, s, http.MethodPost, "/api/test.echo", `{"ticker":"BTC/USDT","limit":5}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out echoOutput
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, echoOutput{Ticker: "BTC/USDT", Limit: 5}, out)
}

func TestServer_HandleProcedure_Errors(t *testing.T) {
	s, _ := setupServer(t, nil)

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		code    apierror.Code
		message string
	}{
		{"unknown procedure", "/api/test.nope", `{}`, http.StatusNotFound, apierror.CodeNotFound, `procedure "test.nope" not found`},
		{"invalid json", "/api/test.echo", `{"ticker":`, http.StatusBadRequest, apierror.CodeBadRequest, "request body is not valid JSON"},
		{"validation", "/api/test.echo", `{"limit":1}`, http.StatusBadRequest, apierror.CodeBadRequest, ""},
		{"upstream failure", "/api/test.fail", `{"ticker":"x"}`, http.StatusInternalServerError, apierror.CodeInternal, "503: Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.status, rr.Code)

			body := decodeError(t, rr)
			assert.Equal(t, tt.code, body.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestServer_HandleProcedure_MethodNotAllowed(t *testing.T) {
	s, _ := setupServer(t, nil)

	rr := do(t, s, http.MethodGet, "/api/test.echo", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServer_HandleHealth(t *testing.T) {
	s, _ := setupServer(t, pingerFunc(func(context.Context) error { return nil }))

	rr := do(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.False(t, resp.Time.IsZero())
}

func TestServer_HandleHealth_DatabaseDown(t *testing.T) {
	s, _ := setupServer(t, pingerFunc(func(context.Context) error { return errors.New("connection refused") }))

	rr := do(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "connection refused", resp.Database)
}

func TestServer_Metrics(t *testing.T) {
	s, _ := setupServer(t, nil)

	rr := do(t, s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_CacheDelete_Unauthorized(t *testing.T) {
	s, _ := setupServer(t, nil)

	for name, headers := range map[string]map[string]string{
		"missing header": nil,
		"wrong token":    {"Authorization": "Bearer nope"},
		"wrong scheme":   {"Authorization": "Basic " + testAdminToken},
	} {
		t.Run(name, func(t *testing.T) {
			rr := do(t, s, http.MethodPost, "/admin/cache/delete", `{"key":"k"}`, headers)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, apierror.CodeUnauthorized, decodeError(t, rr).Code)
		})
	}
}

func TestServer_CacheDelete_DisabledWithoutToken(t *testing.T) {
	s, _ := setupServer(t, nil)
	s.adminToken = ""

	rr := do(t, s, http.MethodPost, "/admin/cache/delete", `{"key":"k"}`, map[string]string{"Authorization": "Bearer "})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServer_CacheDelete_ByKey(t *testing.T) {
	s, fastCache := setupServer(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + testAdminToken}

	fastCache.EXPECT().Delete(gomock.Any(), "cmc.getGlobalMetrics:abc").Return(true)

	rr := do(t, s, http.MethodPost, "/admin/cache/delete", `{"key":"cmc.getGlobalMetrics:abc"}`, auth)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CacheDeleteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "cmc.getGlobalMetrics:abc", resp.Key)
}

func TestServer_CacheDelete_ByProcedureCall(t *testing.T) {
	s, fastCache := setupServer(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + testAdminToken}

	expectedKey, err := cache.NewKeyBuilder().Build("test.echo", echoInput{Ticker: "BTC/USDT", Limit: 5})
	require.NoError(t, err)
	fastCache.EXPECT().Delete(gomock.Any(), expectedKey).Return(true)

	rr := do(t, s, http.MethodPost, "/admin/cache/delete",
		`{"procedure":"test.echo","input":{"limit":5,"ticker":"BTC/USDT"}}`, auth)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_CacheDelete_BadRequest(t *testing.T) {
	s, _ := setupServer(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + testAdminToken}

	rr := do(t, s, http.MethodPost, "/admin/cache/delete", `{}`, auth)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodPost, "/admin/cache/delete", `not json`, auth)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
