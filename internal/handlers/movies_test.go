package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avaldezm/task-tracker/internal/clients"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newMovieRouter(upstreamURL, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMovieHandler(clients.NewMovieClient(upstreamURL, token))
	r := gin.New()
	r.GET("/api/movies/search", handler.Search)
	return r
}

func TestMovieSearch_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/3/search/movie", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "alien", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":348,"title":"Alien"},{"id":679,"title":"Aliens"}]}`))
	}))
	defer upstream.Close()

	r := newMovieRouter(upstream.URL, "test-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=alien", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	require.Equal(t, "Alien", results[0]["title"])
}

func TestMovieSearch_EmptyQuery(t *testing.T) {
	r := newMovieRouter("http://unused.invalid", "test-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=%20%20", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Query parameter is required")
}

func TestMovieSearch_MissingToken(t *testing.T) {
	r := newMovieRouter("http://unused.invalid", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=alien", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "API token is not configured")
}

func TestMovieSearch_NoResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer upstream.Close()

	r := newMovieRouter(upstream.URL, "test-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=zzzzzz", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "No movies found")
}

func TestMovieSearch_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	r := newMovieRouter(upstream.URL, "test-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=alien", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Could not fetch data")
}
