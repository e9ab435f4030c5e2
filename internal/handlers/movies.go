package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avaldezm/task-tracker/internal/clients"
	apierrors "github.com/avaldezm/task-tracker/internal/errors"
	"github.com/gin-gonic/gin"
)

// MovieHandler proxies movie searches to TMDB.
type MovieHandler struct {
	client *clients.MovieClient
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(client *clients.MovieClient) *MovieHandler {
	return &MovieHandler{client: client}
}

// Search runs a movie search. An empty result set is a 404; upstream and
// configuration failures are 500s.
func (h *MovieHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		apierrors.BadRequest(c, "Query parameter is required")
		return
	}

	results, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrMoviesNotConfigured):
			apierrors.InternalError(c, "API token is not configured")
		case errors.Is(err, clients.ErrNoMoviesFound):
			apierrors.NotFound(c, "No movies found")
		default:
			apierrors.InternalError(c, "Could not fetch data")
		}
		return
	}

	c.JSON(http.StatusOK, results)
}
