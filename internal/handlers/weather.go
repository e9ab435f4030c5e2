package handlers

import (
	"errors"
	"net/http"

	"github.com/avaldezm/task-tracker/internal/clients"
	apierrors "github.com/avaldezm/task-tracker/internal/errors"
	"github.com/gin-gonic/gin"
)

// WeatherHandler proxies current-weather lookups to open-meteo.
type WeatherHandler struct {
	client *clients.WeatherClient
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(client *clients.WeatherClient) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// Current returns the current weather for one of the known cities.
func (h *WeatherHandler) Current(c *gin.Context) {
	city := c.DefaultQuery("city", "Guadalajara")

	weather, err := h.client.Current(c.Request.Context(), city)
	if err != nil {
		if errors.Is(err, clients.ErrUnknownCity) {
			apierrors.BadRequest(c, "Unknown city. Try Guadalajara, London or New York.")
			return
		}
		apierrors.UpstreamFailed(c, "Could not fetch the weather. Check the city or the API.")
		return
	}

	c.JSON(http.StatusOK, weather)
}
