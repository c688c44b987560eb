package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nutrition5k/nutrition-api/internal/api/metrics"
	"github.com/nutrition5k/nutrition-api/internal/api/middleware"
	"github.com/nutrition5k/nutrition-api/internal/core/domain"
	"github.com/nutrition5k/nutrition-api/internal/core/ports"
)

// PredictionHandler handles macronutrient prediction requests.
type PredictionHandler struct {
	service ports.PredictionService
}

func NewPredictionHandler(service ports.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// PredictMacronutrients runs a meal photo through the inference service.
//
// @Summary      Predict macronutrients from a base64 image
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      predictionRequest  true  "Base64 image data URL and optional mass in grams"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /prediction/macronutrients [post]
func (h *PredictionHandler) PredictMacronutrients(c echo.Context) error {
	start := time.Now()

	var req predictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.PredictionsTotal.WithLabelValues("validation_error").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _ := c.Get(middleware.CtxUserID).(string)

	result, err := h.service.Predict(c.Request().Context(), userID, req.Image, req.Mass)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues(predictionFailureLabel(err)).Inc()
		return err
	}

	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: result})
}

// Health reports whether the inference service is reachable and has its
// model loaded.
//
// @Summary      Prediction service health
// @Tags         prediction
// @Produce      json
// @Success      200  {object}  serviceHealthResponse
// @Failure     503  {object}  serviceHealthResponse
// @Router       /prediction/health [get]
func (h *PredictionHandler) Health(c echo.Context) error {
	healthy := h.service.HealthCheck(c.Request().Context())

	status := http.StatusOK
	message := "Service is healthy"
	label := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		message = "Model service is not available"
		label = "unhealthy"
	}
	metrics.ModelHealthChecksTotal.WithLabelValues(label).Inc()

	return c.JSON(status, serviceHealthResponse{
		Success:   healthy,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func predictionFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrModelUnavailable):
		return "unavailable"
	default:
		var mse *domain.ModelServiceError
		if errors.As(err, &mse) {
			return "upstream_error"
		}
		return "error"
	}
}
