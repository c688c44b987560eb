package ports

import (
	"context"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

// ModelClient is the outbound interface to the external inference service.
type ModelClient interface {
	// Health reports whether the service is reachable, healthy, and has
	// its model loaded. It never returns an error.
	Health(ctx context.Context) bool
	// Predict sends the raw image bytes (and an optional positive mass
	// in grams) and returns the normalized result.
	Predict(ctx context.Context, image []byte, format string, mass *float64) (*domain.PredictionResult, error)
}

type PredictionService interface {
	Predict(ctx context.Context, userID, image string, mass *float64) (*domain.PredictionResult, error)
	HealthCheck(ctx context.Context) bool
}

// HistoryService serves the per-user prediction history view.
type HistoryService interface {
	RecentPredictions(ctx context.Context, userID string) ([]domain.Prediction, error)
}
