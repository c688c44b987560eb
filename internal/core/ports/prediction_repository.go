package ports

import (
	"context"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

// PredictionRepository persists prediction history records.
type PredictionRepository interface {
	Save(ctx context.Context, p *domain.Prediction) (*domain.Prediction, error)
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Prediction, error)
}
