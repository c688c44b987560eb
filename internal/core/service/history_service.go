package service

import (
	"context"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
	"github.com/nutrition5k/nutrition-api/internal/core/ports"
)

// historyLimit caps the history view at the most recent records.
const historyLimit = 10

// HistoryService reads back a user's recent predictions, newest first.
type HistoryService struct {
	repo ports.PredictionRepository
}

func NewHistoryService(repo ports.PredictionRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// RecentPredictions returns up to historyLimit records in reverse
// chronological order. An empty user ID yields an empty list, never an
// error: unauthenticated callers see an empty history.
func (s *HistoryService) RecentPredictions(ctx context.Context, userID string) ([]domain.Prediction, error) {
	if userID == "" {
		return []domain.Prediction{}, nil
	}
	return s.repo.FindRecentByUser(ctx, userID, historyLimit)
}
