package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
	"github.com/nutrition5k/nutrition-api/internal/core/ports"
	"github.com/nutrition5k/nutrition-api/internal/pkg/dataurl"
)

// PredictionService proxies validated images to the external inference
// service and records successful results in the caller's history.
type PredictionService struct {
	client ports.ModelClient
	repo   ports.PredictionRepository
	logger zerolog.Logger
}

func NewPredictionService(client ports.ModelClient, repo ports.PredictionRepository, logger zerolog.Logger) *PredictionService {
	return &PredictionService{client: client, repo: repo, logger: logger}
}

// Predict turns a data-URL image (and optional mass in grams) into a
// normalized nutrition prediction. The health gate must pass before any
// transfer is attempted; an unhealthy service fails fast with
// ErrModelUnavailable.
func (s *PredictionService) Predict(ctx context.Context, userID, image string, mass *float64) (*domain.PredictionResult, error) {
	if !s.client.Health(ctx) {
		return nil, domain.ErrModelUnavailable
	}

	raw, err := dataurl.Decode(image)
	if err != nil {
		s.logger.Error().Err(err).Msg("image decode failed after validation")
		return nil, domain.ErrPredictionFailed
	}

	result, err := s.client.Predict(ctx, raw, dataurl.Format(image), mass)
	if err != nil {
		return nil, err
	}

	s.saveHistory(ctx, userID, image, result)
	return result, nil
}

// HealthCheck reports the inference service's availability. It never errors.
func (s *PredictionService) HealthCheck(ctx context.Context) bool {
	return s.client.Health(ctx)
}

// saveHistory persists the result for the history view. A storage
// failure is logged but does not fail the prediction the caller is
// already holding.
func (s *PredictionService) saveHistory(ctx context.Context, userID, image string, result *domain.PredictionResult) {
	if userID == "" {
		return
	}

	_, err := s.repo.Save(ctx, &domain.Prediction{
		UserID:                userID,
		Image:                 image,
		MacronutrientsPerGram: result.MacronutrientsPerGram,
		Metadata:              result.Metadata,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to persist prediction history")
	}
}
