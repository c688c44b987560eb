package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

func TestHistoryService_AnonymousIsEmpty(t *testing.T) {
	repo := &stubPredictionRepo{}
	repo.saved = append(repo.saved, &domain.Prediction{UserID: "someone"})
	svc := NewHistoryService(repo)

	records, err := svc.RecentPredictions(context.Background(), "")
	if err != nil {
		t.Fatalf("expected success for anonymous caller, got %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty slice, got %v", records)
	}
}

func TestHistoryService_CappedAtTen(t *testing.T) {
	repo := &stubPredictionRepo{}
	for i := 0; i < 15; i++ {
		repo.saved = append(repo.saved, &domain.Prediction{
			ID:     fmt.Sprintf("p%d", i),
			UserID: "user-1",
		})
	}
	svc := NewHistoryService(repo)

	records, err := svc.RecentPredictions(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecentPredictions returned error: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected 10 records, got %d", len(records))
	}
}

func TestHistoryService_OnlyOwnRecords(t *testing.T) {
	repo := &stubPredictionRepo{}
	repo.saved = append(repo.saved,
		&domain.Prediction{ID: "a", UserID: "user-1"},
		&domain.Prediction{ID: "b", UserID: "user-2"},
	)
	svc := NewHistoryService(repo)

	records, err := svc.RecentPredictions(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecentPredictions returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "a" {
		t.Fatalf("expected only user-1 records, got %+v", records)
	}
}
