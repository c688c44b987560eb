package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nutrition5k/nutrition-api/internal/api/middleware"
	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

type stubHistoryService struct {
	records map[string][]domain.Prediction
}

func (s *stubHistoryService) RecentPredictions(_ context.Context, userID string) ([]domain.Prediction, error) {
	if userID == "" {
		return []domain.Prediction{}, nil
	}
	return s.records[userID], nil
}

func TestHistoryHandler_Authenticated(t *testing.T) {
	e := newEcho()
	svc := &stubHistoryService{records: map[string][]domain.Prediction{
		"user-1": {
			{ID: "p1", UserID: "user-1", CreatedAt: time.Now().UTC()},
			{ID: "p2", UserID: "user-1", CreatedAt: time.Now().UTC().Add(-time.Hour)},
		},
	}}
	h := NewHistoryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "user-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"p1"`) || !strings.Contains(body, `"p2"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

// Without an identity the handler answers success with an empty list.
func TestHistoryHandler_Anonymous(t *testing.T) {
	e := newEcho()
	h := NewHistoryHandler(&stubHistoryService{})

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := strings.TrimSpace(rec.Body.String())
	if body != `{"success":true,"data":[]}` {
		t.Fatalf("expected empty data envelope, got: %s", body)
	}
}
