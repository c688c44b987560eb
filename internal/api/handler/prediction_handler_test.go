package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nutrition5k/nutrition-api/internal/api/middleware"
	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

type stubPredictionService struct {
	healthy    bool
	result     *domain.PredictionResult
	err        error
	lastUserID string
	lastMass   *float64
}

func (s *stubPredictionService) Predict(_ context.Context, userID, _ string, mass *float64) (*domain.PredictionResult, error) {
	s.lastUserID = userID
	s.lastMass = mass
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubPredictionService) HealthCheck(_ context.Context) bool {
	return s.healthy
}

func TestPredictionHandler_Success(t *testing.T) {
	e := newEcho()
	svc := &stubPredictionService{result: &domain.PredictionResult{
		MacronutrientsPerGram: domain.MacronutrientsPerGram{Fat: 0.05, Carbs: 0.2, Protein: 0.1},
		Metadata:              domain.PredictionMetadata{DeviceUsed: "cpu", MassProvided: true},
	}}
	h := NewPredictionHandler(svc)

	body := fmt.Sprintf(`{"image":%q,"mass":150}`, imageDataURL(2048))
	c, rec := postJSON(e, "/prediction/macronutrients", body)
	c.Set(middleware.CtxUserID, "user-1")

	if err := h.PredictMacronutrients(c); err != nil {
		t.Fatalf("PredictMacronutrients returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUserID != "user-1" {
		t.Fatalf("identity not forwarded: %q", svc.lastUserID)
	}
	if svc.lastMass == nil || *svc.lastMass != 150 {
		t.Fatalf("mass not forwarded: %v", svc.lastMass)
	}

	resp := rec.Body.String()
	if !strings.Contains(resp, `"mass_provided":true`) {
		t.Fatalf("expected mass_provided in response: %s", resp)
	}
	if strings.Contains(resp, "filename") {
		t.Fatalf("filename must never appear in the response: %s", resp)
	}
}

func TestPredictionHandler_ValidationFailure(t *testing.T) {
	e := newEcho()
	h := NewPredictionHandler(&stubPredictionService{})

	for name, body := range map[string]string{
		"missing image": `{}`,
		"tiny image":    fmt.Sprintf(`{"image":%q}`, imageDataURL(99)),
		"bad mass":      fmt.Sprintf(`{"image":%q,"mass":-1}`, imageDataURL(2048)),
	} {
		c, _ := postJSON(e, "/prediction/macronutrients", body)
		err := h.PredictMacronutrients(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestPredictionHandler_ServiceUnavailable(t *testing.T) {
	e := newEcho()
	h := NewPredictionHandler(&stubPredictionService{err: domain.ErrModelUnavailable})

	body := fmt.Sprintf(`{"image":%q}`, imageDataURL(2048))
	c, _ := postJSON(e, "/prediction/macronutrients", body)

	if err := h.PredictMacronutrients(c); !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable to propagate, got %v", err)
	}
}

func TestPredictionHandler_Health(t *testing.T) {
	e := newEcho()

	cases := []struct {
		healthy  bool
		wantCode int
		wantMsg  string
	}{
		{true, http.StatusOK, "Service is healthy"},
		{false, http.StatusServiceUnavailable, "Model service is not available"},
	}
	for _, tc := range cases {
		h := NewPredictionHandler(&stubPredictionService{healthy: tc.healthy})

		req := httptest.NewRequest(http.MethodGet, "/prediction/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Health(c); err != nil {
			t.Fatalf("Health returned error: %v", err)
		}
		if rec.Code != tc.wantCode {
			t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, tc.wantMsg) || !strings.Contains(body, "timestamp") {
			t.Fatalf("unexpected body: %s", body)
		}
	}
}
