package model

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(Config{BaseURL: url, Timeout: timeout}, zerolog.Nop())
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
		want bool
	}{
		{"healthy and loaded", `{"status":"healthy","model_loaded":true}`, 200, true},
		{"model not loaded", `{"status":"healthy","model_loaded":false}`, 200, false},
		{"not healthy", `{"status":"starting","model_loaded":true}`, 200, false},
		{"error status", `{"error":"boom"}`, 500, false},
		{"malformed body", `not json`, 200, false},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("%s: unexpected path %s", tc.name, r.URL.Path)
			}
			w.WriteHeader(tc.code)
			_, _ = w.Write([]byte(tc.body))
		}))

		got := newTestClient(srv.URL, time.Second).Health(context.Background())
		if got != tc.want {
			t.Errorf("%s: Health() = %v, want %v", tc.name, got, tc.want)
		}
		srv.Close()
	}
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	if newTestClient(srv.URL, time.Second).Health(context.Background()) {
		t.Fatalf("Health() must be false when the service is unreachable")
	}
}

func TestPredict_MultipartForm(t *testing.T) {
	image := []byte(strings.Repeat("a", 512))
	mass := 150.0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "image.png" {
			t.Errorf("filename = %q, want image.png", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("content type = %q, want image/png", ct)
		}
		if header.Size != 512 {
			t.Errorf("image size = %d, want 512", header.Size)
		}
		if got := r.FormValue("mass"); got != "150" {
			t.Errorf("mass = %q, want 150", got)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"macronutrients_per_gram": map[string]float64{"fat": 0.05, "carbs": 0.2, "protein": 0.1},
			"total_macronutrients":    map[string]float64{"fat": 7.5, "carbs": 30, "protein": 15, "calories": 247.5},
			"metadata":                map[string]any{"filename": "image.png", "device_used": "cuda", "mass_provided": true},
		})
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, time.Second).Predict(context.Background(), image, "png", &mass)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}

	if result.MacronutrientsPerGram.Protein != 0.1 {
		t.Fatalf("unexpected per-gram values: %+v", result.MacronutrientsPerGram)
	}
	if result.TotalMacronutrients == nil || result.TotalMacronutrients.Calories != 247.5 {
		t.Fatalf("unexpected totals: %+v", result.TotalMacronutrients)
	}
	if !result.Metadata.MassProvided || result.Metadata.DeviceUsed != "cuda" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}

	// The upstream filename must not survive into the serialized result.
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if strings.Contains(string(raw), "filename") {
		t.Fatalf("filename leaked into result: %s", raw)
	}
}

func TestPredict_OmitsMassWhenAbsentOrNonPositive(t *testing.T) {
	for name, mass := range map[string]*float64{
		"nil mass":  nil,
		"zero mass": func() *float64 { z := 0.0; return &z }(),
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("%s: parse multipart: %v", name, err)
			}
			if _, ok := r.MultipartForm.Value["mass"]; ok {
				t.Errorf("%s: mass part must be absent", name)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"macronutrients_per_gram": map[string]float64{"fat": 0, "carbs": 0, "protein": 0},
				"metadata":                map[string]any{"device_used": "cpu", "mass_provided": false},
			})
		}))

		if _, err := newTestClient(srv.URL, time.Second).Predict(context.Background(), []byte("0123456789"), "jpg", mass); err != nil {
			t.Errorf("%s: Predict returned error: %v", name, err)
		}
		srv.Close()
	}
}

func TestPredict_UpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid file type"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Predict(context.Background(), []byte("0123456789"), "jpg", nil)
	var mse *domain.ModelServiceError
	if !errors.As(err, &mse) {
		t.Fatalf("expected ModelServiceError, got %v", err)
	}
	if mse.Message != "Invalid file type" {
		t.Fatalf("expected upstream message, got %q", mse.Message)
	}
}

func TestPredict_UpstreamErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Predict(context.Background(), []byte("0123456789"), "jpg", nil)
	var mse *domain.ModelServiceError
	if !errors.As(err, &mse) {
		t.Fatalf("expected ModelServiceError, got %v", err)
	}
	if mse.Message == "" {
		t.Fatalf("expected a fallback message")
	}
}

func TestPredict_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 50*time.Millisecond).Predict(context.Background(), []byte("0123456789"), "jpg", nil)
	var mse *domain.ModelServiceError
	if !errors.As(err, &mse) {
		t.Fatalf("expected ModelServiceError on timeout, got %v", err)
	}
}
