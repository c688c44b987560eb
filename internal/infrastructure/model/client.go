// Package model implements the HTTP client for the external
// macronutrient inference service.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

const healthTimeout = 5 * time.Second
const defaultPredictTimeout = 30 * time.Second

// Config captures the settings for reaching the inference service.
type Config struct {
	BaseURL string
	// Timeout bounds the predict call. Defaults to 30s when zero.
	Timeout time.Duration
}

// Client talks to the inference service's /health and /predict endpoints.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPredictTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		timeout: timeout,
		http:    &http.Client{},
		logger:  logger,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Health reports true only when the service answers within 5 seconds,
// declares itself healthy, and has its model loaded. Any transport
// error or malformed body yields false.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("model service health check failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy" && health.ModelLoaded
}

// rawMetadata is the upstream metadata shape. The filename the service
// echoes back is decoded here and dropped during mapping.
type rawMetadata struct {
	Filename     string `json:"filename"`
	DeviceUsed   string `json:"device_used"`
	MassProvided bool   `json:"mass_provided"`
}

type rawPrediction struct {
	MacronutrientsPerGram domain.MacronutrientsPerGram `json:"macronutrients_per_gram"`
	TotalMacronutrients   *domain.TotalMacronutrients  `json:"total_macronutrients"`
	Metadata              rawMetadata                  `json:"metadata"`
}

type upstreamError struct {
	Error string `json:"error"`
}

// Predict uploads the image as a multipart form and returns the
// normalized result. The mass part is only attached when mass is
// present and strictly positive.
func (c *Client) Predict(ctx context.Context, image []byte, format string, mass *float64) (*domain.PredictionResult, error) {
	body, contentType, err := buildForm(image, format, mass)
	if err != nil {
		return nil, domain.ErrPredictionFailed
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, domain.ErrPredictionFailed
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("model service predict call failed")
		return nil, &domain.ModelServiceError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ModelServiceError{Message: readUpstreamError(resp)}
	}

	var raw rawPrediction
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &domain.ModelServiceError{Message: "malformed prediction response"}
	}

	return &domain.PredictionResult{
		MacronutrientsPerGram: raw.MacronutrientsPerGram,
		TotalMacronutrients:   raw.TotalMacronutrients,
		Metadata: domain.PredictionMetadata{
			DeviceUsed:   raw.Metadata.DeviceUsed,
			MassProvided: raw.Metadata.MassProvided,
		},
	}, nil
}

// buildForm assembles the multipart body: an "image" file part carrying
// the declared content type, plus an optional "mass" text part.
func buildForm(image []byte, format string, mass *float64) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="image.%s"`, format))
	h.Set("Content-Type", "image/"+format)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}

	if mass != nil && *mass > 0 {
		if err := w.WriteField("mass", strconv.FormatFloat(*mass, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// readUpstreamError extracts the `error` field from a failure body,
// falling back to the HTTP status when the body is unusable.
func readUpstreamError(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var ue upstreamError
		if json.Unmarshal(raw, &ue) == nil && ue.Error != "" {
			return ue.Error
		}
	}
	return resp.Status
}
