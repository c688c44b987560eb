package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrModelUnavailable = errors.New("model service is not available")
var ErrPredictionFailed = errors.New("prediction failed")

// ModelServiceError reports a failed call to the inference service,
// carrying the upstream error message when one could be obtained.
type ModelServiceError struct {
	Message string
}

func (e *ModelServiceError) Error() string {
	return fmt.Sprintf("model service error: %s", e.Message)
}

// MacronutrientsPerGram is the predicted nutrient density of the dish.
type MacronutrientsPerGram struct {
	Fat     float64 `json:"fat" bson:"fat"`
	Carbs   float64 `json:"carbs" bson:"carbs"`
	Protein float64 `json:"protein" bson:"protein"`
}

// TotalMacronutrients holds per-gram values scaled by a supplied mass.
// Only present when the caller provided a mass.
type TotalMacronutrients struct {
	Fat      float64 `json:"fat" bson:"fat"`
	Carbs    float64 `json:"carbs" bson:"carbs"`
	Protein  float64 `json:"protein" bson:"protein"`
	Calories float64 `json:"calories" bson:"calories"`
}

// PredictionMetadata describes how the inference ran. It deliberately
// has no filename field: the upstream service reports one, and it must
// never reach a client.
type PredictionMetadata struct {
	DeviceUsed   string `json:"device_used" bson:"device_used"`
	MassProvided bool   `json:"mass_provided" bson:"mass_provided"`
}

// PredictionResult is the normalized outcome of one inference call.
type PredictionResult struct {
	MacronutrientsPerGram MacronutrientsPerGram `json:"macronutrients_per_gram"`
	TotalMacronutrients   *TotalMacronutrients  `json:"total_macronutrients,omitempty"`
	Metadata              PredictionMetadata    `json:"metadata"`
}

// Prediction is a persisted history record. Immutable once created.
type Prediction struct {
	ID                    string                `json:"id"`
	UserID                string                `json:"-"`
	Image                 string                `json:"image,omitempty"`
	MacronutrientsPerGram MacronutrientsPerGram `json:"macronutrients_per_gram"`
	Metadata              PredictionMetadata    `json:"metadata"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}
