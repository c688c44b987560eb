package handler

// successResponse is the standard envelope for all 2xx responses.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorResponse mirrors the failure envelope rendered by the central
// error handler; declared here for swagger documentation.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Prediction ---

type predictionRequest struct {
	// Image is a base64 data URL: data:image/<subtype>;base64,<payload>.
	Image string `json:"image" validate:"required,image_dataurl"`
	// Mass is the dish mass in grams, used to compute totals upstream.
	Mass *float64 `json:"mass" validate:"omitempty,gt=0,lte=10000"`
}

type serviceHealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
