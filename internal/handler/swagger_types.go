package handler

import "imgtext/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ExtractRequest represents the page extraction request body.
type ExtractRequest struct {
	WebsiteURL string `json:"websiteUrl" example:"https://example.com/blog/post"`
}

// AnalyzeImageRequest represents the single image analysis request body.
type AnalyzeImageRequest struct {
	ImageData string `json:"imageData" example:"data:image/png;base64,iVBORw0KGgo..."`
}

// ExportRequest represents the export request body. Label seeds the filename.
type ExportRequest struct {
	Results []domain.ExtractionResult `json:"results"`
	Label   string                    `json:"label" example:"example.com"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
