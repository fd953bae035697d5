package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imgtext/internal/middleware"
	"imgtext/internal/service"
)

// ExtractionHandler handles the text extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Extract handles POST /api/v1/extract
// @Summary Extract text from every image on a page
// @Description Fetches the page, discovers its images in document order and
// @Description runs text recognition on each one. Per-image failures are
// @Description reported inline and never fail the request.
// @Tags extraction
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Recognition provider API key"
// @Param request body ExtractRequest true "Target page"
// @Success 200 {object} Response{data=domain.BatchResult} "Ordered per-image results"
// @Failure 400 {object} ErrorResponseBody "Missing API key or invalid URL"
// @Failure 422 {object} ErrorResponseBody "No images found on the page"
// @Failure 502 {object} ErrorResponseBody "Page could not be fetched"
// @Router /api/v1/extract [post]
func (h *ExtractionHandler) Extract(c *gin.Context) {
	credential, err := middleware.GetCredential(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.extractionService.ExtractFromPage(c.Request.Context(), service.ExtractRequest{
		TargetURL:  req.WebsiteURL,
		Credential: credential,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// AnalyzeImage handles POST /api/v1/analyze-image
// @Summary Extract text from a single uploaded image
// @Tags extraction
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Recognition provider API key"
// @Param request body AnalyzeImageRequest true "Base64 image or data URI"
// @Success 200 {object} Response{data=domain.RecognitionOutcome} "Recognized text"
// @Failure 400 {object} ErrorResponseBody "Missing API key or image data"
// @Failure 429 {object} ErrorResponseBody "Provider rate limited"
// @Failure 502 {object} ErrorResponseBody "Recognition failed"
// @Router /api/v1/analyze-image [post]
func (h *ExtractionHandler) AnalyzeImage(c *gin.Context) {
	credential, err := middleware.GetCredential(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var req AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.extractionService.AnalyzeImage(c.Request.Context(), service.AnalyzeRequest{
		ImageData:  req.ImageData,
		Credential: credential,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outcome)
}
