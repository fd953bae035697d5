package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"imgtext/internal/config"
	"imgtext/internal/domain"
	"imgtext/internal/export"
	"imgtext/internal/handler"
	"imgtext/internal/middleware"
	"imgtext/internal/service"
	"imgtext/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newExtractionContext(t *testing.T, path string, body interface{}, credential string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, path, body)
	if credential != "" {
		c.Set(middleware.ContextKeyCredential, credential)
	}
	return c, w
}

// --- Extract ---

func TestExtractionHandler_Extract_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	expected := &domain.BatchResult{
		Results: []domain.ExtractionResult{
			{ImageURL: "https://a.com/1.png", Text: "hello", Success: true, Outcome: domain.OutcomeRecognized},
		},
		SuccessCount: 1,
		Total:        1,
	}
	mockSvc.On("ExtractFromPage", mock.Anything, service.ExtractRequest{
		TargetURL:  "https://a.com/",
		Credential: "key",
	}).Return(expected, nil)

	c, w := newExtractionContext(t, "/api/v1/extract", map[string]string{"websiteUrl": "https://a.com/"}, "key")
	h.Extract(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["successCount"])
	assert.EqualValues(t, 0, data["failureCount"])
	assert.NotContains(t, w.Body.String(), "_count")
	results := data["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "https://a.com/1.png", results[0].(map[string]interface{})["imageUrl"])
	mockSvc.AssertExpectations(t)
}

func TestExtractionHandler_Extract_NoCredentialInContext(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	c, w := newExtractionContext(t, "/api/v1/extract", map[string]string{"websiteUrl": "https://a.com/"}, "")
	h.Extract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_API_KEY", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "ExtractFromPage", mock.Anything, mock.Anything)
}

func TestExtractionHandler_Extract_BadJSON(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextKeyCredential, "key")

	h.Extract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestExtractionHandler_Extract_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissingTarget, http.StatusBadRequest, "MISSING_WEBSITE_URL"},
		{domain.ErrInvalidTarget, http.StatusBadRequest, "INVALID_WEBSITE_URL"},
		{domain.ErrNoImagesFound, http.StatusUnprocessableEntity, "NO_IMAGES_FOUND"},
		{fmt.Errorf("%w: %w", domain.ErrPageFetchFailed, errors.New("dial")), http.StatusBadGateway, "PAGE_FETCH_FAILED"},
		{errors.New("unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mockSvc := new(mocks.MockExtractionService)
			h := handler.NewExtractionHandler(mockSvc)
			mockSvc.On("ExtractFromPage", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newExtractionContext(t, "/api/v1/extract", map[string]string{"websiteUrl": "x"}, "key")
			h.Extract(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

// --- AnalyzeImage ---

func TestExtractionHandler_AnalyzeImage_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewExtractionHandler(mockSvc)

	mockSvc.On("AnalyzeImage", mock.Anything, mock.MatchedBy(func(req service.AnalyzeRequest) bool {
		return req.ImageData == "data:image/png;base64,aGVsbG8=" && req.Credential == "key"
	})).Return(&domain.RecognitionOutcome{Kind: domain.OutcomeRecognized, Text: "hello"}, nil)

	c, w := newExtractionContext(t, "/api/v1/analyze-image", map[string]string{"imageData": "data:image/png;base64,aGVsbG8="}, "key")
	h.AnalyzeImage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "hello", data["text"])
	assert.Equal(t, "recognized", data["outcome"])
	mockSvc.AssertExpectations(t)
}

func TestExtractionHandler_AnalyzeImage_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissingImageData, http.StatusBadRequest, "MISSING_IMAGE_DATA"},
		{domain.ErrInvalidImageData, http.StatusBadRequest, "INVALID_IMAGE_DATA"},
		{fmt.Errorf("%w: %w", domain.ErrRateLimited, errors.New("429")), http.StatusTooManyRequests, "RATE_LIMITED"},
		{fmt.Errorf("%w: %w", domain.ErrRecognitionFailed, errors.New("boom")), http.StatusBadGateway, "RECOGNITION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mockSvc := new(mocks.MockExtractionService)
			h := handler.NewExtractionHandler(mockSvc)
			mockSvc.On("AnalyzeImage", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newExtractionContext(t, "/api/v1/analyze-image", map[string]string{"imageData": ""}, "key")
			h.AnalyzeImage(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

// --- Export ---

func exportBody() map[string]interface{} {
	return map[string]interface{}{
		"label": "a.com",
		"results": []domain.ExtractionResult{
			{ImageURL: "https://a.com/1.png", Text: "hello", Success: true, Outcome: domain.OutcomeRecognized},
		},
	}
}

func TestExportHandler_CSV(t *testing.T) {
	h := handler.NewExportHandler(&config.ExportConfig{SheetName: "Results"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/export?format=csv", exportBody())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="a_com_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(body[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://a.com/1.png", rows[1][1])
}

func TestExportHandler_XLSX(t *testing.T) {
	h := handler.NewExportHandler(&config.ExportConfig{SheetName: "Results"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/export?format=xlsx", exportBody())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.FormatXLSX.ContentType(), w.Header().Get("Content-Type"))
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestExportHandler_Errors(t *testing.T) {
	h := handler.NewExportHandler(&config.ExportConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/export?format=pdf", exportBody())
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decode(t, w).Error.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/export", map[string]interface{}{"results": []interface{}{}})
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_EXPORT", decode(t, w).Error.Code)
}

// --- Health ---

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
