package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imgtext/internal/config"
	"imgtext/internal/export"
)

// ExportHandler renders result lists as downloadable files.
type ExportHandler struct {
	sheetName string
	now       func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(cfg *config.ExportConfig) *ExportHandler {
	return &ExportHandler{sheetName: cfg.SheetName, now: time.Now}
}

// Export handles POST /api/v1/export
// @Summary Export results as CSV or XLSX
// @Tags export
// @Accept json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param request body ExportRequest true "Results to export"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format or empty result list"
// @Router /api/v1/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, req.Results, h.sheetName); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(req.Label, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
