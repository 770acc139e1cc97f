package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// ExtractHandler handles document extraction uploads.
type ExtractHandler struct {
	extractService service.ExtractService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService}
}

// Extract handles POST /api/v1/extract. Accepts a multipart upload in the
// "pdf" field (PDF, JPG, or PNG despite the field name) and returns the
// structured form-prefill payload.
func (h *ExtractHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "pdf field is required")
		return
	}
	defer func() { _ = file.Close() }()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromName(header.Filename)
	}

	extraction, err := h.extractService.Extract(c.Request.Context(), fileBytes, contentType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, extraction)
}

// contentTypeFromName maps a filename extension to a parser content type.
// Browsers occasionally omit the part Content-Type.
func contentTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return ""
	}
}
