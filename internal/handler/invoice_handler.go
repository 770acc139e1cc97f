package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/export"
	"gstbill/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	exportBatchLimit = 10000
)

// InvoiceHandler handles invoice generation and register endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices. Returns the rendered PDF as an
// attachment; the computed totals travel in the X-Invoice-* headers so the
// form can show them without a second call.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req domain.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	doc := result.Document
	c.Header("X-Invoice-Tax-Type", doc.TaxType)
	c.Header("X-Invoice-Total", fmt.Sprintf("%.2f", doc.TotalAfterTax))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Invoice_%s.pdf"`,
		export.SanitizeFilename(doc.InvoiceNo)))
	c.Data(http.StatusCreated, "application/pdf", result.PDF)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	limit := parseIntQuery(c, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.invoiceService.ListRegister(c.Request.Context(), limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	if records == nil {
		records = []domain.InvoiceRecord{}
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/invoices/export?format=csv|xlsx
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	records, _, err := h.invoiceService.ListRegister(c.Request.Context(), exportBatchLimit, 0)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, records); err != nil {
			_ = c.Error(err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewCSVWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRecords(records); err != nil {
		return
	}
	w.Flush()
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
