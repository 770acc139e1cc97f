package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/refdata"
)

// RefDataHandler serves the reference data backing the invoice form: the GST
// state list, the supplier profile, and the product catalog.
type RefDataHandler struct {
	states  *gst.StateMap
	company *domain.CompanyInfo
	catalog *refdata.Catalog
}

// NewRefDataHandler creates a new RefDataHandler.
func NewRefDataHandler(states *gst.StateMap, company *domain.CompanyInfo, catalog *refdata.Catalog) *RefDataHandler {
	return &RefDataHandler{states: states, company: company, catalog: catalog}
}

// ListStates handles GET /api/v1/states
func (h *RefDataHandler) ListStates(c *gin.Context) {
	RespondOK(c, h.states.Entries())
}

// GetCompany handles GET /api/v1/company
func (h *RefDataHandler) GetCompany(c *gin.Context) {
	RespondOK(c, h.company)
}

// ListProducts handles GET /api/v1/products
func (h *RefDataHandler) ListProducts(c *gin.Context) {
	RespondOK(c, h.catalog.Products())
}

type addProductRequest struct {
	Name    string `json:"name" binding:"required"`
	HSNCode string `json:"hsn_code" binding:"required"`
}

// AddProduct handles POST /api/v1/products
func (h *RefDataHandler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	product, err := h.catalog.Add(req.Name, req.HSNCode)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, product)
}
