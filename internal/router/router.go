package router

import (
	"github.com/gin-gonic/gin"

	"gstbill/internal/handler"
	"gstbill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	healthH *handler.HealthHandler,
	refdataH *handler.RefDataHandler,
	extractH *handler.ExtractHandler,
	invoiceH *handler.InvoiceHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Reference data
	v1.GET("/states", refdataH.ListStates)
	v1.GET("/company", refdataH.GetCompany)
	v1.GET("/products", refdataH.ListProducts)
	v1.POST("/products", refdataH.AddProduct)

	// Document extraction
	v1.POST("/extract", extractH.Extract)

	// Invoice generation and register
	v1.POST("/invoices", invoiceH.Create)
	v1.GET("/invoices", invoiceH.List)
	v1.GET("/invoices/export", invoiceH.Export)

	return r
}
