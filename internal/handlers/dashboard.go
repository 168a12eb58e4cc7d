package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/httpx"
	"github.com/diewo77/dashboard-app/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// Summary: GET /dashboard – counts, paid/pending totals in cents, and the
// five latest invoices.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var invoiceCount, customerCount int64
	h.DB.Model(&models.Invoice{}).Count(&invoiceCount)
	h.DB.Model(&models.Customer{}).Count(&customerCount)

	var paid, pending int64
	h.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid)
	h.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pending)

	var latest []models.Invoice
	if err := h.DB.Preload("Customer").
		Order("date DESC, id DESC").Limit(5).Find(&latest).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"invoices":  invoiceCount,
			"customers": customerCount,
			"paid":      paid,
			"pending":   pending,
		},
		"latest_invoices": latest,
	})
}
