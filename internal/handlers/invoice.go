package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/httpx"
	"github.com/diewo77/dashboard-app/internal/models"
	"github.com/diewo77/dashboard-app/internal/services"
	"github.com/diewo77/dashboard-app/internal/view"
)

// invoicesListPath is the logical path of the cached listing view.
const invoicesListPath = "/dashboard/invoices"

var searchSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_@.]`)

// InvoiceHandler exposes the invoice listing and the three mutations. The
// mutations come back from the service as Effect descriptors; applying them
// (cache invalidation, navigation) happens here.
type InvoiceHandler struct {
	DB    *gorm.DB
	Svc   *services.InvoiceService
	Cache *view.Cache
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, cache *view.Cache) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc, Cache: cache}
}

// List: GET /dashboard/invoices with optional q (status or customer name
// filter) and page/limit pagination. The unfiltered first page is served
// through the view cache until a mutation invalidates it.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	cacheable := q == "" && offset == 0 && limit == 50
	if cacheable {
		if body, ok := h.Cache.Get(invoicesListPath); ok {
			httpx.WriteBody(w, http.StatusOK, body)
			return
		}
	}

	dbq := h.DB.Model(&models.Invoice{})
	if q != "" {
		safe := searchSanitizer.ReplaceAllString(q, "")
		like := "%" + strings.ToLower(safe) + "%"
		dbq = dbq.
			Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
			Where("lower(invoices.status) LIKE ? OR lower(customers.name) LIKE ?", like, like)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	var invs []models.Invoice
	if err := dbq.Preload("Customer").Order("invoices.date DESC, invoices.id DESC").
		Limit(limit).Offset(offset).Find(&invs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}

	body, err := json.Marshal(map[string]any{
		"items": invs, "total": total, "limit": limit, "offset": offset,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "encode_error", nil)
		return
	}
	if cacheable {
		h.Cache.Put(invoicesListPath, body)
	}
	httpx.WriteBody(w, http.StatusOK, body)
}

// Create: POST /dashboard/invoices (form submission).
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	eff, state := h.Svc.Create(r.Context(), r.PostForm)
	if len(state.Errors) > 0 {
		httpx.JSON(w, http.StatusUnprocessableEntity, state)
		return
	}
	if state.Message != "" {
		httpx.JSON(w, http.StatusInternalServerError, state)
		return
	}
	h.apply(w, r, eff)
}

// Update: POST /dashboard/invoices/{id}. A strict-parse failure is a fault,
// not form feedback, and surfaces as a bare 400 distinct from the form-error
// shape.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	eff, state, err := h.Svc.Update(r.Context(), id, r.PostForm)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if state.Message != "" {
		httpx.JSON(w, http.StatusInternalServerError, state)
		return
	}
	h.apply(w, r, eff)
}

// Delete: POST /dashboard/invoices/{id}/delete. The operation carries no
// redirect of its own; the handler sends the browser back to the listing,
// which re-renders fresh after the invalidation.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eff, state := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if state.Message != "" {
		httpx.JSON(w, http.StatusInternalServerError, state)
		return
	}
	h.apply(w, r, eff)
	if eff.RedirectTo == "" {
		http.Redirect(w, r, invoicesListPath, http.StatusSeeOther)
	}
}

// apply executes a post-mutation effect descriptor: invalidate the named
// views, then navigate if the operation asks for it.
func (h *InvoiceHandler) apply(w http.ResponseWriter, r *http.Request, eff services.Effect) {
	for _, path := range eff.Invalidate {
		h.Cache.Invalidate(path)
	}
	if eff.RedirectTo != "" {
		http.Redirect(w, r, eff.RedirectTo, http.StatusSeeOther)
	}
}
