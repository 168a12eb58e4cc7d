package services

import (
	"context"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/models"
	"github.com/diewo77/dashboard-app/internal/validation"
)

// invoicesPath is the logical listing view every mutation touches.
const invoicesPath = "/dashboard/invoices"

// Effect describes the post-mutation side effects for the calling layer to
// apply. Operations signal staleness and navigation; they never touch the
// cache or the response themselves.
type Effect struct {
	Invalidate []string
	RedirectTo string
}

// State is the form-facing result of a mutation operation. Errors carries
// per-field validation messages, Message a human-readable summary, and Err
// the underlying storage error for logging by the caller.
type State struct {
	Errors  validation.Violations `json:"errors,omitempty"`
	Message string                `json:"message,omitempty"`
	Err     error                 `json:"-"`
}

// OK reports whether the operation succeeded.
func (s State) OK() bool {
	return len(s.Errors) == 0 && s.Message == "" && s.Err == nil
}

// InvoiceService implements the three invoice mutations. The validator is
// passed in explicitly; there is no process-wide schema state.
type InvoiceService struct {
	db        *gorm.DB
	validator validation.InvoiceValidator
}

func NewInvoiceService(db *gorm.DB, v validation.InvoiceValidator) *InvoiceService {
	return &InvoiceService{db: db, validator: v}
}

// Create validates the submitted form leniently and inserts one invoice.
// The id and date are assigned here; any date present in the form is
// ignored. On validation failure nothing is written and no effect is
// produced.
func (s *InvoiceService) Create(ctx context.Context, form url.Values) (Effect, State) {
	in, violations := s.validator.Validate(form)
	if !violations.Empty() {
		return Effect{}, State{
			Errors:  violations,
			Message: "Missing Fields. Failed to Create Invoice.",
		}
	}

	inv := models.Invoice{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Amount:     toCents(in.Amount),
		Status:     models.InvoiceStatus(in.Status),
		Date:       time.Now().UTC().Format("2006-01-02"),
	}
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return Effect{}, State{Message: "Database Error: Failed to create invoice", Err: err}
	}

	return Effect{Invalidate: []string{invoicesPath}, RedirectTo: invoicesPath}, State{}
}

// Update strict-parses the three mutable fields and rewrites them on the row
// with the given id. The id and date are untouched. A parse failure comes
// back as a bare error, not as form state; callers treat it as a fault.
func (s *InvoiceService) Update(ctx context.Context, id string, form url.Values) (Effect, State, error) {
	in, err := s.validator.Parse(form)
	if err != nil {
		return Effect{}, State{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"customer_id": in.CustomerID,
			"amount":      toCents(in.Amount),
			"status":      in.Status,
		}).Error
	if err != nil {
		return Effect{}, State{Message: "Database Error: Failed to update invoice", Err: err}, nil
	}

	return Effect{Invalidate: []string{invoicesPath}, RedirectTo: invoicesPath}, State{}, nil
}

// Delete removes the invoice physically. Deleting an id that is already gone
// is a no-op success, and the listing is invalidated either way. The effect
// carries no redirect: deletion happens from within the listing, which
// simply re-renders.
func (s *InvoiceService) Delete(ctx context.Context, id string) (Effect, State) {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		return Effect{}, State{Message: "Database Error: Failed to delete invoice", Err: err}
	}
	return Effect{Invalidate: []string{invoicesPath}}, State{}
}

// toCents converts a major-unit amount to minor units, rounding to the
// nearest cent.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
