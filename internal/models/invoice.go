package models

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the two accepted statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice is a single billing record. The id and date are assigned by the
// server at creation time and never change afterwards; only customer_id,
// amount and status are mutable. Deletion is physical.
type Invoice struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CustomerID string    `gorm:"size:36;index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Amount is stored in minor currency units (cents).
	Amount int64 `gorm:"not null" json:"amount"`

	Status InvoiceStatus `gorm:"size:20;not null" json:"status"`

	// Date is the creation day in ISO format (YYYY-MM-DD).
	Date string `gorm:"size:10;not null" json:"date"`
}

// AmountMajor converts the stored cents back to major currency units,
// e.g. for pre-filling the edit form.
func (i *Invoice) AmountMajor() float64 {
	return float64(i.Amount) / 100
}

// IsPaid returns true once the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
