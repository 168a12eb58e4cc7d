package models

// Customer is the party an invoice bills. Invoices reference customers by
// id; the customer listing feeds the invoice form's customer dropdown.
type Customer struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	ImageURL string `gorm:"size:500" json:"image_url,omitempty"`
}
