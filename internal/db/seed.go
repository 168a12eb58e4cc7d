package db

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/models"
)

// Seed inserts a demo user, a handful of customers and a few invoices.
// It only fills empty tables, so running it repeatedly is safe.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			ID:       uuid.NewString(),
			Name:     "Demo User",
			Email:    "demo@example.com",
			Password: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	var customerCount int64
	if err := db.Model(&models.Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if customerCount > 0 {
		return nil
	}

	customers := []models.Customer{
		{ID: uuid.NewString(), Name: "Evil Rabbit", Email: "evil@rabbit.com"},
		{ID: uuid.NewString(), Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
		{ID: uuid.NewString(), Name: "Lee Robinson", Email: "lee@robinson.com"},
	}
	if err := db.Create(&customers).Error; err != nil {
		return err
	}

	today := time.Now().UTC().Format("2006-01-02")
	invoices := []models.Invoice{
		{ID: uuid.NewString(), CustomerID: customers[0].ID, Amount: 15795, Status: models.InvoiceStatusPending, Date: today},
		{ID: uuid.NewString(), CustomerID: customers[1].ID, Amount: 20348, Status: models.InvoiceStatusPaid, Date: today},
		{ID: uuid.NewString(), CustomerID: customers[2].ID, Amount: 3040, Status: models.InvoiceStatusPaid, Date: today},
	}
	return db.Create(&invoices).Error
}
