package sqlstore

import (
	"context"
	"time"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

type userRecord struct {
	ID       string `gorm:"primaryKey;size:24"`
	Email    string `gorm:"index;not null"`
	Name     string
	PhotoURL string
	Role     string
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) model(ctx context.Context) models.User {
	return models.User{
		ID:       objectID(r.ID),
		Email:    r.Email,
		Name:     r.Name,
		PhotoURL: r.PhotoURL,
		Role:     store.StoredRole(ctx, r.Email, r.Role),
	}
}

type productRecord struct {
	ID          string  `gorm:"primaryKey;size:24"`
	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Description string
	Image       string
}

func (productRecord) TableName() string { return "products" }

func (r productRecord) model() models.Product {
	return models.Product{
		ID:          objectID(r.ID),
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
	}
}

type orderRecord struct {
	ID            string `gorm:"primaryKey;size:24"`
	Email         string `gorm:"index;not null"`
	ProductID     string
	ProductName   string
	Price         float64 `gorm:"not null"`
	Paid          bool    `gorm:"not null;default:false"`
	TransactionID string
	CreatedAt     time.Time
}

func (orderRecord) TableName() string { return "orders" }

func (r orderRecord) model() models.Order {
	return models.Order{
		ID:            objectID(r.ID),
		Email:         r.Email,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Price:         r.Price,
		Paid:          models.PaidFlag(r.Paid),
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
	}
}

type paymentRecord struct {
	ID            string `gorm:"primaryKey;size:24"`
	OrderID       string `gorm:"index;size:24;not null"`
	Email         string `gorm:"index"`
	Price         float64
	TransactionID string
	CreatedAt     time.Time
}

func (paymentRecord) TableName() string { return "payments" }

func (r paymentRecord) model() models.Payment {
	return models.Payment{
		ID:            objectID(r.ID),
		OrderID:       objectID(r.OrderID),
		Email:         r.Email,
		Price:         r.Price,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
	}
}
