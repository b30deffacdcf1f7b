package sqlstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	q := s.DB.WithContext(ctx).Model(&paymentRecord{})
	if email != "" {
		q = q.Where("email = ?", email)
	}

	var rows []paymentRecord
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, r.model())
	}
	return payments, nil
}

func (s *Store) RecordPayment(ctx context.Context, p *models.Payment) (store.InsertResult, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findOrder(tx, p.OrderID)
		if err != nil {
			return err
		}
		if order.Paid {
			return store.ErrAlreadyPaid
		}

		rec := paymentRecord{
			ID:            p.ID.Hex(),
			OrderID:       p.OrderID.Hex(),
			Email:         p.Email,
			Price:         p.Price,
			TransactionID: p.TransactionID,
			CreatedAt:     p.CreatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return markPaid(tx, p.OrderID, p.TransactionID)
	})
	if err != nil {
		return store.InsertResult{}, err
	}

	return store.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}
