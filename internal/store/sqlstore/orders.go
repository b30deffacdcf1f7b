package sqlstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListOrders(ctx context.Context, email string) ([]models.Order, error) {
	q := s.DB.WithContext(ctx).Model(&orderRecord{})
	if email != "" {
		q = q.Where("email = ?", email)
	}

	var rows []orderRecord
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.model())
	}
	return orders, nil
}

func (s *Store) FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return findOrder(s.DB.WithContext(ctx), id)
}

func findOrder(db *gorm.DB, id primitive.ObjectID) (*models.Order, error) {
	var rec orderRecord
	if err := db.First(&rec, "id = ?", id.Hex()).Error; err != nil {
		return nil, notFound(err)
	}
	o := rec.model()
	return &o, nil
}

func (s *Store) InsertOrder(ctx context.Context, o *models.Order) (store.InsertResult, error) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	rec := orderRecord{
		ID:            o.ID.Hex(),
		Email:         o.Email,
		ProductID:     o.ProductID,
		ProductName:   o.ProductName,
		Price:         o.Price,
		Paid:          bool(o.Paid),
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: rec.ID}, nil
}

func (s *Store) MarkOrderPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error {
	return markPaid(s.DB.WithContext(ctx), id, transactionID)
}

func markPaid(db *gorm.DB, id primitive.ObjectID, transactionID string) error {
	res := db.Model(&orderRecord{}).
		Where("id = ? AND paid = ?", id.Hex(), false).
		Updates(map[string]any{"paid": true, "transaction_id": transactionID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrAlreadyPaid
	}
	return nil
}
