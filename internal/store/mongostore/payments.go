package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cur, err := s.payments.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments := []models.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// RecordPayment needs a replica set or sharded cluster: standalone mongod
// rejects multi-document transactions.
func (s *Store) RecordPayment(ctx context.Context, p *models.Payment) (store.InsertResult, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return store.InsertResult{}, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var order models.Order
		if err := s.orders.FindOne(sc, bson.M{"_id": p.OrderID}).Decode(&order); err != nil {
			return nil, notFound(err)
		}
		if order.Paid {
			return nil, store.ErrAlreadyPaid
		}
		if _, err := s.payments.InsertOne(sc, p); err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}
		return nil, markPaid(sc, s.orders, p.OrderID, p.TransactionID)
	})
	if err != nil {
		return store.InsertResult{}, err
	}

	return store.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}
