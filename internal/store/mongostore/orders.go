package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListOrders(ctx context.Context, email string) ([]models.Order, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cur, err := s.orders.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *Store) InsertOrder(ctx context.Context, o *models.Order) (store.InsertResult, error) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	res, err := s.orders.InsertOne(ctx, o)
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: hexID(res.InsertedID)}, nil
}

func (s *Store) MarkOrderPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error {
	return markPaid(ctx, s.orders, id, transactionID)
}

func markPaid(ctx context.Context, orders *mongo.Collection, id primitive.ObjectID, transactionID string) error {
	res, err := orders.UpdateOne(ctx,
		bson.M{"_id": id, "paid": bson.M{"$nin": bson.A{true, "true"}}},
		bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrAlreadyPaid
	}
	return nil
}
