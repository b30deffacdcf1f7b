package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) InsertProduct(ctx context.Context, p *models.Product) (store.InsertResult, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	res, err := s.products.InsertOne(ctx, p)
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: hexID(res.InsertedID)}, nil
}

func (s *Store) UpsertProduct(ctx context.Context, id primitive.ObjectID, name string, price float64) (store.UpdateResult, error) {
	res, err := s.products.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "price": price}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return store.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.DeleteResult{}, err
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
