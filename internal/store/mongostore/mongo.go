// Package mongostore implements store.Store on top of a MongoDB database.
//
// Collections mirror the resources one to one: users, products, orders and
// payments. Documents are decoded into the types of the models package.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Skotchmaster/bazar/internal/store"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"
	paymentsCollection = "payments"
)

type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
	payments *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to uri and pings the primary before returning.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	clientOpts := options.Client().ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return New(client, dbName), nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		db:       db,
		users:    db.Collection(usersCollection),
		products: db.Collection(productsCollection),
		orders:   db.Collection(ordersCollection),
		payments: db.Collection(paymentsCollection),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func hexID(v interface{}) string {
	if id, ok := v.(primitive.ObjectID); ok {
		return id.Hex()
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func updateResult(res *mongo.UpdateResult) store.UpdateResult {
	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}
}
