// Package store declares the persistence contract shared by the mongo and
// sql backends.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrAlreadyPaid = errors.New("order already paid")
)

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type Users interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	InsertUser(ctx context.Context, u *models.User) (InsertResult, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SetUserRole upserts the role of the user keyed by email.
	SetUserRole(ctx context.Context, email string, role models.Role) (UpdateResult, error)
}

type Products interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	InsertProduct(ctx context.Context, p *models.Product) (InsertResult, error)
	// UpsertProduct writes only name and price.
	UpsertProduct(ctx context.Context, id primitive.ObjectID, name string, price float64) (UpdateResult, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

type Orders interface {
	// ListOrders returns every order when email is empty.
	ListOrders(ctx context.Context, email string) ([]models.Order, error)
	FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	InsertOrder(ctx context.Context, o *models.Order) (InsertResult, error)
	MarkOrderPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error
}

type Payments interface {
	ListPayments(ctx context.Context, email string) ([]models.Payment, error)
	// RecordPayment inserts p and marks its order paid in one transaction.
	// ErrNotFound is returned for an unknown order and ErrAlreadyPaid when
	// the order was paid before; in both cases nothing is written.
	RecordPayment(ctx context.Context, p *models.Payment) (InsertResult, error)
}

type Store interface {
	Users
	Products
	Orders
	Payments

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// StoredRole maps a persisted role value onto a known role. Unknown values
// grant nothing and are logged.
func StoredRole(ctx context.Context, email, raw string) models.Role {
	r, err := models.ParseRole(raw)
	if err != nil {
		logging.FromContext(ctx).Warn("unknown_role", "email", email, "role", raw)
	}
	return r
}
