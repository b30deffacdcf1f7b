package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

type OrderService struct {
	Store  store.Orders
	Events events.Publisher
}

// ownerEmail resolves the email a caller may query. Empty means the caller.
func ownerEmail(caller, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return caller, nil
	}
	if requested != caller {
		return "", ErrForbidden
	}
	return requested, nil
}

func (s *OrderService) ListOrders(ctx context.Context, caller, email string) ([]models.Order, error) {
	owner, err := ownerEmail(caller, email)
	if err != nil {
		return nil, err
	}
	orders, err := s.Store.ListOrders(ctx, owner)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller string, id primitive.ObjectID) (*models.Order, error) {
	o, err := s.Store.FindOrder(ctx, id)
	if err != nil {
		return nil, storeErr("find order", err)
	}
	if o.Email != caller {
		return nil, ErrForbidden
	}
	return o, nil
}

// CreateOrder always stores the order for caller and unpaid.
func (s *OrderService) CreateOrder(ctx context.Context, caller string, o models.Order) (store.InsertResult, error) {
	o.ProductID = strings.TrimSpace(o.ProductID)
	if o.ProductID == "" {
		return store.InsertResult{}, validation("productId is required")
	}
	if o.Price < 0 {
		return store.InsertResult{}, validation("price must be non-negative")
	}

	o.ID = primitive.NilObjectID
	o.Email = caller
	o.Paid = false
	o.TransactionID = ""

	res, err := s.Store.InsertOrder(ctx, &o)
	if err != nil {
		return store.InsertResult{}, storeErr("insert order", err)
	}

	publish(ctx, s.Events, events.TopicOrders, o.ID.Hex(), events.New("order_created", o))
	return res, nil
}
