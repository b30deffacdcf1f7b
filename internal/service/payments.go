package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/payments"
	"github.com/Skotchmaster/bazar/internal/store"
)

type PaymentStore interface {
	store.Orders
	store.Payments
}

type PaymentService struct {
	Store  PaymentStore
	Events events.Publisher
	// Gateway is nil when no provider key is configured.
	Gateway payments.IntentCreator
}

func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if !(price > 0) {
		return "", validation("price must be positive")
	}
	if s.Gateway == nil {
		return "", ErrUnavailable
	}
	secret, err := s.Gateway.CreateIntent(ctx, price)
	switch {
	case errors.Is(err, payments.ErrInvalidAmount):
		return "", errors.Join(ErrValidation, err)
	case err != nil:
		return "", errors.Join(ErrUpstream, err)
	}
	return secret, nil
}

type Confirmation struct {
	OrderID       primitive.ObjectID
	Price         float64
	TransactionID string
}

// ConfirmPayment records the payment and marks its order paid atomically.
// The caller must own the order. A paid order yields ErrConflict.
func (s *PaymentService) ConfirmPayment(ctx context.Context, caller string, in Confirmation) (store.InsertResult, error) {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if in.TransactionID == "" {
		return store.InsertResult{}, validation("transactionId is required")
	}
	if in.Price < 0 {
		return store.InsertResult{}, validation("price must be non-negative")
	}

	order, err := s.Store.FindOrder(ctx, in.OrderID)
	if err != nil {
		return store.InsertResult{}, storeErr("find order", err)
	}
	if order.Email != caller {
		return store.InsertResult{}, ErrForbidden
	}

	p := models.Payment{
		OrderID:       in.OrderID,
		Email:         caller,
		Price:         in.Price,
		TransactionID: in.TransactionID,
	}
	res, err := s.Store.RecordPayment(ctx, &p)
	if err != nil {
		return store.InsertResult{}, storeErr("record payment", err)
	}

	publish(ctx, s.Events, events.TopicPayments, p.OrderID.Hex(), events.New("payment_recorded", p))
	return res, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, caller, email string) ([]models.Payment, error) {
	owner, err := ownerEmail(caller, email)
	if err != nil {
		return nil, err
	}
	list, err := s.Store.ListPayments(ctx, owner)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	return list, nil
}

type ReconcileReport struct {
	Scanned  int
	Repaired int
	Missing  int
}

// Reconcile marks every order that has a recorded payment as paid.
func (s *PaymentService) Reconcile(ctx context.Context) (ReconcileReport, error) {
	l := logging.FromContext(ctx).With("svc", "payments.reconcile")

	all, err := s.Store.ListPayments(ctx, "")
	if err != nil {
		return ReconcileReport{}, storeErr("list payments", err)
	}

	var rep ReconcileReport
	for _, p := range all {
		rep.Scanned++

		order, err := s.Store.FindOrder(ctx, p.OrderID)
		if errors.Is(err, store.ErrNotFound) {
			rep.Missing++
			l.Warn("reconcile_missing_order", "payment", p.ID.Hex(), "order", p.OrderID.Hex())
			continue
		}
		if err != nil {
			return rep, storeErr("find order", err)
		}
		if order.Paid {
			continue
		}

		err = s.Store.MarkOrderPaid(ctx, p.OrderID, p.TransactionID)
		if errors.Is(err, store.ErrAlreadyPaid) {
			continue
		}
		if err != nil {
			return rep, storeErr("mark order paid", err)
		}
		rep.Repaired++
		l.Info("reconcile_repaired", "order", p.OrderID.Hex(), "transaction", p.TransactionID)
	}
	return rep, nil
}
