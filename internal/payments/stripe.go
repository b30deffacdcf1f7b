// Package payments creates card payment intents with Stripe.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrInvalidAmount = errors.New("price must be positive")
	ErrProvider      = errors.New("payment provider error")
)

type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
}

type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Gateway struct {
	intents  intentAPI
	currency string
}

func NewGateway(secretKey, currency string) *Gateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Gateway{intents: sc.PaymentIntents, currency: currency}
}

// MinorUnits converts a decimal price into the provider's integer amount.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (g *Gateway) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := MinorUnits(price)
	if math.IsNaN(price) || math.IsInf(price, 0) || amount <= 0 {
		return "", ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return pi.ClientSecret, nil
}
