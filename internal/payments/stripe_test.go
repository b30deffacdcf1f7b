package payments

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeIntents struct {
	got *stripe.PaymentIntentParams
	err error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_123_secret_456"}, nil
}

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 1999, MinorUnits(19.99))
	assert.EqualValues(t, 1, MinorUnits(0.005))
	assert.EqualValues(t, 10000, MinorUnits(100))
}

func TestCreateIntent(t *testing.T) {
	fake := &fakeIntents{}
	g := &Gateway{intents: fake, currency: "usd"}

	secret, err := g.CreateIntent(context.Background(), 12.34)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)

	require.NotNil(t, fake.got)
	assert.EqualValues(t, 1234, *fake.got.Amount)
	assert.Equal(t, "usd", *fake.got.Currency)
	require.Len(t, fake.got.PaymentMethodTypes, 1)
	assert.Equal(t, "card", *fake.got.PaymentMethodTypes[0])
}

func TestCreateIntent_RejectsNonPositivePrice(t *testing.T) {
	fake := &fakeIntents{}
	g := &Gateway{intents: fake, currency: "usd"}

	for _, price := range []float64{0, -5, 0.001, math.NaN()} {
		_, err := g.CreateIntent(context.Background(), price)
		assert.ErrorIs(t, err, ErrInvalidAmount, "price %v", price)
	}
	assert.Nil(t, fake.got)
}

func TestCreateIntent_WrapsProviderError(t *testing.T) {
	boom := errors.New("card_declined")
	g := &Gateway{intents: &fakeIntents{err: boom}, currency: "eur"}

	_, err := g.CreateIntent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, boom)
}
