package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func newIntegrationStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI is required for mongo store tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Open(ctx, uri, "bazar_test_"+uuid.NewString()[:8])
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.db.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestMongoStore_ProductRoundTrip(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	p := models.Product{Name: "kettle", Price: 19.99}
	res, err := s.InsertProduct(ctx, &p)
	require.NoError(t, err)

	id, err := models.ParseID(res.InsertedID)
	require.NoError(t, err)

	got, err := s.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kettle", got.Name)
	assert.Equal(t, 19.99, got.Price)

	del, err := s.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = s.FindProduct(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMongoStore_SetUserRoleUpserts(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	res, err := s.SetUserRole(ctx, "boss@bazar.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.UpsertedCount)

	u, err := s.FindUserByEmail(ctx, "boss@bazar.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestMongoStore_RecordPayment(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	order := models.Order{Email: "buyer@bazar.com", ProductID: "p1", Price: 5, CreatedAt: time.Now().UTC()}
	_, err := s.InsertOrder(ctx, &order)
	require.NoError(t, err)

	pay := models.Payment{OrderID: order.ID, Email: "buyer@bazar.com", Price: 5, TransactionID: "pi_1", CreatedAt: time.Now().UTC()}
	_, err = s.RecordPayment(ctx, &pay)
	if err != nil {
		t.Skipf("server does not support transactions: %v", err)
	}

	got, err := s.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, bool(got.Paid))

	_, err = s.RecordPayment(ctx, &models.Payment{OrderID: order.ID, TransactionID: "pi_2"})
	assert.ErrorIs(t, err, store.ErrAlreadyPaid)
}

func TestMongoStore_LegacyPaidOrder(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	_, err := s.orders.InsertOne(ctx, bson.M{
		"_id": id, "email": "buyer@bazar.com", "productId": "p1", "price": 5.0, "paid": "true",
	})
	require.NoError(t, err)

	got, err := s.FindOrder(ctx, id)
	require.NoError(t, err)
	assert.True(t, bool(got.Paid))

	orders, err := s.ListOrders(ctx, "buyer@bazar.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, bool(orders[0].Paid))

	assert.ErrorIs(t, s.MarkOrderPaid(ctx, id, "pi_again"), store.ErrAlreadyPaid)
}
