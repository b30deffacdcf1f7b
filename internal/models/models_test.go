package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrder_DecodesPaidFlag(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want bool
	}{
		{name: "bool true", doc: bson.M{"paid": true}, want: true},
		{name: "bool false", doc: bson.M{"paid": false}, want: false},
		{name: "legacy string", doc: bson.M{"paid": "true"}, want: true},
		{name: "other string", doc: bson.M{"paid": "false"}, want: false},
		{name: "null", doc: bson.M{"paid": nil}, want: false},
		{name: "absent", doc: bson.M{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doc["_id"] = primitive.NewObjectID()
			tt.doc["email"] = "buyer@bazar.com"
			tt.doc["productId"] = "p1"
			tt.doc["price"] = 5.0

			raw, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var o Order
			require.NoError(t, bson.Unmarshal(raw, &o))
			assert.Equal(t, tt.want, bool(o.Paid))
			assert.Equal(t, "buyer@bazar.com", o.Email)
		})
	}
}

func TestOrder_RejectsUnexpectedPaidType(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"paid": 1.5})
	require.NoError(t, err)

	var o Order
	assert.Error(t, bson.Unmarshal(raw, &o))
}

func TestOrder_EncodesPaidAsBool(t *testing.T) {
	raw, err := bson.Marshal(Order{Email: "buyer@bazar.com", Paid: true})
	require.NoError(t, err)

	v, err := bson.Raw(raw).LookupErr("paid")
	require.NoError(t, err)
	assert.Equal(t, bson.TypeBoolean, v.Type)

	out, err := json.Marshal(Order{Paid: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"paid":true`)
}
