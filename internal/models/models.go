package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"      json:"_id"`
	Email    string             `bson:"email"              json:"email"`
	Name     string             `bson:"name,omitempty"     json:"name,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     Role               `bson:"role,omitempty"     json:"role,omitempty"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"_id"`
	Name        string             `bson:"name"                  json:"name"`
	Price       float64            `bson:"price"                 json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty"       json:"image,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"           json:"_id"`
	Email         string             `bson:"email"                   json:"email"`
	ProductID     string             `bson:"productId"               json:"productId"`
	ProductName   string             `bson:"productName,omitempty"   json:"productName,omitempty"`
	Price         float64            `bson:"price"                   json:"price"`
	Paid          PaidFlag           `bson:"paid"                    json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"               json:"createdAt"`
}

// PaidFlag is written as a boolean. Orders flipped by the legacy server hold
// the string "true" instead, so decoding accepts both.
type PaidFlag bool

func (p *PaidFlag) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Boolean:
		*p = PaidFlag(rv.Boolean())
	case bsontype.String:
		*p = rv.StringValue() == "true"
	case bsontype.Null, bsontype.Undefined:
		*p = false
	default:
		return fmt.Errorf("paid: unsupported bson type %s", t)
	}
	return nil
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       primitive.ObjectID `bson:"orderId"       json:"orderId"`
	Email         string             `bson:"email"         json:"email"`
	Price         float64            `bson:"price"         json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"createdAt"     json:"createdAt"`
}

// ParseID converts a client supplied identifier into the store key type.
func ParseID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}
