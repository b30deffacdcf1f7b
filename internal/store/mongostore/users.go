package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Role = store.StoredRole(ctx, users[i].Email, string(users[i].Role))
	}
	return users, nil
}

func (s *Store) InsertUser(ctx context.Context, u *models.User) (store.InsertResult, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: hexID(res.InsertedID)}, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	u.Role = store.StoredRole(ctx, u.Email, string(u.Role))
	return &u, nil
}

func (s *Store) SetUserRole(ctx context.Context, email string, role models.Role) (store.UpdateResult, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return store.UpdateResult{}, err
	}
	return updateResult(res), nil
}
