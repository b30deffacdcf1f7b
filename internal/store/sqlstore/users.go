package sqlstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRecord
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.model(ctx))
	}
	return users, nil
}

func (s *Store) InsertUser(ctx context.Context, u *models.User) (store.InsertResult, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	rec := userRecord{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
		Role:     string(u.Role),
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: rec.ID}, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	if err := s.DB.WithContext(ctx).Where("email = ?", email).Order("id ASC").First(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	u := rec.model(ctx)
	return &u, nil
}

func (s *Store) SetUserRole(ctx context.Context, email string, role models.Role) (store.UpdateResult, error) {
	out := store.UpdateResult{Acknowledged: true}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userRecord{}).Where("email = ?", email).Update("role", string(role))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			out.MatchedCount = res.RowsAffected
			out.ModifiedCount = res.RowsAffected
			return nil
		}

		rec := userRecord{ID: primitive.NewObjectID().Hex(), Email: email, Role: string(role)}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		out.UpsertedCount = 1
		out.UpsertedID = rec.ID
		return nil
	})
	if err != nil {
		return store.UpdateResult{}, err
	}
	return out, nil
}
