package sqlstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []productRecord
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.model())
	}
	return products, nil
}

func (s *Store) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var rec productRecord
	if err := s.DB.WithContext(ctx).First(&rec, "id = ?", id.Hex()).Error; err != nil {
		return nil, notFound(err)
	}
	p := rec.model()
	return &p, nil
}

func (s *Store) InsertProduct(ctx context.Context, p *models.Product) (store.InsertResult, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	rec := productRecord{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: rec.ID}, nil
}

func (s *Store) UpsertProduct(ctx context.Context, id primitive.ObjectID, name string, price float64) (store.UpdateResult, error) {
	out := store.UpdateResult{Acknowledged: true}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productRecord{}).
			Where("id = ?", id.Hex()).
			Updates(map[string]any{"name": name, "price": price})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			out.MatchedCount = res.RowsAffected
			out.ModifiedCount = res.RowsAffected
			return nil
		}

		rec := productRecord{ID: id.Hex(), Name: name, Price: price}
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

func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	res := s.DB.WithContext(ctx).Delete(&productRecord{}, "id = ?", id.Hex())
	if res.Error != nil {
		return store.DeleteResult{}, res.Error
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
