package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/search"
	"github.com/Skotchmaster/bazar/internal/store"
)

type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	RemoveProduct(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, query string, page, size int) (search.Result, error)
}

type CatalogService struct {
	Store  store.Products
	Events events.Publisher
	// Index is optional; without it search is unavailable and writes skip indexing.
	Index Indexer
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.Store.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.Store.FindProduct(ctx, id)
	if err != nil {
		return nil, storeErr("find product", err)
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p models.Product) (store.InsertResult, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p.Name, p.Price); err != nil {
		return store.InsertResult{}, err
	}

	res, err := s.Store.InsertProduct(ctx, &p)
	if err != nil {
		return store.InsertResult{}, storeErr("insert product", err)
	}

	s.reindex(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, p.ID.Hex(), events.New("product_created", p))
	return res, nil
}

// UpsertProduct writes name and price only; other fields keep their values.
func (s *CatalogService) UpsertProduct(ctx context.Context, id primitive.ObjectID, name string, price float64) (store.UpdateResult, error) {
	name = strings.TrimSpace(name)
	if err := validateProduct(name, price); err != nil {
		return store.UpdateResult{}, err
	}

	res, err := s.Store.UpsertProduct(ctx, id, name, price)
	if err != nil {
		return store.UpdateResult{}, storeErr("upsert product", err)
	}

	if p, err := s.Store.FindProduct(ctx, id); err == nil {
		s.reindex(ctx, *p)
		publish(ctx, s.Events, events.TopicProducts, id.Hex(), events.New("product_updated", p))
	} else {
		logging.FromContext(ctx).Warn("product_reload_error", "id", id.Hex(), "error", err)
	}
	return res, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	res, err := s.Store.DeleteProduct(ctx, id)
	if err != nil {
		return store.DeleteResult{}, storeErr("delete product", err)
	}
	if res.DeletedCount == 0 {
		return res, ErrNotFound
	}

	if s.Index != nil {
		if err := s.Index.RemoveProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_remove_error", "id", id.Hex(), "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.Hex(), events.New("product_deleted", map[string]string{"_id": id.Hex()}))
	return res, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, page, size int) (search.Result, error) {
	if s.Index == nil {
		return search.Result{}, ErrUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return search.Result{}, validation("query is required")
	}

	res, err := s.Index.Search(ctx, query, page, size)
	if err != nil {
		if errors.Is(err, search.ErrSearch) {
			return search.Result{}, errors.Join(ErrUpstream, err)
		}
		return search.Result{}, err
	}
	return res, nil
}

// ReindexAll pushes every stored product into the search index.
func (s *CatalogService) ReindexAll(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, ErrUnavailable
	}
	products, err := s.Store.ListProducts(ctx)
	if err != nil {
		return 0, storeErr("list products", err)
	}
	for i, p := range products {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return i, errors.Join(ErrUpstream, err)
		}
	}
	return len(products), nil
}

func (s *CatalogService) reindex(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "id", p.ID.Hex(), "error", err)
	}
}

func validateProduct(name string, price float64) error {
	if name == "" {
		return validation("name is required")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return validation("price must be a non-negative number")
	}
	return nil
}
