// Package search keeps an Elasticsearch index of the product catalog and
// answers fuzzy text queries against it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bazar/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrSearch = errors.New("search backend error")

// Page converts a 1-based page and size into an offset and a clamped limit.
func Page(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

type Index struct {
	es   *elasticsearch.Client
	name string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return es, nil
}

func NewIndex(es *elasticsearch.Client, name string) *Index {
	return &Index{es: es, name: name}
}

// document is the indexed form of a product; the id lives in the ES _id.
type document struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

func (ix *Index) IndexProduct(ctx context.Context, p models.Product) error {
	body, err := json.Marshal(document{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
	})
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := ix.es.Index(ix.name, bytes.NewReader(body),
		ix.es.Index.WithContext(ctx),
		ix.es.Index.WithDocumentID(p.ID.Hex()),
	)
	if err != nil {
		return fmt.Errorf("%w: index %s: %w", ErrSearch, p.ID.Hex(), err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.StatusCode, res.Body)
	}
	return nil
}

// RemoveProduct deletes the document for id. A missing document is not an error.
func (ix *Index) RemoveProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := ix.es.Delete(ix.name, id.Hex(), ix.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrSearch, id.Hex(), err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.StatusCode, res.Body)
	}
	return nil
}

type Result struct {
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Items []models.Product `json:"items"`
}

func (ix *Index) Search(ctx context.Context, query string, page, size int) (Result, error) {
	from, limit := Page(page, size)
	if page < 1 {
		page = 1
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return Result{}, fmt.Errorf("encode query: %w", err)
	}

	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(ix.name),
		ix.es.Search.WithBody(&buf),
	)
	if err != nil {
		return Result{}, fmt.Errorf("%w: search: %w", ErrSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return Result{}, responseError("search", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string   `json:"_id"`
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %w", ErrSearch, err)
	}

	items := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := primitive.ObjectIDFromHex(hit.ID)
		if err != nil {
			continue
		}
		items = append(items, models.Product{
			ID:          id,
			Name:        hit.Source.Name,
			Price:       hit.Source.Price,
			Description: hit.Source.Description,
			Image:       hit.Source.Image,
		})
	}
	return Result{Total: r.Hits.Total.Value, Page: page, Size: limit, Items: items}, nil
}

func responseError(op string, status int, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 512))
	return fmt.Errorf("%w: %s returned %d: %s", ErrSearch, op, status, bytes.TrimSpace(msg))
}
