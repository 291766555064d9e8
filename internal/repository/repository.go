// Package repository projects typed entities onto the document store so
// shape errors surface at compile time instead of at store calls.
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/celebra-app/celebra-backend/pkg/document"
)

// Repository is a typed view over one collection of a document.Store.
type Repository[T any] struct {
	store      document.Store
	collection string
}

func New[T any](store document.Store, collection string) *Repository[T] {
	return &Repository[T]{store: store, collection: collection}
}

func (r *Repository[T]) Collection() string {
	return r.collection
}

// Create persists the entity. An empty id lets the store allocate one; an
// explicit id is an upsert.
func (r *Repository[T]) Create(entity T, id string) (string, error) {
	data, err := toMap(entity)
	if err != nil {
		return "", fmt.Errorf("repository %s: %w", r.collection, err)
	}
	return r.store.Create(r.collection, data, id)
}

// Get returns the entity, or nil if no document has that id.
func (r *Repository[T]) Get(id string) (*T, error) {
	data, err := r.store.Get(r.collection, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return fromMap[T](data, r.collection)
}

// Update merges the given fields into an existing document.
func (r *Repository[T]) Update(id string, fields map[string]interface{}) error {
	return r.store.Update(r.collection, id, fields)
}

func (r *Repository[T]) Delete(id string) error {
	return r.store.Delete(r.collection, id)
}

func (r *Repository[T]) Query(filters []document.Filter, orderBy string, descending bool, limit int) ([]T, error) {
	docs, err := r.store.Query(r.collection, filters, orderBy, descending, limit)
	if err != nil {
		return nil, err
	}

	entities := make([]T, 0, len(docs))
	for _, data := range docs {
		entity, err := fromMap[T](data, r.collection)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

func toMap(entity any) (map[string]interface{}, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	return data, nil
}

func fromMap[T any](data map[string]interface{}, collection string) (*T, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("repository %s: decode document: %w", collection, err)
	}
	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("repository %s: decode document: %w", collection, err)
	}
	return &entity, nil
}
