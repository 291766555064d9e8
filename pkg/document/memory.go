package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. It mirrors the
// PostgresStore semantics (json-normalized values, text comparisons) and
// backs QA setups and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

// normalize runs data through json so stored values carry the same types a
// real store would return (numbers as float64, nested structs as maps).
func normalize(data map[string]interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemoryStore) Create(collection string, data map[string]interface{}, id string) (string, error) {
	doc, err := normalize(data)
	if err != nil {
		return "", fmt.Errorf("document store: encode %s: %w", collection, err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = doc
	return id, nil
}

func (s *MemoryStore) Get(collection, id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	out, err := normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("document store: decode %s/%s: %w", collection, id, err)
	}
	return out, nil
}

func (s *MemoryStore) Update(collection, id string, data map[string]interface{}) error {
	fields, err := normalize(data)
	if err != nil {
		return fmt.Errorf("document store: encode %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("document store: update %s/%s: document not found", collection, id)
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Query(collection string, filters []Filter, orderBy string, descending bool, limit int) ([]map[string]interface{}, error) {
	s.mu.RLock()
	docs := make([]map[string]interface{}, 0)
	for id, doc := range s.collections[collection] {
		out, err := normalize(doc)
		if err != nil {
			s.mu.RUnlock()
			return nil, fmt.Errorf("document store: decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, out)
	}
	s.mu.RUnlock()

	var results []map[string]interface{}
	for _, doc := range docs {
		match := true
		for _, f := range filters {
			ok, err := matches(doc, f)
			if err != nil {
				return nil, fmt.Errorf("document store: query %s: %w", collection, err)
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			results = append(results, doc)
		}
	}

	if orderBy != "" {
		sort.SliceStable(results, func(i, j int) bool {
			a := fmt.Sprintf("%v", results[i][orderBy])
			b := fmt.Sprintf("%v", results[j][orderBy])
			if descending {
				return a > b
			}
			return a < b
		})
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func matches(doc map[string]interface{}, f Filter) (bool, error) {
	// Text comparison, same as the jsonb ->> path in PostgresStore.
	have := fmt.Sprintf("%v", doc[f.Field])
	want := fmt.Sprintf("%v", f.Value)

	switch f.Operator {
	case OpEqual:
		return have == want, nil
	case OpNotEqual:
		return have != want, nil
	case OpLess:
		return have < want, nil
	case OpLessEqual:
		return have <= want, nil
	case OpGreater:
		return have > want, nil
	case OpGreaterEqual:
		return have >= want, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", f.Operator)
	}
}
