// Package document implements a schemaless document store addressed by
// collection name and document id, with field-level filtered queries.
package document

// Comparison operators accepted in query filters.
const (
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpGreater      = ">"
	OpGreaterEqual = ">="
)

// Filter is a single (field, operator, value) condition. Filters in a query
// are applied as a logical AND, in order. Combining range operators on
// differing fields is the caller's responsibility; the store does not
// validate it.
type Filter struct {
	Field    string
	Operator string
	Value    interface{}
}

// Store is the document store gateway. Get on a missing id returns
// (nil, nil), never an error. Every other failure wraps the underlying
// cause; the store never retries.
type Store interface {
	// Create persists data under the given id and returns it. An empty id
	// allocates a fresh unique id. An explicit id is an upsert: an existing
	// document with that id is overwritten.
	Create(collection string, data map[string]interface{}, id string) (string, error)

	// Get returns the document, or nil if no document has that id.
	Get(collection, id string) (map[string]interface{}, error)

	// Update merges the given fields into an existing document. Updating a
	// missing document is an error.
	Update(collection, id string, data map[string]interface{}) error

	Delete(collection, id string) error

	// Query returns documents matching all filters, optionally ordered by a
	// single field and capped at limit (0 = no cap).
	Query(collection string, filters []Filter, orderBy string, descending bool, limit int) ([]map[string]interface{}, error)
}
