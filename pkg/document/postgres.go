package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is a single stored record. All documents share one table; the
// collection name is part of the primary key.
type Document struct {
	Collection string    `gorm:"primaryKey;size:128"`
	DocID      string    `gorm:"primaryKey;size:128;column:doc_id"`
	Data       string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

// PostgresStore backs the Store contract with a single jsonb table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var sqlOperators = map[string]string{
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (s *PostgresStore) Create(collection string, data map[string]interface{}, id string) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("document store: encode %s: %w", collection, err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	doc := Document{
		Collection: collection,
		DocID:      id,
		Data:       string(payload),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return "", fmt.Errorf("document store: create %s/%s: %w", collection, id, err)
	}

	return id, nil
}

func (s *PostgresStore) Get(collection, id string) (map[string]interface{}, error) {
	var doc Document
	err := s.db.Where("collection = ? AND doc_id = ?", collection, id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("document store: get %s/%s: %w", collection, id, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(doc.Data), &data); err != nil {
		return nil, fmt.Errorf("document store: decode %s/%s: %w", collection, id, err)
	}
	return data, nil
}

func (s *PostgresStore) Update(collection, id string, data map[string]interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("document store: encode %s/%s: %w", collection, id, err)
	}

	tx := s.db.Model(&Document{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Updates(map[string]interface{}{
			"data":       gorm.Expr("data || ?::jsonb", string(payload)),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return fmt.Errorf("document store: update %s/%s: %w", collection, id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("document store: update %s/%s: document not found", collection, id)
	}
	return nil
}

func (s *PostgresStore) Delete(collection, id string) error {
	err := s.db.Where("collection = ? AND doc_id = ?", collection, id).Delete(&Document{}).Error
	if err != nil {
		return fmt.Errorf("document store: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) Query(collection string, filters []Filter, orderBy string, descending bool, limit int) ([]map[string]interface{}, error) {
	q := s.db.Model(&Document{}).Where("collection = ?", collection)

	for _, f := range filters {
		op, ok := sqlOperators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("document store: query %s: unsupported operator %q", collection, f.Operator)
		}
		if !fieldNamePattern.MatchString(f.Field) {
			return nil, fmt.Errorf("document store: query %s: invalid field name %q", collection, f.Field)
		}
		// jsonb values compare as text, like the original store. Numeric
		// comparisons are therefore lexicographic; callers order on ISO
		// timestamps and string ids, where that is correct.
		q = q.Where(fmt.Sprintf("data ->> ? %s ?", op), f.Field, filterText(f.Value))
	}

	if orderBy != "" {
		if !fieldNamePattern.MatchString(orderBy) {
			return nil, fmt.Errorf("document store: query %s: invalid order field %q", collection, orderBy)
		}
		dir := "ASC"
		if descending {
			dir = "DESC"
		}
		q = q.Order(fmt.Sprintf("data ->> '%s' %s", orderBy, dir))
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var docs []Document
	if err := q.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("document store: query %s: %w", collection, err)
	}

	results := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(doc.Data), &data); err != nil {
			return nil, fmt.Errorf("document store: decode %s/%s: %w", collection, doc.DocID, err)
		}
		results = append(results, data)
	}
	return results, nil
}

func filterText(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
