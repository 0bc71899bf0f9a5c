package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// FlowRepository persists flow documents. The document column holds the full
// wire JSON; title/description/category are denormalized for listing and
// ordering without parsing every document.
type FlowRepository struct {
	db *sql.DB
}

func NewFlowRepository(db *sql.DB) *FlowRepository {
	return &FlowRepository{db: db}
}

// Save stores the document as a full replacement. CreatedAt is stamped on
// first save, UpdatedAt on every save. There is no optimistic-concurrency
// check; concurrent editing of one flow is out of scope.
func (r *FlowRepository) Save(doc *domain.FlowDocument) error {
	now := time.Now().UTC()
	if doc.CreatedAt == "" {
		doc.CreatedAt = now.Format(time.RFC3339)
	}
	doc.UpdatedAt = now.Format(time.RFC3339)

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal flow %s: %w", doc.ID, err)
	}
	created, err := time.Parse(time.RFC3339, doc.CreatedAt)
	if err != nil {
		created = now
	}
	_, err = r.db.Exec(upsertFlowQuery(), doc.ID, doc.Title, doc.Description, doc.Category, string(payload), created, now)
	return err
}

// FindByID fetches one document by id.
func (r *FlowRepository) FindByID(id string) (*domain.FlowDocument, error) {
	query := `SELECT document FROM flows WHERE id = ` + placeholder(1)
	var payload string
	err := r.db.QueryRow(query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlowNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return unmarshalFlow(payload)
}

// FindAll returns every stored document ordered by creation time.
func (r *FlowRepository) FindAll() ([]*domain.FlowDocument, error) {
	query := `SELECT document FROM flows ORDER BY created`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flows := make([]*domain.FlowDocument, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		doc, err := unmarshalFlow(payload)
		if err != nil {
			return nil, err
		}
		flows = append(flows, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return flows, nil
}

// Delete removes a document; deleting an unknown id reports ErrFlowNotFound.
func (r *FlowRepository) Delete(id string) error {
	query := `DELETE FROM flows WHERE id = ` + placeholder(1)
	res, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrFlowNotFound, id)
	}
	return nil
}

// Search returns documents whose title, description or trigger keywords
// contain the query substring, case-insensitive. Matching happens over the
// decoded documents so keywords inside the JSON participate.
func (r *FlowRepository) Search(query string) ([]*domain.FlowDocument, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	matched := make([]*domain.FlowDocument, 0)
	for _, doc := range all {
		hay := strings.ToLower(doc.Title + " " + doc.Description + " " + strings.Join(doc.TriggerKeywords, " "))
		if strings.Contains(hay, q) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func unmarshalFlow(payload string) (*domain.FlowDocument, error) {
	var doc domain.FlowDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal flow: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
