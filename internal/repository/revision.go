package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guideflow/guideflow/internal/snapshot"
	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// RevisionRepository archives the previous version of a flow before each
// overwrite, so the change summary shown at save time has a durable
// counterpart that can be inspected after the fact.
type RevisionRepository struct {
	db   *sql.DB
	keep int
}

// RevisionRow is the metadata of one archived version.
type RevisionRow struct {
	FlowID   string    `json:"flowId"`
	Revision int       `json:"revision"`
	Created  time.Time `json:"created"`
}

func NewRevisionRepository(db *sql.DB, keep int) *RevisionRepository {
	return &RevisionRepository{db: db, keep: keep}
}

// Archive stores doc as the next revision of its flow and prunes archives
// beyond the configured keep count.
func (r *RevisionRepository) Archive(doc *domain.FlowDocument) error {
	blob, err := snapshot.Encode(doc)
	if err != nil {
		return err
	}

	var next int
	query := `SELECT COALESCE(MAX(revision), 0) + 1 FROM flow_revisions WHERE flow_id = ` + placeholder(1)
	if err := r.db.QueryRow(query, doc.ID).Scan(&next); err != nil {
		return err
	}

	query = `INSERT INTO flow_revisions (flow_id, revision, data, created) VALUES (` +
		placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `)`
	if _, err := r.db.Exec(query, doc.ID, next, blob, time.Now().UTC()); err != nil {
		return err
	}

	if r.keep > 0 && next > r.keep {
		query = `DELETE FROM flow_revisions WHERE flow_id = ` + placeholder(1) + ` AND revision <= ` + placeholder(2)
		if _, err := r.db.Exec(query, doc.ID, next-r.keep); err != nil {
			return err
		}
	}
	return nil
}

// ListByFlow returns the archive metadata for one flow, newest first.
func (r *RevisionRepository) ListByFlow(flowID string) ([]RevisionRow, error) {
	query := `SELECT flow_id, revision, created FROM flow_revisions WHERE flow_id = ` + placeholder(1) + ` ORDER BY revision DESC`
	rows, err := r.db.Query(query, flowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RevisionRow, 0)
	for rows.Next() {
		var row RevisionRow
		if err := rows.Scan(&row.FlowID, &row.Revision, &row.Created); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Get decodes one archived revision back into a document.
func (r *RevisionRepository) Get(flowID string, revision int) (*domain.FlowDocument, error) {
	query := `SELECT data FROM flow_revisions WHERE flow_id = ` + placeholder(1) + ` AND revision = ` + placeholder(2)
	var blob []byte
	err := r.db.QueryRow(query, flowID, revision).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s revision %d", domain.ErrFlowNotFound, flowID, revision)
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Decode(blob)
}

// Delete drops all archived revisions of a flow, called when the flow itself
// is deleted.
func (r *RevisionRepository) Delete(flowID string) error {
	query := `DELETE FROM flow_revisions WHERE flow_id = ` + placeholder(1)
	_, err := r.db.Exec(query, flowID)
	return err
}
