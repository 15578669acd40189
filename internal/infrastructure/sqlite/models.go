package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/inkwell/internal/richtext"
)

// DocumentModel represents the database row for the documents table.
// Timestamps are stored as Unix seconds and the body as JSON.
type DocumentModel struct {
	ID        string
	Title     string
	Body      string
	Revision  int64
	CreatedAt int64
	UpdatedAt int64
}

// StoredDocument is a document together with its persistence metadata.
type StoredDocument struct {
	Document  richtext.Document
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary describes a document without its body.
type Summary struct {
	ID        string
	Title     string
	Revision  int64
	UpdatedAt time.Time
}

// SaveResult reports what a Save changed.
type SaveResult struct {
	ID       string
	Revision int64
	// Inserted and Deleted count runes of plain text changed since the
	// previous revision.
	Inserted int
	Deleted  int
	// Unchanged is true when the body matched the stored one and no new
	// revision was written.
	Unchanged bool
}

// RevisionStat is one row of a document's revision history.
type RevisionStat struct {
	Revision  int64
	Inserted  int
	Deleted   int
	CreatedAt time.Time
}

// DocumentNotFoundError is returned when no document matches a lookup.
type DocumentNotFoundError struct {
	ID    string
	Title string
}

func (e *DocumentNotFoundError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("document not found: %q", e.Title)
	}
	return fmt.Sprintf("document not found: %s", e.ID)
}

func toDocumentModel(doc richtext.Document, now time.Time) (*DocumentModel, error) {
	body, err := json.Marshal(doc.Blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}
	return &DocumentModel{
		ID:        doc.ID,
		Title:     doc.Title,
		Body:      string(body),
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}, nil
}

func (m *DocumentModel) toStored() (*StoredDocument, error) {
	var blocks []richtext.Block
	if err := json.Unmarshal([]byte(m.Body), &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", m.ID, err)
	}
	return &StoredDocument{
		Document:  richtext.Document{ID: m.ID, Title: m.Title, Blocks: blocks},
		Revision:  m.Revision,
		CreatedAt: time.Unix(m.CreatedAt, 0),
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}, nil
}
