package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
)

const documentColumns = `id, title, body, revision, created_at, updated_at`

// diffTimeout bounds the rune-stat computation for very large documents.
const diffTimeout = 200 * time.Millisecond

// DocumentRepository persists richtext documents.
type DocumentRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db, now: time.Now}
}

func scanDocument(scanner interface{ Scan(...any) error }) (*DocumentModel, error) {
	var m DocumentModel
	err := scanner.Scan(&m.ID, &m.Title, &m.Body, &m.Revision, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// Save writes doc as a new revision.
// A document without an ID is inserted with a fresh UUID; one whose body is
// identical to the stored body is left alone and reported as Unchanged.
func (r *DocumentRepository) Save(ctx context.Context, doc richtext.Document) (SaveResult, error) {
	if strings.TrimSpace(doc.Title) == "" {
		return SaveResult{}, errors.New("document title is required")
	}

	now := r.now()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	model, err := toDocumentModel(doc, now)
	if err != nil {
		return SaveResult{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanDocument(tx.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, doc.ID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		existing = nil
	case err != nil:
		return SaveResult{}, fmt.Errorf("failed to load document: %w", err)
	}

	result := SaveResult{ID: doc.ID}
	if existing == nil {
		model.Revision = 1
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			model.ID, model.Title, model.Body, model.Revision, model.CreatedAt, model.UpdatedAt,
		)
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to insert document: %w", err)
		}
		result.Inserted = utf8.RuneCountInString(doc.PlainText())
	} else {
		if existing.Body == model.Body && existing.Title == model.Title {
			result.Revision = existing.Revision
			result.Unchanged = true
			return result, nil
		}
		prev, err := existing.toStored()
		if err != nil {
			return SaveResult{}, err
		}
		result.Inserted, result.Deleted = runeStats(prev.Document.PlainText(), doc.PlainText())

		model.Revision = existing.Revision + 1
		_, err = tx.ExecContext(ctx,
			`UPDATE documents SET title = ?, body = ?, revision = ?, updated_at = ? WHERE id = ?`,
			model.Title, model.Body, model.Revision, model.UpdatedAt, model.ID,
		)
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to update document: %w", err)
		}
	}
	result.Revision = model.Revision

	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (document_id, revision, inserted, deleted, created_at) VALUES (?, ?, ?, ?, ?)`,
		model.ID, model.Revision, result.Inserted, result.Deleted, now.Unix(),
	)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to record revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("failed to commit save: %w", err)
	}

	log.Debug(log.CatDB, "Saved document",
		"id", result.ID, "revision", result.Revision,
		"inserted", result.Inserted, "deleted", result.Deleted)
	return result, nil
}

// Get returns the document with id.
// Returns DocumentNotFoundError if it does not exist.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*StoredDocument, error) {
	model, err := scanDocument(r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &DocumentNotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return model.toStored()
}

// GetByTitle returns the document whose title matches exactly.
// Returns DocumentNotFoundError if it does not exist.
func (r *DocumentRepository) GetByTitle(ctx context.Context, title string) (*StoredDocument, error) {
	model, err := scanDocument(r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE title = ?`, title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &DocumentNotFoundError{Title: title}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document by title: %w", err)
	}
	return model.toStored()
}

// List returns every document, most recently updated first.
func (r *DocumentRepository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, revision, updated_at FROM documents ORDER BY updated_at DESC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var s Summary
		var updated int64
		if err := rows.Scan(&s.ID, &s.Title, &s.Revision, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		s.UpdatedAt = time.Unix(updated, 0)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return out, nil
}

// Revision returns the stored revision of id.
// Returns DocumentNotFoundError if it does not exist.
func (r *DocumentRepository) Revision(ctx context.Context, id string) (int64, error) {
	var rev int64
	err := r.db.QueryRowContext(ctx, `SELECT revision FROM documents WHERE id = ?`, id).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &DocumentNotFoundError{ID: id}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision: %w", err)
	}
	return rev, nil
}

// History returns the revision stats of id, newest first.
func (r *DocumentRepository) History(ctx context.Context, id string) ([]RevisionStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT revision, inserted, deleted, created_at FROM revisions WHERE document_id = ? ORDER BY revision DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RevisionStat
	for rows.Next() {
		var s RevisionStat
		var created int64
		if err := rows.Scan(&s.Revision, &s.Inserted, &s.Deleted, &created); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		s.CreatedAt = time.Unix(created, 0)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return out, nil
}

// Delete removes id and its history.
// Returns DocumentNotFoundError if it does not exist.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &DocumentNotFoundError{ID: id}
	}
	return nil
}

// runeStats counts inserted and deleted runes between two texts.
func runeStats(before, after string) (inserted, deleted int) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = diffTimeout
	for _, d := range dmp.DiffMain(before, after, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffEqual:
		}
	}
	return inserted, deleted
}
