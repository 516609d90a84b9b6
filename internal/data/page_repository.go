package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PageMeta is the page header handed to the repository on create and update.
// The block list travels separately so the two can be written in one
// transaction.
type PageMeta struct {
	Title           string
	AuthorID        int64
	CreationDate    Date
	PublicationDate Date
}

// SQLPageRepository is a concrete implementation of the page persistence
// gateway using sqlx over sqlite.
type SQLPageRepository struct {
	db *sqlx.DB
}

// NewSQLPageRepository creates a new SQLPageRepository.
func NewSQLPageRepository(db *sqlx.DB) *SQLPageRepository {
	return &SQLPageRepository{db: db}
}

// pageRow is the shape of a page joined with its author.
type pageRow struct {
	ID              int64  `db:"id"`
	Title           string `db:"title"`
	CreationDate    Date   `db:"creation_date"`
	PublicationDate Date   `db:"publication_date"`
	AuthorName      string `db:"author_name"`
	AuthorUsername  string `db:"author_username"`
}

// toPage converts a joined row into a Page, deriving the status from the
// publication date at read time.
func (r pageRow) toPage() Page {
	return Page{
		ID:              r.ID,
		Title:           r.Title,
		CreationDate:    r.CreationDate,
		PublicationDate: r.PublicationDate,
		Author:          Author{Name: r.AuthorName, Username: r.AuthorUsername},
		Status:          ResolveStatus(r.PublicationDate, Today()),
	}
}

const selectPageColumns = `
	SELECT pages.id, pages.title, pages.creation_date, pages.publication_date,
	       users.fullname AS author_name, users.username AS author_username
	FROM pages
	JOIN users ON users.id = pages.author_id`

// ListAllPages retrieves every page with its author joined in, newest first.
func (r *SQLPageRepository) ListAllPages(ctx context.Context) ([]Page, error) {
	var rows []pageRow
	query := selectPageColumns + ` ORDER BY pages.creation_date DESC, pages.id DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	pages := make([]Page, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, row.toPage())
	}
	return pages, nil
}

// ListPublishedPages retrieves only the pages whose publication date is on or
// before today, most recently published first. The filter runs in SQL so
// unpublished rows never leave the database.
func (r *SQLPageRepository) ListPublishedPages(ctx context.Context) ([]Page, error) {
	var rows []pageRow
	query := selectPageColumns + `
	WHERE pages.publication_date IS NOT NULL AND pages.publication_date <= DATE('now')
	ORDER BY pages.publication_date DESC, pages.id DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list published pages: %w", err)
	}
	pages := make([]Page, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, row.toPage())
	}
	return pages, nil
}

// GetPageWithBlocks retrieves a page and its blocks ordered by position.
func (r *SQLPageRepository) GetPageWithBlocks(ctx context.Context, id int64) (*Page, error) {
	var row pageRow
	query := selectPageColumns + ` WHERE pages.id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page %d: %w", id, err)
	}
	page := row.toPage()

	blocksQuery := `SELECT id, type, content, position FROM blocks WHERE page_id = ? ORDER BY position`
	if err := r.db.SelectContext(ctx, &page.Blocks, blocksQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get blocks for page %d: %w", id, err)
	}
	return &page, nil
}

// CreatePageWithBlocks inserts a page and all of its blocks in a single
// transaction and returns the new page id. Either everything is written or
// nothing is.
func (r *SQLPageRepository) CreatePageWithBlocks(ctx context.Context, meta PageMeta, blocks []Block) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO pages (title, author_id, creation_date, publication_date) VALUES (?, ?, ?, ?)`,
		meta.Title, meta.AuthorID, meta.CreationDate, meta.PublicationDate)
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}
	pageID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new page id: %w", err)
	}

	if err := insertBlocks(ctx, tx, pageID, blocks); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit page creation: %w", err)
	}
	return pageID, nil
}

// UpdatePageWithBlocks rewrites a page's metadata and replaces its whole
// block list in a single transaction. The delete-then-insert sequence is
// never left half applied: any failure rolls the page back to its previous
// state. Returns ErrNotFound when the page does not exist.
func (r *SQLPageRepository) UpdatePageWithBlocks(ctx context.Context, id int64, meta PageMeta, blocks []Block) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE pages SET title = ?, author_id = ?, publication_date = ? WHERE id = ?`,
		meta.Title, meta.AuthorID, meta.PublicationDate, id)
	if err != nil {
		return fmt.Errorf("failed to update page %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE page_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete blocks for page %d: %w", id, err)
	}
	if err := insertBlocks(ctx, tx, id, blocks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page update: %w", err)
	}
	return nil
}

// DeletePage removes a page and all of its blocks atomically. Blocks have no
// lifecycle of their own, so they go down with the page. Returns ErrNotFound
// when the page does not exist.
func (r *SQLPageRepository) DeletePage(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE page_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete blocks for page %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete page %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page deletion: %w", err)
	}
	return nil
}

// insertBlocks writes a block list for a page inside an open transaction.
func insertBlocks(ctx context.Context, tx *sqlx.Tx, pageID int64, blocks []Block) error {
	for _, b := range blocks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO blocks (page_id, type, content, position) VALUES (?, ?, ?, ?)`,
			pageID, b.Type, b.Content, b.Position)
		if err != nil {
			return fmt.Errorf("failed to insert block at position %d: %w", b.Position, err)
		}
	}
	return nil
}
