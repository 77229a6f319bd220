package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cattery-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// ContentStore keeps one opaque text block per page name.
type ContentStore struct {
	DB *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{DB: db}
}

func (c *ContentStore) Get(ctx context.Context, pageName string) (models.PageContent, error) {
	var block models.PageContent
	err := c.DB.GetContext(ctx, &block, c.DB.Rebind(`
SELECT id, page_name, content, updated_at FROM page_content WHERE page_name = ?
`), pageName)
	if errors.Is(err, sql.ErrNoRows) {
		return block, ErrNotFound("Page content not found")
	}
	if err != nil {
		return block, WrapError(err, "get page content")
	}
	return block, nil
}

// Lookup is Get without the not-found error: ok is false when the page was
// never set.
func (c *ContentStore) Lookup(ctx context.Context, pageName string) (string, bool, error) {
	block, err := c.Get(ctx, pageName)
	if StatusOf(err) == 404 {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return block.Content, true, nil
}

// Upsert writes content for pageName, creating the row on first use.
func (c *ContentStore) Upsert(ctx context.Context, pageName, content string) (models.PageContent, error) {
	if strings.TrimSpace(pageName) == "" {
		return models.PageContent{}, ErrUnprocessable("page_name is required")
	}
	_, err := c.DB.ExecContext(ctx, c.DB.Rebind(`
INSERT INTO page_content (page_name, content, updated_at) VALUES (?, ?, ?)
ON CONFLICT (page_name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
`), pageName, content, time.Now().UTC())
	if err != nil {
		return models.PageContent{}, WrapError(err, "upsert page content")
	}
	return c.Get(ctx, pageName)
}

// insertIfAbsent seeds a page without touching an existing row.
func (c *ContentStore) insertIfAbsent(ctx context.Context, pageName, content string) error {
	_, err := c.DB.ExecContext(ctx, c.DB.Rebind(`
INSERT INTO page_content (page_name, content, updated_at) VALUES (?, ?, ?)
ON CONFLICT (page_name) DO NOTHING
`), pageName, content, time.Now().UTC())
	return err
}
