package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentGetUnknownPage(t *testing.T) {
	store := NewContentStore(newTestDB(t))

	_, err := store.Get(context.Background(), "home")
	assert.Equal(t, 404, StatusOf(err))
	assert.EqualError(t, err, "Page content not found")

	_, ok, err := store.Lookup(context.Background(), "home")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContentUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewContentStore(newTestDB(t))

	first, err := store.Upsert(ctx, "home", `{"company_name":"Cats"}`)
	require.NoError(t, err)
	assert.Equal(t, "home", first.PageName)
	assert.Equal(t, `{"company_name":"Cats"}`, first.Content)

	time.Sleep(5 * time.Millisecond)
	second, err := store.Upsert(ctx, "home", "not json at all")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "not json at all", second.Content)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := store.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", got.Content)

	var rows int
	require.NoError(t, store.DB.Get(&rows, `SELECT count(*) FROM page_content`))
	assert.Equal(t, 1, rows)
}

func TestContentUpsertRequiresPageName(t *testing.T) {
	_, err := NewContentStore(newTestDB(t)).Upsert(context.Background(), " ", "{}")
	assert.Equal(t, 422, StatusOf(err))
}

func TestEnsureDefaultContent(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	store := NewContentStore(database)

	_, err := store.Upsert(ctx, "about", `{"title":"Ours"}`)
	require.NoError(t, err)

	require.NoError(t, EnsureDefaultContent(ctx, database))
	require.NoError(t, EnsureDefaultContent(ctx, database))

	for _, page := range []string{"home", "care", "about", "social_media"} {
		_, err := store.Get(ctx, page)
		assert.NoError(t, err, page)
	}
	about, err := store.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Ours"}`, about.Content, "existing pages are left alone")

	kittens, err := NewKittens(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, kittens, len(sampleKittens))

	parents, err := NewParents(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, parents, len(sampleParents))
}
