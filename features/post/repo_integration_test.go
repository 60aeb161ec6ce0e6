package post_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialpulse/pipeline/features/post"
	"socialpulse/pipeline/internal/enrich"
	"socialpulse/pipeline/internal/testutils"
)

func TestPostRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := testutils.NewIntegrationSuite(t)
	s.Setup()
	defer s.Teardown()

	repo := post.NewPostgresRepo(s.DB)
	ctx := context.Background()

	known, err := repo.KnownIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, known)

	row := post.Enriched{
		Post: post.Post{
			ID:           "p1",
			Message:      "new pump line",
			CreatedTime:  "2025-01-01T08:00:00+0000",
			PermalinkURL: "https://example.com/p1",
		},
		Categorization:    enrich.DefaultCategorization(nil),
		Impressions:       42,
		ImpressionsUnique: 30,
	}
	require.NoError(t, repo.Append(ctx, []post.Enriched{row}))

	known, err = repo.KnownIDs(ctx)
	require.NoError(t, err)
	require.Len(t, known, 1)
	_, ok := known["p1"]
	assert.True(t, ok)

	// Append is insert-only: re-appending the same id must fail on the
	// primary key, never silently overwrite.
	assert.Error(t, repo.Append(ctx, []post.Enriched{row}))
}
