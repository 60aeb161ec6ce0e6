package comment_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialpulse/pipeline/features/comment"
	"socialpulse/pipeline/internal/enrich"
)

func TestPostgresRepo_KnownIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := comment.NewPostgresRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT comment_id FROM facebook_comments")).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id"}).AddRow("c1"))

	known, err := repo.KnownIDs(context.Background())
	require.NoError(t, err)
	_, ok := known["c1"]
	assert.True(t, ok)
}

func TestPostgresRepo_LatestCreatedTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := comment.NewPostgresRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(comment_created_time) FROM facebook_comments")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2025-02-01T10:00:00+0000"))

	latest, err := repo.LatestCreatedTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01T10:00:00+0000", latest)
}

func TestPostgresRepo_LatestCreatedTime_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := comment.NewPostgresRepo(db)

	// MAX over an empty table is NULL, not an error.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(comment_created_time) FROM facebook_comments")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	latest, err := repo.LatestCreatedTime(context.Background())
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestPostgresRepo_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := comment.NewPostgresRepo(db)

	row := comment.Enriched{
		Comment: comment.Comment{
			ID:          "c1",
			PostID:      "p1",
			Message:     "is this in stock?",
			CreatedTime: "2025-02-01T10:00:00+0000",
		},
		Sentiment: enrich.Sentiment{
			Label:       "Neutral",
			Confidence:  0.7,
			KeyEmotions: []string{"curiosity"},
			Reasoning:   "question",
		},
		Categorization: enrich.Categorization{
			PrimaryCategory:     "Product Inquiry",
			SecondaryCategories: []string{},
			Confidence:          0.85,
			Keywords:            []string{"stock"},
			Reasoning:           "availability question",
		},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO facebook_comments")).
		WithArgs("c1", "p1", "is this in stock?", "2025-02-01T10:00:00+0000",
			"Neutral", 0.7, pq.Array([]string{"curiosity"}), "question",
			"Product Inquiry", pq.Array([]string{}), 0.85, pq.Array([]string{"stock"}),
			"availability question").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(context.Background(), []comment.Enriched{row})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
