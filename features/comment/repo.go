package comment

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	KnownIDs(ctx context.Context) (map[string]struct{}, error)
	LatestCreatedTime(ctx context.Context) (string, error)
	Append(ctx context.Context, rows []Enriched) error
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT comment_id FROM facebook_comments`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		known[id] = struct{}{}
	}
	return known, rows.Err()
}

// LatestCreatedTime returns the newest persisted comment timestamp, used as
// the since watermark for the next fetch. Empty string when the table is
// empty.
func (r *PostgresRepo) LatestCreatedTime(ctx context.Context) (string, error) {
	var latest sql.NullString
	query := `SELECT MAX(comment_created_time) FROM facebook_comments`
	if err := r.db.QueryRowContext(ctx, query).Scan(&latest); err != nil {
		return "", err
	}
	if !latest.Valid {
		return "", nil
	}
	return latest.String, nil
}

// Append is insert-only; dedup happens upstream.
func (r *PostgresRepo) Append(ctx context.Context, comments []Enriched) error {
	query := `INSERT INTO facebook_comments (comment_id, post_id, comment_message, comment_created_time, sentiment, sentiment_confidence, key_emotions, sentiment_reasoning, primary_category, secondary_categories, categorization_confidence, keywords, categorization_reasoning) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, c := range comments {
		_, err := r.db.ExecContext(ctx, query,
			c.ID, c.PostID, c.Message, c.CreatedTime,
			c.Sentiment.Label, c.Sentiment.Confidence, pq.Array(c.Sentiment.KeyEmotions), c.Sentiment.Reasoning,
			c.Categorization.PrimaryCategory, pq.Array(c.Categorization.SecondaryCategories),
			c.Categorization.Confidence, pq.Array(c.Categorization.Keywords),
			c.Categorization.Reasoning)
		if err != nil {
			return err
		}
	}
	return nil
}
