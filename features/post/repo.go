package post

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	KnownIDs(ctx context.Context) (map[string]struct{}, error)
	Append(ctx context.Context, rows []Enriched) error
}

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	query := `SELECT post_id FROM facebook_posts`
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

// Append is insert-only. Dedup happens upstream; existing rows are never
// touched.
func (r *PostgresRepo) Append(ctx context.Context, posts []Enriched) error {
	query := `INSERT INTO facebook_posts (post_id, post_message, post_created_time, post_like_count, post_url, post_impressions, post_impressions_unique, primary_category, secondary_categories, confidence_score, keywords, categorization_reasoning) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, p := range posts {
		_, err := r.db.ExecContext(ctx, query,
			p.ID, p.Message, p.CreatedTime, p.Likes.Summary.TotalCount, p.PermalinkURL,
			p.Impressions, p.ImpressionsUnique,
			p.Categorization.PrimaryCategory, pq.Array(p.Categorization.SecondaryCategories),
			p.Categorization.Confidence, pq.Array(p.Categorization.Keywords),
			p.Categorization.Reasoning)
		if err != nil {
			return err
		}
	}
	return nil
}
