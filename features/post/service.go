package post

import (
	"context"
	"fmt"
	"log/slog"

	"socialpulse/pipeline/internal/dedup"
	"socialpulse/pipeline/internal/enrich"
)

type Fetcher interface {
	FetchPosts(ctx context.Context, since int64) ([]Post, error)
}

type InsightsFetcher interface {
	PostInsights(ctx context.Context, postID string) (map[string]float64, error)
}

type Categorizer interface {
	Categorize(ctx context.Context, text string) (enrich.Categorization, error)
}

type Service struct {
	fetcher     Fetcher
	insights    InsightsFetcher
	repo        Repository
	categorizer Categorizer
	batch       enrich.Options
}

func NewService(fetcher Fetcher, insights InsightsFetcher, repo Repository, categorizer Categorizer, batch enrich.Options) *Service {
	return &Service{fetcher: fetcher, insights: insights, repo: repo, categorizer: categorizer, batch: batch}
}

// Sync fetches the post feed, enriches the posts not yet persisted and appends
// them. It returns every fetched post (fresh and existing) so the comment
// stage can flatten embedded comments regardless of parent dedup status.
func (s *Service) Sync(ctx context.Context, since int64) ([]Post, error) {
	posts, err := s.fetcher.FetchPosts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	slog.InfoContext(ctx, "posts retrieved", "count", len(posts))

	known, err := s.repo.KnownIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("query known post ids: %w", err)
	}

	fresh, existing := dedup.Partition(posts, known, func(p Post) string { return p.ID })
	slog.InfoContext(ctx, "posts partitioned", "fresh", len(fresh), "existing", len(existing))
	if len(fresh) == 0 {
		return posts, nil
	}

	cats := enrich.Run(ctx, fresh, s.batch,
		func(p Post) string { return p.Message },
		s.categorizer.Categorize,
		enrich.DefaultCategorization)

	rows := make([]Enriched, len(fresh))
	for i, p := range fresh {
		rows[i] = Enriched{Post: p, Categorization: cats[i]}

		// One post's insights failure leaves its metrics zero and moves on.
		metrics, err := s.insights.PostInsights(ctx, p.ID)
		if err != nil {
			slog.WarnContext(ctx, "post insights failed", "post_id", p.ID, "error", err)
			continue
		}
		rows[i].Impressions = metrics[metricImpressions]
		rows[i].ImpressionsUnique = metrics[metricImpressionsUnique]
	}

	if err := s.repo.Append(ctx, rows); err != nil {
		return nil, fmt.Errorf("append posts: %w", err)
	}
	slog.InfoContext(ctx, "posts appended", "count", len(rows))
	return posts, nil
}
