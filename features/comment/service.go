package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"socialpulse/pipeline/features/post"
	"socialpulse/pipeline/internal/dedup"
	"socialpulse/pipeline/internal/enrich"
)

// timestampLayout matches Graph API created_time values, e.g.
// 2024-12-13T13:13:31+0000.
const timestampLayout = "2006-01-02T15:04:05-0700"

// defaultSince seeds the watermark on a first run against an empty store.
const defaultSince = "2024-12-13T13:13:31+0000"

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (enrich.Sentiment, error)
}

type Categorizer interface {
	Categorize(ctx context.Context, text string) (enrich.Categorization, error)
}

type Service struct {
	repo        Repository
	sentiment   SentimentAnalyzer
	categorizer Categorizer
	batch       enrich.Options
}

func NewService(repo Repository, sentiment SentimentAnalyzer, categorizer Categorizer, batch enrich.Options) *Service {
	return &Service{repo: repo, sentiment: sentiment, categorizer: categorizer, batch: batch}
}

// Since resolves the fetch watermark: the newest persisted comment timestamp,
// or the seed date when no comments exist yet.
func (s *Service) Since(ctx context.Context) (int64, error) {
	watermark, err := s.repo.LatestCreatedTime(ctx)
	if err != nil {
		return 0, fmt.Errorf("query comment watermark: %w", err)
	}
	if watermark == "" {
		watermark = defaultSince
	}
	t, err := time.Parse(timestampLayout, watermark)
	if err != nil {
		return 0, fmt.Errorf("parse comment watermark %q: %w", watermark, err)
	}
	return t.Unix(), nil
}

// Sync flattens embedded comments out of the fetched posts, enriches the ones
// not yet persisted with sentiment and categorization, and appends them.
func (s *Service) Sync(ctx context.Context, posts []post.Post) error {
	flat := Flatten(posts)
	slog.InfoContext(ctx, "comments flattened", "count", len(flat))

	known, err := s.repo.KnownIDs(ctx)
	if err != nil {
		return fmt.Errorf("query known comment ids: %w", err)
	}

	fresh, existing := dedup.Partition(flat, known, func(c Comment) string { return c.ID })
	slog.InfoContext(ctx, "comments partitioned", "fresh", len(fresh), "existing", len(existing))
	if len(fresh) == 0 {
		return nil
	}

	text := func(c Comment) string { return c.Message }
	sentiments := enrich.Run(ctx, fresh, s.batch, text, s.sentiment.Analyze, enrich.DefaultSentiment)
	cats := enrich.Run(ctx, fresh, s.batch, text, s.categorizer.Categorize, enrich.DefaultCategorization)

	rows := make([]Enriched, len(fresh))
	for i, c := range fresh {
		rows[i] = Enriched{Comment: c, Sentiment: sentiments[i], Categorization: cats[i]}
	}

	if err := s.repo.Append(ctx, rows); err != nil {
		return fmt.Errorf("append comments: %w", err)
	}
	slog.InfoContext(ctx, "comments appended", "count", len(rows))
	return nil
}
