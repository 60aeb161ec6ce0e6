package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"socialpulse/pipeline/features/comment"
	"socialpulse/pipeline/features/post"
	"socialpulse/pipeline/features/workitem"
	"socialpulse/pipeline/internal/adapter/gemini"
	"socialpulse/pipeline/internal/config"
	"socialpulse/pipeline/internal/correlation"
	"socialpulse/pipeline/internal/enrich"
	"socialpulse/pipeline/internal/graph"
)

// Run executes one pipeline invocation. Everything is strictly sequential:
// the only suspension points are network calls and the inter-batch delay.
func Run(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	ctx, runID := correlation.NewRunContext(ctx)
	slog.InfoContext(ctx, "run starting", "correlation_id", runID)

	if cfg.PruneWorkItemID > 0 {
		return runPrune(ctx, cfg)
	}
	return runSocialSync(ctx, cfg, db)
}

func runSocialSync(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	graphClient := graph.NewClient(cfg.GraphBaseURL, cfg.MetaToken)
	source := post.NewGraphSource(graphClient, cfg.PageID)

	categorizer, err := gemini.NewCategorizer(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("categorizer init: %w", err)
	}
	sentiment, err := gemini.NewSentimentAnalyzer(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("sentiment analyzer init: %w", err)
	}

	batch := enrich.Options{
		BatchSize: cfg.BatchSize,
		Delay: enrich.DelayRange{
			Min: time.Duration(cfg.DelayMinMS) * time.Millisecond,
			Max: time.Duration(cfg.DelayMaxMS) * time.Millisecond,
		},
	}

	postRepo := post.NewPostgresRepo(db)
	commentRepo := comment.NewPostgresRepo(db)
	posts := post.NewService(source, source, postRepo, categorizer, batch)
	comments := comment.NewService(commentRepo, sentiment, categorizer, batch)

	since, err := comments.Since(ctx)
	if err != nil {
		return err
	}

	fetched, err := posts.Sync(ctx, since)
	if err != nil {
		return err
	}
	if err := comments.Sync(ctx, fetched); err != nil {
		return err
	}

	slog.InfoContext(ctx, "run completed")
	return nil
}

func runPrune(ctx context.Context, cfg *config.Config) error {
	client := workitem.NewClient(cfg.DevOpsOrganization, cfg.DevOpsProject, cfg.DevOpsPAT)
	walker := workitem.NewWalker(client)

	slog.InfoContext(ctx, "pruning work item subtree", "root", cfg.PruneWorkItemID)
	return walker.DeleteTree(ctx, cfg.PruneWorkItemID)
}
