package post

import (
	"context"

	"socialpulse/pipeline/internal/graph"
	"socialpulse/pipeline/internal/insights"
)

const (
	metricImpressions       = "post_impressions"
	metricImpressionsUnique = "post_impressions_unique"
)

// GraphSource binds the generic Graph API client to the post feed of one page.
type GraphSource struct {
	client *graph.Client
	pageID string
}

func NewGraphSource(client *graph.Client, pageID string) *GraphSource {
	return &GraphSource{client: client, pageID: pageID}
}

func (s *GraphSource) FetchPosts(ctx context.Context, since int64) ([]Post, error) {
	return graph.FetchAll[Post](ctx, s.client, s.client.PostsURL(s.pageID, since))
}

// PostInsights returns the max-reduced impression metrics for one post.
// Absent metrics are omitted from the map.
func (s *GraphSource) PostInsights(ctx context.Context, postID string) (map[string]float64, error) {
	samples, err := s.client.Insights(ctx, postID, []string{metricImpressions, metricImpressionsUnique})
	if err != nil {
		return nil, err
	}
	return insights.MaxByName(samples, metricImpressions, metricImpressionsUnique), nil
}
