package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"socialpulse/pipeline/internal/insights"
)

// ErrFetch marks transport-level failures. A failed page aborts the whole
// accumulation: persisting a prefix would poison the dedup comparison later.
var ErrFetch = errors.New("graph fetch failed")

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type page[T any] struct {
	Data   []T `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// FetchAll walks cursor-linked pages starting at startURL, accumulating every
// item until the response carries no next link. An empty first page yields an
// empty slice and no error.
func FetchAll[T any](ctx context.Context, c *Client, startURL string) ([]T, error) {
	all := []T{}
	for u := startURL; u != ""; {
		var p page[T]
		if err := c.getJSON(ctx, u, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		u = p.Paging.Next
	}
	return all, nil
}

// PostsURL builds the page feed listing with embedded comments, both filtered
// to activity after the since timestamp.
func (c *Client) PostsURL(pageID string, since int64) string {
	fields := fmt.Sprintf("message,created_time,likes.summary(true),comments.summary(true).filter(stream).since(%d),permalink_url,id", since)
	return fmt.Sprintf("%s/%s/posts?fields=%s&access_token=%s",
		c.baseURL, pageID, url.QueryEscape(fields), url.QueryEscape(c.token))
}

// Insights fetches the metric samples recorded for one object. Each metric may
// report several windows; every (name, value) pair is returned as-is and
// reduction is left to the caller.
func (c *Client) Insights(ctx context.Context, objectID string, metrics []string) ([]insights.Sample, error) {
	u := fmt.Sprintf("%s/%s/insights?metric=%s&access_token=%s",
		c.baseURL, objectID, strings.Join(metrics, ","), url.QueryEscape(c.token))

	var body struct {
		Data []struct {
			Name   string `json:"name"`
			Values []struct {
				Value float64 `json:"value"`
			} `json:"values"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	var samples []insights.Sample
	for _, metric := range body.Data {
		for _, v := range metric.Values {
			samples = append(samples, insights.Sample{Name: metric.Name, Value: v.Value})
		}
	}
	return samples, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return nil
}
