package graph_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialpulse/pipeline/internal/graph"
)

type item struct {
	ID string `json:"id"`
}

func TestFetchAll_FollowsPaging(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page1":
			fmt.Fprintf(w, `{"data":[{"id":"a"},{"id":"b"}],"paging":{"next":"%s/page2"}}`, srv.URL)
		case "/page2":
			fmt.Fprint(w, `{"data":[{"id":"c"}],"paging":{}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := graph.NewClient(srv.URL, "token")
	items, err := graph.FetchAll[item](context.Background(), c, srv.URL+"/page1")
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestFetchAll_EmptyFirstPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"paging":{}}`)
	}))
	defer srv.Close()

	c := graph.NewClient(srv.URL, "token")
	items, err := graph.FetchAll[item](context.Background(), c, srv.URL+"/feed")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchAll_MidPageFailureAborts(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page1" {
			fmt.Fprintf(w, `{"data":[{"id":"a"}],"paging":{"next":"%s/page2"}}`, srv.URL)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := graph.NewClient(srv.URL, "token")
	items, err := graph.FetchAll[item](context.Background(), c, srv.URL+"/page1")
	assert.ErrorIs(t, err, graph.ErrFetch)
	assert.Nil(t, items)
}

func TestFetchAll_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	c := graph.NewClient(srv.URL, "token")
	_, err := graph.FetchAll[item](context.Background(), c, srv.URL+"/feed")
	assert.ErrorIs(t, err, graph.ErrFetch)
}

func TestInsights_FlattensValueWindows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post1/insights", r.URL.Path)
		assert.Equal(t, "post_impressions,post_impressions_unique", r.URL.Query().Get("metric"))
		fmt.Fprint(w, `{"data":[
			{"name":"post_impressions","values":[{"value":10},{"value":15}]},
			{"name":"post_impressions_unique","values":[{"value":3}]}
		]}`)
	}))
	defer srv.Close()

	c := graph.NewClient(srv.URL, "token")
	samples, err := c.Insights(context.Background(), "post1", []string{"post_impressions", "post_impressions_unique"})
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, "post_impressions", samples[0].Name)
	assert.Equal(t, 10.0, samples[0].Value)
	assert.Equal(t, 15.0, samples[1].Value)
	assert.Equal(t, "post_impressions_unique", samples[2].Name)
}

func TestPostsURL(t *testing.T) {
	c := graph.NewClient("https://graph.example.com/v20.0", "secret")
	u := c.PostsURL("12345", 1734095611)
	assert.Contains(t, u, "https://graph.example.com/v20.0/12345/posts?fields=")
	assert.Contains(t, u, "since%281734095611%29")
	assert.Contains(t, u, "access_token=secret")
}
