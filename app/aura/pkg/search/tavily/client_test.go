package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/search"
)

func TestClient_Search(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(SearchResponse{
			Query: got.Query,
			Results: []SearchResult{
				{Title: "Sudan: Flash Update", URL: "https://reliefweb.int/a", Content: "Clashes in El Fasher", Score: 0.9, PublishedDate: "2025-01-15"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("secret", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	resp, err := c.Search(context.Background(), &search.Request{
		Query:     "Sudan humanitarian",
		Topic:     "news",
		StartDate: "2025-01-10",
		EndDate:   "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sudan humanitarian", got.Query)
	assert.Equal(t, "news", got.Topic)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, 5, got.MaxResults)
	assert.Equal(t, "2025-01-10", got.StartDate)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "https://reliefweb.int/a", resp.Results[0].URL)
	assert.Equal(t, "Clashes in El Fasher", resp.Results[0].Text())
}

func TestClient_SearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("secret", WithEndpoint(srv.URL))
	_, err := c.Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_SearchDepthAndDomains(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer srv.Close()

	c := NewClient("secret", WithEndpoint(srv.URL), WithSearchDepth("advanced"))
	resp, err := c.Search(context.Background(), &search.Request{
		Query:      "Gaza fuel",
		MaxResults: 3,
		Domains:    []string{"reliefweb.int"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	assert.Equal(t, "advanced", got.SearchDepth)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 3, got.MaxResults)
	assert.Equal(t, []string{"reliefweb.int"}, got.IncludeDomains)
}
