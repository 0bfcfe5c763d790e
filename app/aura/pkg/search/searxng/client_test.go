package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Kivu displacement", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "news", r.URL.Query().Get("categories"))

		_ = json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{
			{Title: "a", URL: "https://a"},
			{Title: "b", URL: "https://b"},
			{Title: "c", URL: "https://c"},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5)
	resp, err := c.Search(context.Background(), &search.Request{Query: "Kivu displacement", Topic: "news", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://b", resp.Results[1].URL)
}

func TestClient_SearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 5).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
}

func TestTimeRange(t *testing.T) {
	day := func(d time.Duration) string { return time.Now().Add(-d).Format(time.DateOnly) }

	assert.Equal(t, "", timeRange(""))
	assert.Equal(t, "", timeRange("not-a-date"))
	assert.Equal(t, "week", timeRange(day(3*24*time.Hour)))
	assert.Equal(t, "month", timeRange(day(20*24*time.Hour)))
	assert.Equal(t, "year", timeRange(day(200*24*time.Hour)))
	assert.Equal(t, "", timeRange(day(800*24*time.Hour)))
}

func TestClient_SearchFiltersDomains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searx/search", r.URL.Path)
		_ = json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{
			{Title: "blog", URL: "https://example.com/sudan"},
			{Title: "flash update", URL: "https://reliefweb.int/report/sudan"},
			{Title: "ocha", URL: "https://www.unocha.org/sudan"},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/searx/", 5)
	resp, err := c.Search(context.Background(), &search.Request{
		Query:   "Sudan",
		Domains: []string{"reliefweb.int", "unocha.org"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "flash update", resp.Results[0].Title)
	assert.Equal(t, "ocha", resp.Results[1].Title)
}

func TestAllowed(t *testing.T) {
	assert.True(t, allowed("https://anything.org/x", nil))
	assert.True(t, allowed("https://reliefweb.int/x", []string{"reliefweb.int"}))
	assert.True(t, allowed("https://api.ReliefWeb.int/x", []string{"reliefweb.int"}))
	assert.False(t, allowed("https://notreliefweb.int/x", []string{"reliefweb.int"}))
	assert.False(t, allowed("://bad", []string{"reliefweb.int"}))
}
