package newsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGNewsClientParsesResponse(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"category": q.Get("category"),
			"lang":     q.Get("lang"),
			"apikey":   q.Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalArticles": 2,
			"articles": [
				{"title": "Chip exports face new limits", "description": "desc one", "url": "https://example.com/1",
				 "publishedAt": "2024-05-10T10:00:00Z", "source": {"name": "Example Wire", "url": "https://example.com"}},
				{"title": "", "description": "no title, dropped", "url": "https://example.com/2",
				 "publishedAt": "2024-05-10T11:00:00Z", "source": {"name": "Example Wire", "url": "https://example.com"}}
			]
		}`))
	}))
	defer srv.Close()

	g := NewGNewsClient("test-key")
	g.BaseURL = srv.URL

	articles, err := g.FetchTopHeadlines(context.Background(), "politics", 5)
	if err != nil {
		t.Fatalf("FetchTopHeadlines error: %v", err)
	}

	// politics 映射成 gnews 的 nation
	if gotQuery["category"] != "nation" || gotQuery["lang"] != "en" || gotQuery["apikey"] != "test-key" {
		t.Fatalf("unexpected query params: %v", gotQuery)
	}

	// 空标题的条目被丢弃
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Title != "Chip exports face new limits" || a.Source != "Example Wire" || a.Link != "https://example.com/1" {
		t.Fatalf("article not mapped: %+v", a)
	}
	if a.Category != "politics" {
		t.Fatalf("article category = %q, want requested category", a.Category)
	}
	if a.PublishedAt.IsZero() {
		t.Fatalf("publishedAt not parsed")
	}
}

func TestNewsDataClientParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "top" {
			t.Errorf("category = %q, want top (general maps to top)", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"totalResults": 1,
			"results": [
				{"title": "Markets steady ahead of earnings", "description": "desc", "link": "https://example.org/1",
				 "pubDate": "2024-05-10 09:30:00", "source_id": "example", "source_name": "Example News", "source_url": "https://example.org"}
			]
		}`))
	}))
	defer srv.Close()

	n := NewNewsDataClient("test-key")
	n.BaseURL = srv.URL

	articles, err := n.FetchTopHeadlines(context.Background(), "general", 5)
	if err != nil {
		t.Fatalf("FetchTopHeadlines error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Source != "Example News" || a.SourceURL != "https://example.org" {
		t.Fatalf("source not mapped: %+v", a)
	}
	if a.PublishedAt.IsZero() {
		t.Fatalf("pubDate not parsed: %+v", a)
	}
}

func TestNewsDataClientRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "results": []}`))
	}))
	defer srv.Close()

	n := NewNewsDataClient("test-key")
	n.BaseURL = srv.URL
	if _, err := n.FetchTopHeadlines(context.Background(), "general", 5); err == nil {
		t.Fatalf("expected error for non-success status")
	}
}

func TestChainFallsBackToNextProvider(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer broken.Close()

	okCalls := 0
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"results": [{"title": "Fallback headline works", "link": "https://example.org/1",
			 "pubDate": "2024-05-10 09:30:00", "source_id": "example"}]
		}`))
	}))
	defer working.Close()

	g := NewGNewsClient("k")
	g.BaseURL = broken.URL
	n := NewNewsDataClient("k")
	n.BaseURL = working.URL

	chain := NewChain(600, g, n)
	articles, err := chain.FetchTopHeadlines(context.Background(), "general", 5)
	if err != nil {
		t.Fatalf("chain error: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Fallback headline works" {
		t.Fatalf("fallback result wrong: %+v", articles)
	}
	if okCalls != 1 {
		t.Fatalf("fallback provider called %d times, want 1", okCalls)
	}
	// source_name 缺失时退回 source_id
	if articles[0].Source != "example" {
		t.Fatalf("source = %q, want source_id fallback", articles[0].Source)
	}
}

func TestChainAllProvidersFail(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer broken.Close()

	g := NewGNewsClient("k")
	g.BaseURL = broken.URL
	n := NewNewsDataClient("k")
	n.BaseURL = broken.URL

	chain := NewChain(600, g, n)
	if _, err := chain.FetchTopHeadlines(context.Background(), "general", 5); err == nil {
		t.Fatalf("expected error when every provider fails")
	}
}

func TestChainWithoutProviders(t *testing.T) {
	chain := NewChain(600)
	if _, err := chain.FetchTopHeadlines(context.Background(), "general", 5); err == nil {
		t.Fatalf("expected error for empty provider list")
	}
}

func TestCategoryMappings(t *testing.T) {
	cases := []struct{ in, gnews, newsdata string }{
		{"politics", "nation", "politics"},
		{"environment", "science", "environment"},
		{"general", "general", "top"},
		{"", "general", "top"},
		{"technology", "technology", "technology"},
	}
	for _, tc := range cases {
		if got := gnewsCategory(tc.in); got != tc.gnews {
			t.Fatalf("gnewsCategory(%q) = %q, want %q", tc.in, got, tc.gnews)
		}
		if got := newsDataCategory(tc.in); got != tc.newsdata {
			t.Fatalf("newsDataCategory(%q) = %q, want %q", tc.in, got, tc.newsdata)
		}
	}
}
