package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const newsDataBaseURL = "https://newsdata.io/api/1"

// NewsDataClient 调用 newsdata.io 的 latest 接口，作为 GNews 的后备源
type NewsDataClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewNewsDataClient(apiKey string) *NewsDataClient {
	return &NewsDataClient{
		APIKey: apiKey,
		Client: &http.Client{Timeout: feedClientTimeout},
	}
}

func (n *NewsDataClient) Name() string {
	return "newsdata"
}

// newsDataCategory newsdata 没有 general 分类，用 top 代替
func newsDataCategory(category string) string {
	switch category {
	case "", "all", "general":
		return "top"
	default:
		return category
	}
}

func (n *NewsDataClient) FetchTopHeadlines(ctx context.Context, category string, limit int) ([]Article, error) {
	if n.APIKey == "" {
		return nil, fmt.Errorf("newsdata: api key not configured")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	base := n.BaseURL
	if base == "" {
		base = newsDataBaseURL
	}
	params := url.Values{
		"apikey":   {n.APIKey},
		"category": {newsDataCategory(category)},
		"language": {"en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/latest?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", feedUserAgent)

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: feedClientTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsdata: fetch latest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsdata: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, feedMaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("newsdata: read response: %w", err)
	}

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Link        string `json:"link"`
			PubDate     string `json:"pubDate"`
			SourceID    string `json:"source_id"`
			SourceName  string `json:"source_name"`
			SourceURL   string `json:"source_url"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("newsdata: unmarshal: %w", err)
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("newsdata: status %q", payload.Status)
	}

	normalized := category
	if normalized == "" || normalized == "all" {
		normalized = "general"
	}
	out := make([]Article, 0, len(payload.Results))
	for _, r := range payload.Results {
		if len(out) >= limit {
			break
		}
		if r.Title == "" || r.Link == "" {
			continue
		}
		source := r.SourceName
		if source == "" {
			source = r.SourceID
		}
		// pubDate 形如 2024-05-10 12:30:00（UTC），解析失败时保留零值
		publishedAt, _ := time.Parse("2006-01-02 15:04:05", r.PubDate)
		out = append(out, Article{
			Title:       r.Title,
			Summary:     r.Description,
			Link:        r.Link,
			Source:      source,
			SourceURL:   r.SourceURL,
			Category:    normalized,
			PublishedAt: publishedAt,
		})
	}
	return out, nil
}
