package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const gnewsBaseURL = "https://gnews.io/api/v4"

// GNewsClient 调用 gnews.io 的 top-headlines 接口
type GNewsClient struct {
	APIKey string
	// BaseURL 留空时用官方地址，测试里可指向本地假服务
	BaseURL string
	Client  *http.Client
}

func NewGNewsClient(apiKey string) *GNewsClient {
	return &GNewsClient{
		APIKey: apiKey,
		Client: &http.Client{Timeout: feedClientTimeout},
	}
}

func (g *GNewsClient) Name() string {
	return "gnews"
}

// gnewsCategory gnews 的分类枚举与本系统不完全一致：
// politics 对应 nation，environment 归到 science
func gnewsCategory(category string) string {
	switch category {
	case "politics":
		return "nation"
	case "environment":
		return "science"
	case "", "all":
		return "general"
	default:
		return category
	}
}

func (g *GNewsClient) FetchTopHeadlines(ctx context.Context, category string, limit int) ([]Article, error) {
	if g.APIKey == "" {
		return nil, fmt.Errorf("gnews: api key not configured")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	base := g.BaseURL
	if base == "" {
		base = gnewsBaseURL
	}
	params := url.Values{
		"category": {gnewsCategory(category)},
		"lang":     {"en"},
		"max":      {strconv.Itoa(limit)},
		"apikey":   {g.APIKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", feedUserAgent)

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: feedClientTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnews: fetch top headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, feedMaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("gnews: read response: %w", err)
	}

	var payload struct {
		Articles []struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("gnews: unmarshal: %w", err)
	}

	normalized := category
	if normalized == "" || normalized == "all" {
		normalized = "general"
	}
	out := make([]Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		out = append(out, Article{
			Title:       a.Title,
			Summary:     a.Description,
			Link:        a.URL,
			Source:      a.Source.Name,
			SourceURL:   a.Source.URL,
			Category:    normalized,
			PublishedAt: a.PublishedAt,
		})
	}
	return out, nil
}
