package newsfeed

import (
	"context"
	"time"
)

// Article 外部新闻 API 返回的统一结构
type Article struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	SourceURL   string    `json:"sourceUrl"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Provider 抽象一个外部新闻 API
type Provider interface {
	Name() string
	FetchTopHeadlines(ctx context.Context, category string, limit int) ([]Article, error)
}

const (
	feedUserAgent        = "AINewsBot/1.0"
	feedClientTimeout    = 10 * time.Second
	feedMaxResponseBytes = 1 << 20 // 1MB
)
