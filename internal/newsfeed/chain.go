package newsfeed

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"
)

// Chain 依序尝试多个 Provider，第一个给出非空结果的获胜。
// 所有上游调用共享一个速率限制器，避免打爆免费档 API 的配额
type Chain struct {
	providers []Provider
	limiter   *rate.Limiter
}

// NewChain rpm 为对外部 API 的每分钟请求上限
func NewChain(rpm int, providers ...Provider) *Chain {
	if rpm <= 0 {
		rpm = 30
	}
	return &Chain{
		providers: providers,
		limiter:   rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 2),
	}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) FetchTopHeadlines(ctx context.Context, category string, limit int) ([]Article, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("newsfeed: no providers configured")
	}

	var lastErr error
	for _, p := range c.providers {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		articles, err := p.FetchTopHeadlines(ctx, category, limit)
		if err != nil {
			log.Printf("newsfeed: %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		if len(articles) == 0 {
			log.Printf("newsfeed: %s returned 0 articles, trying next", p.Name())
			continue
		}
		return articles, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("newsfeed: all providers failed: %w", lastErr)
	}
	return nil, fmt.Errorf("newsfeed: no articles from any provider")
}
