package trending

import (
	"log"
	"strings"
	"time"

	"github.com/jonnyk2/ai-news-summaries/internal/collector"
	"github.com/jonnyk2/ai-news-summaries/internal/processor"
)

// Store 服务所需的最小持久化接口，由 storage.Store 实现
type Store interface {
	LoadTrendingCache() (*processor.TrendingCache, error)
	SaveTrendingCache(*processor.TrendingCache) error
	SaveHeadlines([]collector.Headline) error
}

// Options 单次查询的参数
type Options struct {
	// MinSources 只在触发刷新时参与排名，缓存命中直接复用已有榜单
	MinSources int
	// Category 为空或 all 时返回全部分类
	Category     string
	ForceRefresh bool
}

// DefaultCacheMaxAge 缓存视为新鲜的时长
const DefaultCacheMaxAge = time.Hour

// Service 热榜服务：优先用持久化缓存应答，缓存过期或强刷时重跑完整管线。
// 缓存无锁，并发刷新时后写者覆盖先写者，榜单内容总是某一次完整管线的产物。
type Service struct {
	store      Store
	collect    func() []collector.Headline
	threshold  float64
	minSources int
	maxAge     time.Duration

	// now 可注入，测试用固定时钟
	now func() time.Time
}

func NewService(store Store, collect func() []collector.Headline, threshold float64, minSources int, maxAge time.Duration) *Service {
	if threshold <= 0 || threshold > 1 {
		threshold = processor.DefaultSimilarityThreshold
	}
	if minSources < 1 {
		minSources = processor.DefaultMinSources
	}
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	return &Service{
		store:      store,
		collect:    collect,
		threshold:  threshold,
		minSources: minSources,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// GetTrendingStories 返回热榜。缓存存在、非空且未过期时直接应答，
// 不触发任何采集；否则重跑管线并整体覆盖缓存
func (s *Service) GetTrendingStories(opts Options) ([]processor.TrendingStory, error) {
	if !opts.ForceRefresh {
		cache, err := s.store.LoadTrendingCache()
		if err != nil {
			log.Printf("trending: load cache: %v", err)
		}
		if cache != nil && len(cache.Stories) > 0 && s.now().Sub(cache.LastUpdated) < s.maxAge {
			return filterByCategory(cache.Stories, opts.Category), nil
		}
	}

	minSources := opts.MinSources
	if minSources < 1 {
		minSources = s.minSources
	}
	stories := s.refresh(minSources)
	return filterByCategory(stories, opts.Category), nil
}

// GetTrendingStoryByID 只查当前缓存，不触发刷新；未命中返回 false 而非错误
func (s *Service) GetTrendingStoryByID(id string) (*processor.TrendingStory, bool) {
	cache, err := s.store.LoadTrendingCache()
	if err != nil {
		log.Printf("trending: load cache: %v", err)
		return nil, false
	}
	if cache == nil {
		return nil, false
	}
	for i := range cache.Stories {
		if cache.Stories[i].ID == id {
			st := cache.Stories[i]
			return &st, true
		}
	}
	return nil, false
}

// Refresh 无视缓存重建热榜，返回新榜单条数
func (s *Service) Refresh() (int, error) {
	stories := s.refresh(s.minSources)
	return len(stories), nil
}

// refresh 完整管线：采集全部媒体、按相似度聚类、按媒体数排名，最后覆盖缓存。
// 写缓存失败只记日志，本次结果照常返回
func (s *Service) refresh(minSources int) []processor.TrendingStory {
	headlines := s.collect()
	log.Printf("trending: collected %d headlines", len(headlines))

	if err := s.store.SaveHeadlines(headlines); err != nil {
		log.Printf("trending: archive headlines: %v", err)
	}

	clusters := processor.ClusterHeadlines(headlines, s.threshold)
	stories := processor.RankClusters(clusters, minSources, s.now())

	cache := &processor.TrendingCache{Stories: stories, LastUpdated: s.now()}
	if err := s.store.SaveTrendingCache(cache); err != nil {
		log.Printf("trending: save cache: %v", err)
	}

	log.Printf("trending: pipeline done, %d clusters -> %d stories", len(clusters), len(stories))
	return stories
}

// filterByCategory category 为空或 all 时返回原榜单
func filterByCategory(stories []processor.TrendingStory, category string) []processor.TrendingStory {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == "all" {
		return stories
	}
	out := make([]processor.TrendingStory, 0, len(stories))
	for _, st := range stories {
		if st.Category == category {
			out = append(out, st)
		}
	}
	return out
}
