package trending

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jonnyk2/ai-news-summaries/internal/collector"
	"github.com/jonnyk2/ai-news-summaries/internal/processor"
)

type fakeStore struct {
	cache    *processor.TrendingCache
	loadErr  error
	saveErr  error
	saves    int
	archived [][]collector.Headline
}

func (f *fakeStore) LoadTrendingCache() (*processor.TrendingCache, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.cache, nil
}

func (f *fakeStore) SaveTrendingCache(c *processor.TrendingCache) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cache = c
	return nil
}

func (f *fakeStore) SaveHeadlines(items []collector.Headline) error {
	f.archived = append(f.archived, items)
	return nil
}

// 两个双源簇（technology / environment）加一个单源簇
func fixtureHeadlines() []collector.Headline {
	return []collector.Headline{
		{Title: "New AI chip unveiled by industry leaders", Summary: "chip makers race ahead", Link: "https://bbc.example/1", Source: "BBC News", SourceURL: "https://bbc.example"},
		{Title: "Industry leaders unveiled new AI chip today", Link: "https://reuters.example/1", Source: "Reuters", SourceURL: "https://reuters.example"},
		{Title: "Climate summit agrees on deep carbon cuts", Link: "https://cnn.example/1", Source: "CNN", SourceURL: "https://cnn.example"},
		{Title: "Deep carbon cuts agreed at climate summit", Link: "https://npr.example/1", Source: "NPR", SourceURL: "https://npr.example"},
		{Title: "Quantum computing milestone reached by researchers", Link: "https://bbc.example/2", Source: "BBC News", SourceURL: "https://bbc.example"},
	}
}

func newTestService(store Store) (*Service, *int) {
	calls := 0
	svc := NewService(store, func() []collector.Headline {
		calls++
		return fixtureHeadlines()
	}, 0.35, 2, time.Hour)
	return svc, &calls
}

func TestRefreshRunsPipelineAndCaches(t *testing.T) {
	store := &fakeStore{}
	svc, calls := newTestService(store)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	count, err := svc.Refresh()
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if count != 2 {
		t.Fatalf("Refresh count = %d, want 2", count)
	}
	if *calls != 1 {
		t.Fatalf("collect invoked %d times, want 1", *calls)
	}

	if store.cache == nil || len(store.cache.Stories) != 2 {
		t.Fatalf("cache not written: %+v", store.cache)
	}
	if !store.cache.LastUpdated.Equal(now) {
		t.Fatalf("cache lastUpdated = %v, want %v", store.cache.LastUpdated, now)
	}

	// 采集结果被归档一次
	if len(store.archived) != 1 || len(store.archived[0]) != len(fixtureHeadlines()) {
		t.Fatalf("headlines not archived: %v", store.archived)
	}

	// 单源簇被过滤，双源簇按建簇顺序排列
	stories := store.cache.Stories
	if stories[0].Category != "technology" || stories[1].Category != "environment" {
		t.Fatalf("unexpected story order: %q, %q", stories[0].Category, stories[1].Category)
	}
	for _, st := range stories {
		if st.SourceCount < 2 {
			t.Fatalf("story %s below min sources: %d", st.ID, st.SourceCount)
		}
	}
}

func TestGetTrendingStoriesServesFreshCache(t *testing.T) {
	store := &fakeStore{}
	svc, calls := newTestService(store)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first, err := svc.GetTrendingStories(Options{})
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("collect invoked %d times after first call, want 1", *calls)
	}

	// 缓存新鲜期内（59 分钟后）再查：榜单一字不差，也不再采集
	svc.now = func() time.Time { return now.Add(59 * time.Minute) }
	second, err := svc.GetTrendingStories(Options{})
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("collect invoked %d times after cache hit, want 1", *calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cache hit returned different list:\n%+v\nvs\n%+v", first, second)
	}
}

func TestGetTrendingStoriesRefreshesWhenStale(t *testing.T) {
	store := &fakeStore{}
	svc, calls := newTestService(store)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.GetTrendingStories(Options{}); err != nil {
		t.Fatalf("warmup error: %v", err)
	}

	// 恰好到达 maxAge 即视为过期（新鲜判定是严格小于）
	svc.now = func() time.Time { return now.Add(time.Hour) }
	if _, err := svc.GetTrendingStories(Options{}); err != nil {
		t.Fatalf("stale call error: %v", err)
	}
	if *calls != 2 {
		t.Fatalf("collect invoked %d times after stale cache, want 2", *calls)
	}
}

func TestGetTrendingStoriesForceRefresh(t *testing.T) {
	store := &fakeStore{}
	svc, calls := newTestService(store)

	if _, err := svc.GetTrendingStories(Options{}); err != nil {
		t.Fatalf("warmup error: %v", err)
	}
	if _, err := svc.GetTrendingStories(Options{ForceRefresh: true}); err != nil {
		t.Fatalf("force refresh error: %v", err)
	}
	if *calls != 2 {
		t.Fatalf("collect invoked %d times with force refresh, want 2", *calls)
	}
	if store.saves != 2 {
		t.Fatalf("cache written %d times, want 2 (full overwrite per refresh)", store.saves)
	}
}

func TestGetTrendingStoriesEmptyCacheTriggersPipeline(t *testing.T) {
	store := &fakeStore{cache: &processor.TrendingCache{LastUpdated: time.Now()}}
	svc, calls := newTestService(store)

	if _, err := svc.GetTrendingStories(Options{}); err != nil {
		t.Fatalf("error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("empty cache should trigger pipeline, collect invoked %d times", *calls)
	}
}

func TestGetTrendingStoriesCategoryFilter(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	tech, err := svc.GetTrendingStories(Options{Category: "technology"})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if len(tech) != 1 || tech[0].Category != "technology" {
		t.Fatalf("category filter failed: %+v", tech)
	}

	// all 与空串都表示不过滤
	all, _ := svc.GetTrendingStories(Options{Category: "all"})
	if len(all) != 2 {
		t.Fatalf("category=all returned %d stories, want 2", len(all))
	}
	none, _ := svc.GetTrendingStories(Options{Category: "health"})
	if len(none) != 0 {
		t.Fatalf("category=health returned %d stories, want 0", len(none))
	}
}

func TestGetTrendingStoryByID(t *testing.T) {
	store := &fakeStore{}
	svc, calls := newTestService(store)

	if _, err := svc.Refresh(); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	want := store.cache.Stories[1]

	got, ok := svc.GetTrendingStoryByID(want.ID)
	if !ok {
		t.Fatalf("expected story %s to be found", want.ID)
	}
	if got.Title != want.Title || got.Category != want.Category {
		t.Fatalf("story mismatch: %+v vs %+v", got, want)
	}

	if _, ok := svc.GetTrendingStoryByID("trending-0-99"); ok {
		t.Fatalf("expected miss for unknown id")
	}

	// 按 ID 查询永不触发采集
	if *calls != 1 {
		t.Fatalf("collect invoked %d times, want 1", *calls)
	}
}

func TestRefreshToleratesCacheWriteFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("redis down")}
	svc, _ := newTestService(store)

	stories, err := svc.GetTrendingStories(Options{})
	if err != nil {
		t.Fatalf("cache write failure should not fail the request: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("got %d stories despite write failure, want 2", len(stories))
	}
}

func TestGetTrendingStoriesLoadErrorFallsThrough(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("db unreachable")}
	svc, calls := newTestService(store)

	stories, err := svc.GetTrendingStories(Options{})
	if err != nil {
		t.Fatalf("load failure should fall through to pipeline: %v", err)
	}
	if len(stories) != 2 || *calls != 1 {
		t.Fatalf("pipeline fallback failed: %d stories, %d collects", len(stories), *calls)
	}
}
