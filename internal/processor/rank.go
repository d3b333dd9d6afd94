package processor

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMinSources 进入热榜至少需要的不同媒体数
const DefaultMinSources = 2

// Perspective 同一事件下单家媒体的报道视角
type Perspective struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// TrendingStory 排名后的热点事件
type TrendingStory struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	SourceCount int      `json:"sourceCount"`
	Sources     []string `json:"sources"`
	// Perspectives 按入簇顺序排列，一条新闻对应一个视角
	Perspectives []Perspective `json:"perspectives"`
}

// TrendingCache 全量热榜快照，每次刷新整体替换而非增量合并
type TrendingCache struct {
	Stories     []TrendingStory `json:"stories"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// RankClusters 过滤掉报道媒体数不足 minSources 的簇，按媒体数降序
// 稳定排序（同数保持建簇先后），再映射成带 ID 的 TrendingStory。
// ID 带上生成时间戳和名次，同一轮刷新内必然唯一。
func RankClusters(clusters []*Cluster, minSources int, now time.Time) []TrendingStory {
	if minSources < 1 {
		minSources = DefaultMinSources
	}

	kept := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		if len(c.Sources) >= minSources {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return len(kept[i].Sources) > len(kept[j].Sources)
	})

	gen := now.UnixMilli()
	stories := make([]TrendingStory, 0, len(kept))
	for i, c := range kept {
		rep := c.Representative()
		perspectives := make([]Perspective, 0, len(c.Headlines))
		for _, h := range c.Headlines {
			perspectives = append(perspectives, Perspective{
				Source:  h.Source,
				Title:   h.Title,
				Summary: h.Summary,
				Link:    h.Link,
			})
		}
		stories = append(stories, TrendingStory{
			ID:           fmt.Sprintf("trending-%d-%d", gen, i),
			Title:        rep.Title,
			Summary:      rep.Summary,
			Category:     c.Category,
			SourceCount:  len(c.Sources),
			Sources:      append([]string(nil), c.Sources...),
			Perspectives: perspectives,
		})
	}
	return stories
}
