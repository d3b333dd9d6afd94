package processor

import (
	"github.com/jonnyk2/ai-news-summaries/internal/collector"
)

// DefaultSimilarityThreshold 聚类判定阈值
const DefaultSimilarityThreshold = 0.35

// Cluster 一组讲同一事件的新闻。Headlines[0] 是种子：后续成员的相似度只和它比
type Cluster struct {
	Headlines []collector.Headline
	// Sources 去重后的媒体名，保持首次出现顺序
	Sources  []string
	Category string
}

func newCluster(h collector.Headline) *Cluster {
	return &Cluster{
		Headlines: []collector.Headline{h},
		Sources:   []string{h.Source},
		// 分类只在建簇时按种子算一次，后续成员不再改变它
		Category: Categorize(h.Title, h.Summary),
	}
}

func (c *Cluster) add(h collector.Headline) {
	c.Headlines = append(c.Headlines, h)
	for _, s := range c.Sources {
		if s == h.Source {
			return
		}
	}
	c.Sources = append(c.Sources, h.Source)
}

// ClusterHeadlines 单遍贪心聚类：每条新闻依建簇顺序和各簇种子标题比较，
// 第一个达到阈值的簇获胜；都不匹配则自己开新簇。
// 刻意不做全量两两比较也不做传递合并，n 条新闻只需 O(n·k) 次相似度计算。
func ClusterHeadlines(headlines []collector.Headline, threshold float64) []*Cluster {
	var clusters []*Cluster
	for _, h := range headlines {
		assigned := false
		for _, c := range clusters {
			if Similarity(h.Title, c.Headlines[0].Title) >= threshold {
				c.add(h)
				assigned = true
				break
			}
		}
		if !assigned {
			clusters = append(clusters, newCluster(h))
		}
	}
	return clusters
}

// Representative 返回簇内"信息量最高"的一条，标题过短或过长都降权
func (c *Cluster) Representative() collector.Headline {
	best := c.Headlines[0]
	bestScore := titleScore(best.Title)
	for _, h := range c.Headlines[1:] {
		if s := titleScore(h.Title); s > bestScore {
			best = h
			bestScore = s
		}
	}
	return best
}

// titleScore 长度即得分，超过 100 个字符后按 200-长度 递减；
// 过短的标题得分自然偏低，中等长度最受青睐
func titleScore(title string) int {
	n := len([]rune(title))
	if n > 100 {
		return 200 - n
	}
	return n
}
