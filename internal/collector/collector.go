package collector

import (
	"strings"
	"time"
)

// Headline 统一采集后的基础结构：一条来自某个媒体的新闻标题
type Headline struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	// Link 为绝对地址，采集时已做相对路径补全
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	SourceURL string    `json:"sourceUrl"`
	Timestamp time.Time `json:"timestamp"`
	// Extra 源特有的附加字段（页面位次、RSS 的发布时间与栏目等），原样入归档表
	Extra map[string]any `json:"extra,omitempty"`
}

// Selectors 描述如何从媒体列表页里取出一条新闻
type Selectors struct {
	// Item 匹配"一条新闻"所在的块，Title/Summary/Link 在块内查找
	Item    string `yaml:"item" json:"item"`
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
	Link    string `yaml:"link" json:"link"`
}

// Outlet 一个新闻媒体的采集配置
type Outlet struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
	// Kind: scrape(默认，按选择器解析 HTML) / rss
	Kind      string    `yaml:"kind" json:"kind"`
	Selectors Selectors `yaml:"selectors" json:"selectors"`
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch() ([]Headline, error)
}

const (
	// 每个媒体最多保留 10 条，控制后续聚类的计算量
	maxPerOutlet = 10

	outletTimeout = 10 * time.Second
	userAgent     = "AINewsBot/1.0"
)

// NewFetcher 按 outlet 类型返回对应的采集器
func NewFetcher(o Outlet) Fetcher {
	switch strings.ToLower(strings.TrimSpace(o.Kind)) {
	case "rss":
		return &RSSFetcher{Outlet: o}
	default:
		return &ScrapeFetcher{Outlet: o}
	}
}

// cleanText 合并连续空白，换行压成单个空格
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes 按 rune 数截断，超长时追加省略号
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
