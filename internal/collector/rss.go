package collector

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSFetcher 通过 RSS/Atom 订阅源采集，适合没有稳定 DOM 结构的媒体
type RSSFetcher struct {
	Outlet Outlet
}

func (f *RSSFetcher) Name() string {
	return f.Outlet.Name
}

func (f *RSSFetcher) Fetch() ([]Headline, error) {
	log.Printf("fetch %s (rss)...", f.Outlet.Name)

	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = &http.Client{Timeout: outletTimeout}

	feed, err := fp.ParseURL(f.Outlet.URL)
	if err != nil {
		return nil, fmt.Errorf("rss %s: %w", f.Outlet.Name, err)
	}

	base, _ := url.Parse(f.Outlet.URL)
	now := time.Now()
	results := make([]Headline, 0, maxPerOutlet)
	for _, it := range feed.Items {
		if len(results) >= maxPerOutlet {
			break
		}
		if it == nil {
			continue
		}
		title := cleanText(it.Title)
		if title == "" {
			continue
		}
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}
		// 个别源给相对链接，统一补全成绝对地址
		if base != nil && !strings.HasPrefix(link, "http") {
			link = resolveLink(base, link)
		}
		if link == "" {
			continue
		}

		summary := cleanText(stripHTML(it.Description))
		if summary == "" && it.Content != "" {
			summary = cleanText(stripHTML(it.Content))
		}
		if summary == title {
			summary = ""
		}
		summary = truncateRunes(summary, summaryMaxRunes)

		// 订阅源自带的元数据按原样带走，归档后便于排查与回溯
		extra := map[string]any{}
		if it.Published != "" {
			extra["published"] = it.Published
		}
		if len(it.Categories) > 0 {
			extra["categories"] = it.Categories
		}
		if len(extra) == 0 {
			extra = nil
		}

		results = append(results, Headline{
			Title:     title,
			Summary:   summary,
			Link:      link,
			Source:    f.Outlet.Name,
			SourceURL: f.Outlet.URL,
			Timestamp: now,
			Extra:     extra,
		})
	}

	if len(results) == 0 {
		log.Printf("fetch %s got 0 headlines", f.Outlet.Name)
	}
	return results, nil
}

// stripHTML 去掉描述里的 HTML 标签，RSS 摘要经常混入 <a>/<img> 等
func stripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
