package collector

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// ScrapeFetcher 按配置的 CSS 选择器抓取媒体首页的新闻列表
type ScrapeFetcher struct {
	Outlet Outlet
}

func (f *ScrapeFetcher) Name() string {
	return f.Outlet.Name
}

const summaryMaxRunes = 280

func (f *ScrapeFetcher) Fetch() ([]Headline, error) {
	log.Printf("fetch %s (scrape)...", f.Outlet.Name)

	base, err := url.Parse(f.Outlet.URL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: parse url: %w", f.Outlet.Name, err)
	}

	c := colly.NewCollector(
		colly.AllowedDomains(allowedHosts(base.Hostname())...),
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(outletTimeout)

	sel := f.Outlet.Selectors
	results := make([]Headline, 0, maxPerOutlet)
	now := time.Now()

	// 媒体页面结构随时可能调整，这里基于配置的选择器做"尽力而为"的解析
	c.OnHTML(sel.Item, func(e *colly.HTMLElement) {
		if len(results) >= maxPerOutlet {
			return
		}

		title := cleanText(e.ChildText(sel.Title))
		if sel.Title == "" {
			title = cleanText(e.Text)
		}
		if title == "" {
			return
		}

		href := ""
		if sel.Link != "" {
			href = e.ChildAttr(sel.Link, "href")
		}
		if href == "" {
			href = e.ChildAttr("a", "href")
		}
		if href == "" {
			href = e.Attr("href")
		}
		if href == "" {
			return
		}
		link := e.Request.AbsoluteURL(href)
		if link == "" {
			return
		}

		summary := ""
		if sel.Summary != "" {
			summary = cleanText(e.ChildText(sel.Summary))
		}
		if summary == "" {
			summary = cleanText(e.ChildText("p"))
		}
		if summary == title {
			summary = ""
		}
		summary = truncateRunes(summary, summaryMaxRunes)

		results = append(results, Headline{
			Title:     title,
			Summary:   summary,
			Link:      link,
			Source:    f.Outlet.Name,
			SourceURL: f.Outlet.URL,
			Timestamp: now,
			Extra:     map[string]any{"rank": len(results) + 1},
		})
	})

	visitErr := c.Visit(f.Outlet.URL)
	if visitErr != nil {
		log.Printf("fetch %s failed: %v", f.Outlet.Name, visitErr)
	}

	// 选择器没匹配到任何内容时退一步：直接扫页面里的标题型链接
	if len(results) == 0 {
		results = f.fallbackHeadlines(base, now)
	}
	if len(results) == 0 {
		if visitErr != nil {
			return nil, fmt.Errorf("scrape %s: %w", f.Outlet.Name, visitErr)
		}
		log.Printf("fetch %s got 0 headlines", f.Outlet.Name)
	}

	return results, nil
}

// fallbackHeadlines 选择器失效时的兜底解析：取 h1/h2/h3 下的链接文本
func (f *ScrapeFetcher) fallbackHeadlines(base *url.URL, now time.Time) []Headline {
	client := &http.Client{Timeout: outletTimeout}
	req, err := http.NewRequest(http.MethodGet, f.Outlet.URL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("fallback fetch %s: %v", f.Outlet.Name, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	results := make([]Headline, 0, maxPerOutlet)
	seen := make(map[string]struct{})
	doc.Find("h1 a, h2 a, h3 a").Each(func(i int, s *goquery.Selection) {
		if len(results) >= maxPerOutlet {
			return
		}
		title := cleanText(s.Text())
		// 过短的链接文本多为导航项，不当标题
		if len([]rune(title)) < 20 {
			return
		}
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		link := resolveLink(base, href)
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		results = append(results, Headline{
			Title:     title,
			Link:      link,
			Source:    f.Outlet.Name,
			SourceURL: f.Outlet.URL,
			Timestamp: now,
			Extra:     map[string]any{"rank": len(results) + 1, "fallback": true},
		})
	})
	if len(results) > 0 {
		log.Printf("fetch %s used fallback parse, got %d headlines", f.Outlet.Name, len(results))
	}
	return results
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// allowedHosts 返回 host 及其 www 变体，避免站点在裸域名与 www 间跳转时被过滤掉
func allowedHosts(host string) []string {
	hosts := []string{host}
	if strings.HasPrefix(host, "www.") {
		hosts = append(hosts, strings.TrimPrefix(host, "www."))
	} else {
		hosts = append(hosts, "www."+host)
	}
	return hosts
}
