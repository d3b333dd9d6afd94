package collector

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type stubFetcher struct {
	name  string
	items []Headline
	err   error
	delay time.Duration
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch() ([]Headline, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.items, s.err
}

func stubItems(source string, n int) []Headline {
	items := make([]Headline, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Headline{
			Title:  fmt.Sprintf("%s headline %d", source, i),
			Link:   fmt.Sprintf("https://example.com/%s/%d", source, i),
			Source: source,
		})
	}
	return items
}

func TestCollectKeepsConfigOrder(t *testing.T) {
	// 第一个源故意最慢，结果顺序仍要按配置顺序而不是完成顺序
	fetchers := []Fetcher{
		&stubFetcher{name: "A", items: stubItems("A", 2), delay: 30 * time.Millisecond},
		&stubFetcher{name: "B", items: stubItems("B", 1)},
		&stubFetcher{name: "C", items: stubItems("C", 2)},
	}

	out := Collect(fetchers)

	wantSources := []string{"A", "A", "B", "C", "C"}
	if len(out) != len(wantSources) {
		t.Fatalf("collected %d headlines, want %d", len(out), len(wantSources))
	}
	for i, h := range out {
		if h.Source != wantSources[i] {
			t.Fatalf("headline %d from %s, want %s", i, h.Source, wantSources[i])
		}
	}
}

func TestCollectIsolatesFailures(t *testing.T) {
	fetchers := []Fetcher{
		&stubFetcher{name: "A", items: stubItems("A", 1)},
		&stubFetcher{name: "B", err: errors.New("connection refused")},
		&stubFetcher{name: "C", items: stubItems("C", 1)},
	}

	out := Collect(fetchers)

	if len(out) != 2 {
		t.Fatalf("collected %d headlines, want 2", len(out))
	}
	if out[0].Source != "A" || out[1].Source != "C" {
		t.Fatalf("unexpected sources: %s, %s", out[0].Source, out[1].Source)
	}
}

func TestCollectCapsPerOutlet(t *testing.T) {
	fetchers := []Fetcher{
		&stubFetcher{name: "A", items: stubItems("A", maxPerOutlet+5)},
	}

	out := Collect(fetchers)

	if len(out) != maxPerOutlet {
		t.Fatalf("collected %d headlines, want cap %d", len(out), maxPerOutlet)
	}
}

func TestCollectAllEmptyOutlets(t *testing.T) {
	if out := CollectAll(nil); len(out) != 0 {
		t.Fatalf("expected no headlines, got %d", len(out))
	}
}
