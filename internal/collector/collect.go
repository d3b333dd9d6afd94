package collector

import (
	"log"
	"sync"
)

// Fetchers 为每个 outlet 构造对应的采集器
func Fetchers(outlets []Outlet) []Fetcher {
	fetchers := make([]Fetcher, 0, len(outlets))
	for _, o := range outlets {
		fetchers = append(fetchers, NewFetcher(o))
	}
	return fetchers
}

// Collect 并发执行所有采集器。单个源失败只打日志不中断其它源；
// 结果按 fetchers 的顺序拼接，与完成先后无关，保证下游聚类输入顺序稳定。
func Collect(fetchers []Fetcher) []Headline {
	results := make([][]Headline, len(fetchers))

	var wg sync.WaitGroup
	for i, f := range fetchers {
		i, f := i, f
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := f.Name()
			items, err := f.Fetch()
			if err != nil {
				log.Printf("collect %s error: %v", name, err)
				return
			}
			if len(items) == 0 {
				log.Printf("collect %s got 0 headlines", name)
				return
			}
			if len(items) > maxPerOutlet {
				items = items[:maxPerOutlet]
			}
			results[i] = items
			log.Printf("collect %s done, %d headlines", name, len(items))
		}()
	}
	wg.Wait()

	total := 0
	for _, items := range results {
		total += len(items)
	}
	out := make([]Headline, 0, total)
	for _, items := range results {
		out = append(out, items...)
	}
	log.Printf("collect done, %d headlines from %d outlets", len(out), len(fetchers))
	return out
}

// CollectAll 按 outlet 配置采集全部媒体
func CollectAll(outlets []Outlet) []Headline {
	return Collect(Fetchers(outlets))
}
