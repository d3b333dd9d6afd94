package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/jonnyk2/ai-news-summaries/internal/collector"
	"github.com/jonnyk2/ai-news-summaries/internal/config"
	"github.com/jonnyk2/ai-news-summaries/internal/scheduler"
	"github.com/jonnyk2/ai-news-summaries/internal/storage"
	"github.com/jonnyk2/ai-news-summaries/internal/trending"
)

// 一个仅执行一轮刷新的命令行入口：适合手动触发或排查采集问题
func main() {
	godotenv.Load()

	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	outlets, err := collector.LoadOutlets(cfg.OutletsPath)
	if err != nil {
		log.Printf("load outlets from %s: %v, using built-in list", cfg.OutletsPath, err)
		outlets = collector.DefaultOutlets()
	}

	svc := trending.NewService(store,
		func() []collector.Headline { return collector.CollectAll(outlets) },
		cfg.SimilarityThreshold, cfg.MinSources, cfg.CacheMaxAge)

	s, err := scheduler.New(cfg.CronSpec, svc)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	// 只执行一轮刷新后退出
	s.RunOnce()
}
