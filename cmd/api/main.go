package main

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jonnyk2/ai-news-summaries/internal/analysis"
	"github.com/jonnyk2/ai-news-summaries/internal/api"
	"github.com/jonnyk2/ai-news-summaries/internal/collector"
	"github.com/jonnyk2/ai-news-summaries/internal/config"
	"github.com/jonnyk2/ai-news-summaries/internal/newsfeed"
	"github.com/jonnyk2/ai-news-summaries/internal/scheduler"
	"github.com/jonnyk2/ai-news-summaries/internal/storage"
	"github.com/jonnyk2/ai-news-summaries/internal/trending"
)

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
	log.Printf("collecting from %d outlets", len(outlets))

	svc := trending.NewService(store,
		func() []collector.Headline { return collector.CollectAll(outlets) },
		cfg.SimilarityThreshold, cfg.MinSources, cfg.CacheMaxAge)

	sched, err := scheduler.New(cfg.CronSpec, svc)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	sched.Start()

	feed := buildFeedChain(cfg)

	var extractor *analysis.ExtractorClient
	if cfg.ExtractorURL != "" {
		extractor = analysis.NewExtractorClient(cfg.ExtractorURL)
		log.Printf("article extractor enabled at %s", cfg.ExtractorURL)
	}
	commentary := analysis.NewBuilder(extractor)

	r := gin.Default()
	r.Use(corsMiddleware())

	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(svc, feed, store, commentary)
	apiServer.RegisterRoutes(r)

	// 若配置了前端目录，则托管 SPA 静态文件并做 fallback
	if cfg.WebRoot != "" {
		assetsDir := filepath.Join(cfg.WebRoot, "assets")
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", assetsDir)
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			// SPA：未匹配 API 的 GET 均返回 index.html
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// buildFeedChain 按配置的 key 组装新闻 API 供应链，一个 key 都没有时关闭 /news
func buildFeedChain(cfg *config.Config) api.FeedClient {
	var providers []newsfeed.Provider
	if cfg.GNewsAPIKey != "" {
		providers = append(providers, newsfeed.NewGNewsClient(cfg.GNewsAPIKey))
	}
	if cfg.NewsDataAPIKey != "" {
		providers = append(providers, newsfeed.NewNewsDataClient(cfg.NewsDataAPIKey))
	}
	if len(providers) == 0 {
		log.Println("warn: no news api keys configured, /api/v1/news disabled")
		return nil
	}
	return newsfeed.NewChain(cfg.NewsRatePerMin, providers...)
}

func corsMiddleware() gin.HandlerFunc {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return cors.Default()
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	})
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
