package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonnyk2/ai-news-summaries/internal/analysis"
	"github.com/jonnyk2/ai-news-summaries/internal/newsfeed"
	"github.com/jonnyk2/ai-news-summaries/internal/processor"
	"github.com/jonnyk2/ai-news-summaries/internal/storage"
	"github.com/jonnyk2/ai-news-summaries/internal/trending"
)

// TrendingService 榜单服务的窄接口，方便路由层用替身做单测
type TrendingService interface {
	GetTrendingStories(opts trending.Options) ([]processor.TrendingStory, error)
	GetTrendingStoryByID(id string) (*processor.TrendingStory, bool)
	Refresh() (int, error)
}

// FeedClient 外部新闻 API 供应链（gnews / newsdata 兜底切换）
type FeedClient interface {
	FetchTopHeadlines(ctx context.Context, category string, limit int) ([]newsfeed.Article, error)
}

// ArchiveStore 头条归档与书签
type ArchiveStore interface {
	ListHeadlines(source string, limit int, date string) ([]storage.Headline, error)
	ListCollectedDates(source string, limit int) ([]string, error)
	AddBookmark(story processor.TrendingStory) error
	ListBookmarks() ([]storage.Bookmark, error)
	RemoveBookmark(storyID string) error
}

// CommentaryBuilder 多视角解读生成器
type CommentaryBuilder interface {
	Build(ctx context.Context, story processor.TrendingStory) analysis.Commentary
}

type Server struct {
	trending   TrendingService
	feed       FeedClient
	archive    ArchiveStore
	commentary CommentaryBuilder
}

func NewServer(trending TrendingService, feed FeedClient, archive ArchiveStore, commentary CommentaryBuilder) *Server {
	return &Server{trending: trending, feed: feed, archive: archive, commentary: commentary}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/trending", s.getTrending)
		v1.POST("/trending/refresh", s.refreshTrending)
		v1.GET("/trending/:id", s.getTrendingByID)
		v1.GET("/trending/:id/analysis", s.getTrendingAnalysis)
		v1.GET("/categories", s.listCategories)
		v1.GET("/news", s.listNews)
		v1.GET("/headlines", s.listHeadlines)
		v1.GET("/headlines/dates", s.listHeadlineDates)
		v1.GET("/bookmarks", s.listBookmarks)
		v1.POST("/bookmarks", s.createBookmark)
		v1.DELETE("/bookmarks/:id", s.deleteBookmark)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
