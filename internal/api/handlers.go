package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonnyk2/ai-news-summaries/internal/processor"
	"github.com/jonnyk2/ai-news-summaries/internal/trending"
)

func (s *Server) getTrending(c *gin.Context) {
	minSources, err := strconv.Atoi(c.DefaultQuery("minSources", "0"))
	if err != nil || minSources < 0 {
		minSources = 0
	}
	refresh := c.Query("refresh")

	stories, err := s.trending.GetTrendingStories(trending.Options{
		MinSources:   minSources,
		Category:     c.Query("category"),
		ForceRefresh: refresh == "true" || refresh == "1",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    stories,
	})
}

func (s *Server) refreshTrending(c *gin.Context) {
	count, err := s.trending.Refresh()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "refresh failed",
			"data":    gin.H{"success": false, "error": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"success": true, "count": count},
	})
}

func (s *Server) getTrendingByID(c *gin.Context) {
	story, ok := s.trending.GetTrendingStoryByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "story not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    story,
	})
}

func (s *Server) getTrendingAnalysis(c *gin.Context) {
	story, ok := s.trending.GetTrendingStoryByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "story not found",
		})
		return
	}

	commentary := s.commentary.Build(c.Request.Context(), *story)
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    commentary,
	})
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    processor.Categories,
	})
}

func (s *Server) listNews(c *gin.Context) {
	if s.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "unavailable",
			"message": "news feed is not configured",
		})
		return
	}

	category := c.DefaultQuery("category", "general")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	articles, err := s.feed.FetchTopHeadlines(c.Request.Context(), category, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    articles,
	})
}

func (s *Server) listHeadlines(c *gin.Context) {
	source := c.Query("source")
	date := c.Query("date")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	items, err := s.archive.ListHeadlines(source, limit, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func (s *Server) listHeadlineDates(c *gin.Context) {
	source := c.Query("source")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit <= 0 {
		limit = 30
	}

	dates, err := s.archive.ListCollectedDates(source, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    dates,
	})
}

func (s *Server) listBookmarks(c *gin.Context) {
	items, err := s.archive.ListBookmarks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func (s *Server) createBookmark(c *gin.Context) {
	var req struct {
		StoryID string `json:"storyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.StoryID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "storyId is required",
		})
		return
	}

	// 书签只允许收藏当前榜单里的故事，id 每次刷新都会再生成
	story, ok := s.trending.GetTrendingStoryByID(req.StoryID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "not_found",
			"message": "story not in current trending list",
		})
		return
	}

	if err := s.archive.AddBookmark(*story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"storyId": story.ID},
	})
}

func (s *Server) deleteBookmark(c *gin.Context) {
	id := c.Param("id")
	if err := s.archive.RemoveBookmark(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    gin.H{"storyId": id},
	})
}
