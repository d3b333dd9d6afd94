package storage

import (
	"encoding/json"
	"time"

	"github.com/jonnyk2/ai-news-summaries/internal/processor"
	"gorm.io/datatypes"
)

// Bookmark 用户收藏的热点：保存收藏时的完整故事快照，榜单刷新后仍可回看
type Bookmark struct {
	StoryID   string         `gorm:"primaryKey;size:64" json:"storyId"`
	Title     string         `gorm:"size:512" json:"title"`
	Category  string         `gorm:"size:32;index" json:"category"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AddBookmark 收藏一条热点（重复收藏忽略）
func (s *Store) AddBookmark(story processor.TrendingStory) error {
	bs, err := json.Marshal(story)
	if err != nil {
		return err
	}
	b := Bookmark{
		StoryID:   story.ID,
		Title:     story.Title,
		Category:  story.Category,
		Data:      datatypes.JSON(bs),
		CreatedAt: time.Now(),
	}
	return s.DB.Where("story_id = ?", story.ID).FirstOrCreate(&b).Error
}

// ListBookmarks 按收藏先后返回全部收藏
func (s *Store) ListBookmarks() ([]Bookmark, error) {
	var list []Bookmark
	err := s.DB.Order("created_at ASC").Find(&list).Error
	return list, err
}

// RemoveBookmark 取消收藏
func (s *Store) RemoveBookmark(storyID string) error {
	return s.DB.Where("story_id = ?", storyID).Delete(&Bookmark{}).Error
}
