package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonnyk2/ai-news-summaries/internal/processor"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TrendingSnapshot 热榜快照表：整份缓存存成一行 JSON，重启后可直接恢复
type TrendingSnapshot struct {
	Key       string         `gorm:"primaryKey;size:64" json:"key"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
}

const trendingCacheKey = "trending:stories"

// LoadTrendingCache 读取热榜缓存：优先 Redis，未命中回退 DB 并回填 Redis。
// 不在这里判断过期，新鲜度由调用方依据 LastUpdated 决定；缓存不存在时返回 (nil, nil)
func (s *Store) LoadTrendingCache() (*processor.TrendingCache, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, trendingCacheKey).Bytes(); err == nil {
			var cache processor.TrendingCache
			if err := json.Unmarshal(bs, &cache); err == nil {
				return &cache, nil
			}
		}
	}

	var snap TrendingSnapshot
	silent := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)})
	if err := silent.Where("key = ?", trendingCacheKey).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var cache processor.TrendingCache
	if err := json.Unmarshal(snap.Data, &cache); err != nil {
		return nil, fmt.Errorf("decode trending snapshot: %w", err)
	}

	// 回填 Redis，减小后续读取的 DB 压力
	if s.Redis != nil {
		_ = s.Redis.Set(ctx, trendingCacheKey, []byte(snap.Data), 0).Err()
	}
	return &cache, nil
}

// SaveTrendingCache 整体覆盖热榜缓存，Redis 与 DB 双写。
// 任一侧失败不影响另一侧，返回第一个遇到的错误供调用方记录
func (s *Store) SaveTrendingCache(cache *processor.TrendingCache) error {
	bs, err := json.Marshal(cache)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var firstErr error
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, trendingCacheKey, bs, 0).Err(); err != nil {
			firstErr = err
			log.Printf("warn: save trending cache to redis: %v", err)
		}
	}

	snap := TrendingSnapshot{
		Key:       trendingCacheKey,
		Data:      datatypes.JSON(bs),
		UpdatedAt: time.Now(),
	}
	if err := s.DB.Save(&snap).Error; err != nil {
		if firstErr == nil {
			firstErr = err
		}
		log.Printf("warn: save trending snapshot to db: %v", err)
	}
	return firstErr
}
