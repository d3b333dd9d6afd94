package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonnyk2/ai-news-summaries/internal/collector"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Headline 采集归档表：每条抓到的新闻入一行，以链接作幂等键
type Headline struct {
	ID      string `gorm:"primaryKey;size:40" json:"id"`
	Title   string `gorm:"size:512" json:"title"`
	Summary string `gorm:"size:600" json:"summary"`
	Link    string `gorm:"size:1024;uniqueIndex" json:"link"`
	Source  string `gorm:"size:128;index" json:"source"`
	// SourceURL 媒体入口页，同一媒体的所有新闻共用
	SourceURL string `gorm:"size:256" json:"sourceUrl"`
	// CollectedDate 采集日期 YYYY-MM-DD，便于按天筛选
	CollectedDate string            `gorm:"size:10;index" json:"collectedDate"`
	CollectedAt   time.Time         `gorm:"index" json:"collectedAt"`
	Extra         datatypes.JSONMap `gorm:"type:jsonb" json:"extra"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Headline{}, &TrendingSnapshot{}, &Bookmark{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

func hashLink(link string) string {
	h := sha1.New()
	h.Write([]byte(link))
	return hex.EncodeToString(h.Sum(nil))
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误（个别媒体页面声明与实际编码不符）
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断字符串，保证不超过数据库字段长度（例如 varchar(600)）
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveHeadlines 归档一批采集结果。以链接作幂等键，重复采集到的条目只更新标题与摘要
func (s *Store) SaveHeadlines(items []collector.Headline) error {
	for _, it := range items {
		if it.Link == "" {
			continue
		}
		title := truncateRunesDB(toValidUTF8(it.Title), 512)
		summary := truncateRunesDB(toValidUTF8(it.Summary), 600)
		h := &Headline{
			ID:            hashLink(it.Link),
			Title:         title,
			Summary:       summary,
			Link:          it.Link,
			Source:        it.Source,
			SourceURL:     it.SourceURL,
			CollectedDate: it.Timestamp.UTC().Format("2006-01-02"),
			CollectedAt:   it.Timestamp,
			Extra:         datatypes.JSONMap(it.Extra),
		}

		if err := s.DB.Where("link = ?", it.Link).FirstOrCreate(h).Error; err != nil {
			return err
		}
		_ = s.DB.Model(h).Updates(map[string]any{
			"title":          title,
			"summary":        summary,
			"collected_at":   it.Timestamp,
			"collected_date": h.CollectedDate,
		}).Error
	}

	// 不做按 key 通配删除，列表缓存依赖短 TTL 自然过期
	return nil
}

// ListHeadlines 返回最近归档的新闻，可按媒体与采集日期筛选，Redis 缓存 5 分钟
func (s *Store) ListHeadlines(source string, limit int, date string) ([]Headline, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("headlines:list:%s:%d:%s", source, limit, date)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Headline
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []Headline
	db := s.DB.Model(&Headline{})
	if source != "" {
		db = db.Where("source = ?", source)
	}
	if date != "" {
		db = db.Where("collected_date = ?", date)
	}
	if err := db.Order("collected_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// ListCollectedDates 返回有归档数据的日期列表（倒序），结果缓存 5 分钟
func (s *Store) ListCollectedDates(source string, limit int) ([]string, error) {
	if limit <= 0 || limit > 365 {
		limit = 31
	}
	ctx := context.Background()
	cacheKey := fmt.Sprintf("headlines:dates:%s:%d", source, limit)
	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []string
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	sql := `SELECT DISTINCT collected_date AS d FROM headlines WHERE TRIM(COALESCE(collected_date, '')) <> ''`
	args := []interface{}{}
	if source != "" {
		sql += ` AND source = ?`
		args = append(args, source)
	}
	sql += ` ORDER BY d DESC LIMIT ?`
	args = append(args, limit)

	var rows []struct{ D string }
	if err := s.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.D != "" {
			dates = append(dates, r.D)
		}
	}
	if s.Redis != nil && len(dates) > 0 {
		if bs, err := json.Marshal(dates); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, 5*time.Minute).Err()
		}
	}
	return dates, nil
}
