package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonnyk2/ai-news-summaries/internal/processor"
)

const excerptMaxRunes = 1200

// Viewpoint 单条视角点评，对应故事里的一个报道来源
type Viewpoint struct {
	Source     string `json:"source"`
	Angle      string `json:"angle"`
	Commentary string `json:"commentary"`
	Link       string `json:"link"`
}

// Commentary 一条热点故事的多视角解读
type Commentary struct {
	ID          string      `json:"id"`
	StoryID     string      `json:"storyId"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Overview    string      `json:"overview"`
	Viewpoints  []Viewpoint `json:"viewpoints"`
	Excerpt     string      `json:"excerpt,omitempty"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// Builder 基于模板生成解读，可选接入 article-extractor 取原文摘录
type Builder struct {
	extractor *ExtractorClient
	now       func() time.Time
}

func NewBuilder(extractor *ExtractorClient) *Builder {
	return &Builder{extractor: extractor, now: time.Now}
}

// 视角按来源顺序轮换，保证同一故事的输出稳定
var angleNames = []string{"facts", "impact", "context"}

var categoryLead = map[string]string{
	"politics":    "Coverage focuses on the political stakes and how officials are responding.",
	"technology":  "Coverage focuses on the technology itself and what it may change for the industry.",
	"business":    "Coverage focuses on market reaction and the money at stake.",
	"health":      "Coverage focuses on the public health picture and what experts recommend.",
	"environment": "Coverage focuses on the environmental impact and the longer term outlook.",
	"general":     "Outlets are approaching the story from noticeably different angles.",
}

// Build 为一条热点故事生成多视角解读；摘录失败时仅靠摘要
func (b *Builder) Build(ctx context.Context, story processor.TrendingStory) Commentary {
	c := Commentary{
		ID:          uuid.NewString(),
		StoryID:     story.ID,
		Title:       story.Title,
		Category:    story.Category,
		Overview:    overview(story),
		GeneratedAt: b.now(),
	}

	c.Viewpoints = make([]Viewpoint, 0, len(story.Perspectives))
	for i, p := range story.Perspectives {
		angle := angleNames[i%len(angleNames)]
		c.Viewpoints = append(c.Viewpoints, Viewpoint{
			Source:     p.Source,
			Angle:      angle,
			Commentary: viewpointCommentary(angle, p),
			Link:       p.Link,
		})
	}

	c.Excerpt = b.excerpt(ctx, story)
	return c
}

func overview(story processor.TrendingStory) string {
	lead, ok := categoryLead[story.Category]
	if !ok {
		lead = categoryLead["general"]
	}
	return fmt.Sprintf("%d sources are covering this story. %s", story.SourceCount, lead)
}

func viewpointCommentary(angle string, p processor.Perspective) string {
	detail := p.Summary
	if detail == "" {
		detail = p.Title
	}
	switch angle {
	case "facts":
		return fmt.Sprintf("%s leads with \"%s\", keeping to the reported facts.", p.Source, p.Title)
	case "impact":
		return fmt.Sprintf("%s looks at who stands to be affected: %s", p.Source, detail)
	default:
		return fmt.Sprintf("%s sets the story against a wider backdrop: %s", p.Source, detail)
	}
}

// excerpt 尝试抓第一条报道的正文，边车未配置或失败时返回空串
func (b *Builder) excerpt(ctx context.Context, story processor.TrendingStory) string {
	if b.extractor == nil || len(story.Perspectives) == 0 {
		return ""
	}
	link := story.Perspectives[0].Link
	if link == "" {
		return ""
	}
	text, err := b.extractor.Extract(ctx, link, excerptMaxRunes)
	if err != nil {
		log.Printf("extract article text: %v (story=%s)", err, story.ID)
		return ""
	}
	return text
}
