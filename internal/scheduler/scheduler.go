package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher 触发一轮完整的采集-聚类-排名流水线
type Refresher interface {
	Refresh() (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	service Refresher
}

func New(spec string, service Refresher) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{cron: c, service: service}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮刷新，避免与用户首次打开页面的请求争抢资源，首屏加载更快
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

// RunOnce 对外暴露的单次执行入口，方便手动触发刷新
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	log.Println("start trending refresh job...")
	count, err := s.service.Refresh()
	if err != nil {
		log.Printf("trending refresh error: %v", err)
		return
	}
	log.Printf("trending refresh done, %d stories", count)
}
