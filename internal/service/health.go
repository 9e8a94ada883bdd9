package service

import (
	"context"
	"sync/atomic"
)

// Pinger 依賴服務的連線檢查
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool
	deps  []Pinger
}

func NewHealthService(deps ...Pinger) *HealthService {
	s := &HealthService{deps: deps}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

// IsReady 啟動完成且所有依賴都能連線
func (s *HealthService) IsReady(ctx context.Context) bool {
	if !s.ready.Load() {
		return false
	}
	for _, dep := range s.deps {
		if err := dep.Ping(ctx); err != nil {
			return false
		}
	}
	return true
}
