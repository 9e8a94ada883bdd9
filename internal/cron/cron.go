package cron

import (
	"context"
	"time"

	"backoffice/config"
	"backoffice/internal/organization"
	"backoffice/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

const defaultSweepSpec = "0 * * * * *"

type Cron struct {
	logger            *zap.Logger
	config            *config.Configuration
	server            *cron.Cron
	assignmentService *service.AssignmentService
	catalogSource     *service.MongoCatalogSource
}

// NewCron .
func NewCron(
	logger *zap.Logger,
	config *config.Configuration,
	assignmentService *service.AssignmentService,
	catalogSource *service.MongoCatalogSource,
) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Cron{
		logger:            logger,
		config:            config,
		server:            server,
		assignmentService: assignmentService,
		catalogSource:     catalogSource,
	}
}

func (c *Cron) Run() error {
	sweepSpec := c.config.Assignment.SweepSpec
	if sweepSpec == "" {
		sweepSpec = defaultSweepSpec
	}
	if _, err := c.server.AddFunc(sweepSpec, c.SweepAssignments); err != nil {
		return err
	}

	// 未設定排程時不預熱
	if spec := c.config.Catalog.WarmSpec; spec != "" && c.config.Catalog.CacheEnabled {
		if _, err := c.server.AddFunc(spec, c.WarmCatalog); err != nil {
			return err
		}
	}

	c.server.Start()
	return nil
}

// SweepAssignments 回收閒置的編輯工作階段
func (c *Cron) SweepAssignments() {
	c.assignmentService.Sweep(time.Now())
}

// WarmCatalog 重新讀取可快取的參考資料並寫入 Redis
func (c *Cron) WarmCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, kind := range organization.Collections() {
		if !service.Cacheable(kind) {
			continue
		}
		n, err := c.catalogSource.Refresh(ctx, kind)
		if err != nil {
			c.logger.Warn("warm catalog cache failed", zap.String("collection", string(kind)), zap.Error(err))
			continue
		}
		c.logger.Debug("warm catalog cache", zap.String("collection", string(kind)), zap.Int("count", n))
	}
}

func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
