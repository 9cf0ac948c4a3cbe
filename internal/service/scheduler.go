package service

import (
	"context"
	"time"

	"MovieSync/internal/config"

	"github.com/sirupsen/logrus"
)

// Scheduler 定时调度器：按固定间隔重跑完整流水线
// interval_minutes<=0时调度关闭，仅保留API手动触发
type Scheduler struct {
	cfg      *config.Config
	pipeline *PipelineService
	logger   *logrus.Logger
}

func NewScheduler(cfg *config.Config, pipeline *PipelineService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, pipeline: pipeline, logger: logger}
}

// Start 启动调度循环，ctx取消后退出
// run_on_start为真时先立即跑一次，再进入定时循环
func (s *Scheduler) Start(ctx context.Context) {
	interval := time.Duration(s.cfg.Sync.IntervalMinutes) * time.Minute
	if interval <= 0 {
		s.logger.Info("定时调度已关闭（interval_minutes<=0）")
		return
	}

	if s.cfg.Sync.RunOnStart {
		s.runOnce(ctx)
	}

	s.logger.Infof("定时调度启动，间隔%v", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("定时调度退出")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	// 调度触发固定走auto优先级链与配置条数
	if _, err := s.pipeline.Run(ctx, "", 0); err != nil {
		s.logger.WithError(err).Error("定时流水线运行失败，等待下一周期")
	}
}
