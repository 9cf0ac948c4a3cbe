package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MovieSync/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create 登记一次流水线启动
func (r *RunRepository) Create(ctx context.Context, run *model.PipelineRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("登记流水线启动失败: %w", err)
	}
	return nil
}

// Finish 回写运行结果：状态、统计JSON、失败原因、耗时
func (r *RunRepository) Finish(ctx context.Context, run *model.PipelineRun, status string, stats map[string]interface{}, runErr error) error {
	now := time.Now()
	run.Status = status
	run.FinishedAt = &now
	run.DurationMS = now.Sub(run.StartedAt).Milliseconds()
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if stats != nil {
		raw, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("序列化运行统计失败: %w", err)
		}
		run.Stats = datatypes.JSON(raw)
	}
	if err := r.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("回写运行结果失败: %w", err)
	}
	return nil
}

// List 按启动时间倒序取最近limit条运行记录
func (r *RunRepository) List(ctx context.Context, limit int) ([]*model.PipelineRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*model.PipelineRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("查询运行记录失败: %w", err)
	}
	return runs, nil
}
