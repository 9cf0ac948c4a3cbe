package service

import (
	"context"
	"fmt"
	"time"

	"MovieSync/internal/config"
	"MovieSync/internal/interfaces"
	"MovieSync/internal/model"
	"MovieSync/internal/repository"
	"MovieSync/internal/utils/csvio"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PipelineService 流水线编排：抽取 → 转换 → 装载，每次运行落库留痕
type PipelineService struct {
	cfg       *config.Config
	extract   *ExtractService
	transform *TransformService
	movieRepo interfaces.MovieRepository
	runRepo   *repository.RunRepository
	logger    *logrus.Logger
}

func NewPipelineService(
	cfg *config.Config,
	extract *ExtractService,
	transform *TransformService,
	movieRepo interfaces.MovieRepository,
	runRepo *repository.RunRepository,
	logger *logrus.Logger,
) *PipelineService {
	return &PipelineService{
		cfg:       cfg,
		extract:   extract,
		transform: transform,
		movieRepo: movieRepo,
		runRepo:   runRepo,
		logger:    logger,
	}
}

// RunSummary 单次完整运行的结果摘要
type RunSummary struct {
	RunID      string                 `json:"run_id"`
	Source     string                 `json:"source"`
	Extracted  int                    `json:"extracted"`
	Processed  int                    `json:"processed"`
	Loaded     *interfaces.LoadResult `json:"loaded"`
	DurationMS int64                  `json:"duration_ms"`
}

// Run 执行一次完整流水线
// source为空或auto走默认优先级链；count<=0取配置的record_count
func (s *PipelineService) Run(ctx context.Context, source string, count int) (*RunSummary, error) {
	start := time.Now()
	run := &model.PipelineRun{
		RunUUID:   uuid.NewString(),
		Source:    source,
		Status:    "running",
		StartedAt: start,
	}
	if run.Source == "" {
		run.Source = string(model.SourceAuto)
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.WithError(err).Warn("运行留痕登记失败，流水线继续执行")
	}

	summary, err := s.runOnce(ctx, source, count)
	if err != nil {
		s.finishRun(ctx, run, "failed", nil, err)
		return nil, err
	}

	summary.RunID = run.RunUUID
	summary.DurationMS = time.Since(start).Milliseconds()
	run.Source = summary.Source
	s.finishRun(ctx, run, "success", map[string]interface{}{
		"source":       summary.Source,
		"extracted":    summary.Extracted,
		"processed":    summary.Processed,
		"movies":       summary.Loaded.Movies,
		"genres":       summary.Loaded.Genres,
		"movie_genres": summary.Loaded.MovieGenre,
	}, nil)

	s.logger.Infof("流水线运行完成：source=%s, 抽取%d条, 装载%d条, 耗时%dms",
		summary.Source, summary.Extracted, summary.Loaded.Movies, summary.DurationMS)
	return summary, nil
}

// runOnce 三阶段执行主体，阶段产物同时落CSV文件
func (s *PipelineService) runOnce(ctx context.Context, source string, count int) (*RunSummary, error) {
	// ========== 阶段1：抽取 ==========
	s.logger.Info("阶段1/3：数据抽取")
	table, usedSource, err := s.extract.Extract(ctx, source, count)
	if err != nil {
		return nil, fmt.Errorf("抽取阶段失败: %w", err)
	}
	stdPath := s.cfg.Pipeline.StandardizedPath()
	if err := csvio.WriteTable(stdPath, table); err != nil {
		return nil, fmt.Errorf("落盘标准化文件失败: %w", err)
	}
	s.logger.Infof("标准化文件已落盘: %s，共%d条", stdPath, table.NumRows())

	// ========== 阶段2：转换 ==========
	s.logger.Info("阶段2/3：数据转换")
	records, err := s.transform.Transform(table)
	if err != nil {
		return nil, fmt.Errorf("转换阶段失败: %w", err)
	}
	procPath := s.cfg.Pipeline.ProcessedPath()
	if err := csvio.WriteProcessed(procPath, records); err != nil {
		return nil, fmt.Errorf("落盘处理后文件失败: %w", err)
	}
	s.logger.Infof("处理后文件已落盘: %s，共%d条", procPath, len(records))

	// ========== 阶段3：装载 ==========
	s.logger.Info("阶段3/3：数据装载")
	loaded, err := s.movieRepo.ReplaceAll(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("装载阶段失败: %w", err)
	}

	return &RunSummary{
		Source:    usedSource,
		Extracted: table.NumRows(),
		Processed: len(records),
		Loaded:    loaded,
	}, nil
}

// ExtractOnly 仅执行抽取阶段并落盘标准化文件（供API单独触发）
func (s *PipelineService) ExtractOnly(ctx context.Context, source string, count int) (string, int, error) {
	table, usedSource, err := s.extract.Extract(ctx, source, count)
	if err != nil {
		return "", 0, err
	}
	path := s.cfg.Pipeline.StandardizedPath()
	if err := csvio.WriteTable(path, table); err != nil {
		return "", 0, fmt.Errorf("落盘标准化文件失败: %w", err)
	}
	return usedSource, table.NumRows(), nil
}

// ListRuns 最近运行记录
func (s *PipelineService) ListRuns(ctx context.Context, limit int) ([]*model.PipelineRun, error) {
	return s.runRepo.List(ctx, limit)
}

func (s *PipelineService) finishRun(ctx context.Context, run *model.PipelineRun, status string, stats map[string]interface{}, runErr error) {
	if err := s.runRepo.Finish(ctx, run, status, stats, runErr); err != nil {
		s.logger.WithError(err).Warn("运行留痕回写失败")
	}
}
