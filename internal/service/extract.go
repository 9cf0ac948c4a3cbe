package service

import (
	"context"
	"os"

	"MovieSync/internal/adapter"
	"MovieSync/internal/adapter/wikipedia"
	"MovieSync/internal/config"
	"MovieSync/internal/mapping"
	"MovieSync/internal/model"
	"MovieSync/internal/utils/csvio"

	"github.com/sirupsen/logrus"
)

// ExtractService 抽取服务：按优先级链产出标准化表，保证永不为空
// 优先级：已有标准化文件 → 配置顺序逐个尝试数据源 → 内置兜底片单
type ExtractService struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func NewExtractService(cfg *config.Config, logger *logrus.Logger) *ExtractService {
	return &ExtractService{cfg: cfg, logger: logger}
}

// Extract 返回标准化表（恰好九个标准字段）和实际使用的数据源名称
// source为auto时：先找已有标准化文件，再按sync.source_order逐源尝试；
// 指定具体源时只尝试该源。任何抓取失败只告警并落入下一环，最终兜底永不失败
func (s *ExtractService) Extract(ctx context.Context, source string, limit int) (*model.RawTable, string, error) {
	if limit <= 0 {
		limit = s.cfg.Pipeline.RecordCount
	}

	// 1. auto模式：已有标准化文件则原样加载
	if source == "" || source == string(model.SourceAuto) {
		path := s.cfg.Pipeline.StandardizedPath()
		if _, err := os.Stat(path); err == nil {
			table, err := csvio.ReadTable(path)
			if err == nil && table.NumRows() > 0 {
				s.logger.Infof("加载已有标准化文件: %s，共%d条", path, table.NumRows())
				return table, "file", nil
			}
			s.logger.WithError(err).Warnf("标准化文件加载失败，改走数据源抓取: %s", path)
		}
	}

	// 2. 按顺序尝试数据源（单次尝试，失败即切下一个，无退避重试）
	order := s.cfg.Sync.SourceOrder
	if source != "" && source != string(model.SourceAuto) {
		order = []string{source}
	}
	for _, name := range order {
		table, err := s.fetchFromSource(ctx, name, limit)
		if err != nil {
			s.logger.WithError(err).Warnf("数据源%s抓取失败，尝试下一个", name)
			continue
		}
		if table.NumRows() == 0 {
			s.logger.Warnf("数据源%s返回空表，尝试下一个", name)
			continue
		}
		s.logger.Infof("数据源%s抓取成功，共%d条", name, table.NumRows())
		return table, name, nil
	}

	// 3. 最终兜底：内置片单（零网络可用，永不失败）
	s.logger.Warn("全部数据源不可用，使用内置兜底片单")
	return wikipedia.FallbackTable(limit), "fallback", nil
}

// fetchFromSource 单个数据源的 抓取→列映射标准化
func (s *ExtractService) fetchFromSource(ctx context.Context, name string, limit int) (*model.RawTable, error) {
	factory, ok := adapter.GetFactory(name)
	if !ok {
		return nil, &UnknownSourceError{Name: name}
	}

	srcCfg := s.cfg.Sources[name]
	adp := factory(&srcCfg, s.logger)

	raw, err := adp.FetchMovies(ctx, limit)
	if err != nil {
		return nil, err
	}

	// 原始表过列映射器 → 标准九字段表
	colMap := mapping.BuildMapping(raw.Headers, adp.Profile())
	return mapping.ApplyMapping(raw, colMap), nil
}

// UnknownSourceError 请求了未注册的数据源
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return "未注册的数据源: " + e.Name
}
