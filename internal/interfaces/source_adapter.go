package interfaces

import (
	"context"

	"MovieSync/internal/config"
	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
)

// SourceAdapter 所有数据源必须实现的核心接口
type SourceAdapter interface {
	GetName() string                                                     // 数据源名称
	Profile() model.SourceType                                           // 列映射使用的源画像
	FetchMovies(ctx context.Context, limit int) (*model.RawTable, error) // 抓取原始表（未标准化）
}

// Factory 数据源适配器工厂函数签名
// 入参：数据源配置、日志实例
// 出参：实现SourceAdapter接口的适配器实例
type Factory func(cfg *config.SourceConfig, logger *logrus.Logger) SourceAdapter

// LoadResult 装载结果统计
type LoadResult struct {
	Movies     int64 `json:"movies"`      // movies表行数
	Genres     int64 `json:"genres"`      // genres表行数
	MovieGenre int64 `json:"movie_genre"` // movie_genres关联行数
}

// MovieRepository 通用数据库装载接口
type MovieRepository interface {
	// ReplaceAll 全量替换三张表（事务内，失败整体回滚）
	ReplaceAll(ctx context.Context, records []*model.ProcessedRecord) (*LoadResult, error)
}
