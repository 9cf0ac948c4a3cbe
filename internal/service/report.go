package service

import (
	"context"
	"fmt"
	"sort"

	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportService 分析报表：全部基于装载后的SQLite聚合查询
type ReportService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewReportService(db *gorm.DB, logger *logrus.Logger) *ReportService {
	return &ReportService{db: db, logger: logger}
}

// DatasetSummary 数据集总览
type DatasetSummary struct {
	TotalMovies    int64   `json:"total_movies"`
	AvgRating      float64 `json:"avg_rating"`
	MedianRating   float64 `json:"median_rating"`
	AvgRuntime     float64 `json:"avg_runtime"`
	AvgPopularity  float64 `json:"avg_popularity"`
	MinYear        int     `json:"min_year"`
	MaxYear        int     `json:"max_year"`
	DistinctGenres int64   `json:"distinct_genres"`
}

// GenreCount 单类型的影片数量（按关联表统计，一片多类型各计一次）
type GenreCount struct {
	GenreName  string `json:"genre_name"`
	MovieCount int64  `json:"movie_count"`
}

// EraCount 单年代的影片数量与均分
type EraCount struct {
	Era        string  `json:"era"`
	MovieCount int64   `json:"movie_count"`
	AvgRating  float64 `json:"avg_rating"`
}

// Summary 数据集总览报表
func (s *ReportService) Summary(ctx context.Context) (*DatasetSummary, error) {
	summary := &DatasetSummary{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Movie{}).Count(&summary.TotalMovies).Error; err != nil {
		return nil, fmt.Errorf("统计影片总数失败: %w", err)
	}
	if summary.TotalMovies == 0 {
		return summary, nil
	}

	row := db.Model(&model.Movie{}).
		Select("AVG(rating), AVG(runtime), AVG(popularity), MIN(release_year), MAX(release_year)").
		Row()
	if err := row.Scan(&summary.AvgRating, &summary.AvgRuntime, &summary.AvgPopularity,
		&summary.MinYear, &summary.MaxYear); err != nil {
		return nil, fmt.Errorf("聚合影片指标失败: %w", err)
	}

	// SQLite无内置中位数，取出评分列在内存里算
	var ratings []float64
	if err := db.Model(&model.Movie{}).Order("rating").Pluck("rating", &ratings).Error; err != nil {
		return nil, fmt.Errorf("读取评分列失败: %w", err)
	}
	summary.MedianRating = medianSorted(ratings)

	if err := db.Model(&model.Genre{}).Count(&summary.DistinctGenres).Error; err != nil {
		return nil, fmt.Errorf("统计类型总数失败: %w", err)
	}
	return summary, nil
}

// GenreDistribution 类型分布，按影片数量倒序
func (s *ReportService) GenreDistribution(ctx context.Context) ([]*GenreCount, error) {
	var rows []*GenreCount
	err := s.db.WithContext(ctx).
		Table("movie_genres").
		Select("genres.genre_name, COUNT(movie_genres.movie_id) AS movie_count").
		Joins("JOIN genres ON genres.genre_id = movie_genres.genre_id").
		Group("genres.genre_name").
		Order("movie_count DESC, genres.genre_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询类型分布失败: %w", err)
	}
	return rows, nil
}

// EraDistribution 年代分布，按年代新到旧
func (s *ReportService) EraDistribution(ctx context.Context) ([]*EraCount, error) {
	var rows []*EraCount
	err := s.db.WithContext(ctx).
		Model(&model.Movie{}).
		Select("era, COUNT(*) AS movie_count, AVG(rating) AS avg_rating").
		Group("era").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询年代分布失败: %w", err)
	}
	// era是标签列，固定新到旧排序
	order := map[string]int{"2020s": 0, "2010s": 1, "2000s": 2, "Pre-2000": 3}
	sort.SliceStable(rows, func(i, j int) bool {
		return order[rows[i].Era] < order[rows[j].Era]
	})
	return rows, nil
}

// RatingsSummary 评分档位汇总（装载时预聚合的ratings_summary表）
func (s *ReportService) RatingsSummary(ctx context.Context) ([]*model.RatingsSummary, error) {
	var rows []*model.RatingsSummary
	err := s.db.WithContext(ctx).
		Order("avg_rating DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询评分档位汇总失败: %w", err)
	}
	return rows, nil
}

// medianSorted 已排序切片的中位数
func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
