package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"MovieSync/internal/config"
	"MovieSync/internal/mapping"
	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
)

// 清洗常量
const (
	neutralRating = 5.0 // rating整列缺失时的中性默认值
)

// TransformService 转换服务：清洗 → 类型归一化 → 特征工程（固定顺序，不改输入表）
type TransformService struct {
	minVotes    float64 // 加权评分的最小投票数常量m
	currentYear int
	logger      *logrus.Logger
}

func NewTransformService(cfg *config.Config, logger *logrus.Logger) *TransformService {
	return &TransformService{
		minVotes:    float64(cfg.Pipeline.MinVotes),
		currentYear: time.Now().Year(),
		logger:      logger,
	}
}

// parsedRow 类型归一化后的中间行（nil表示缺失/非法，待填充）
type parsedRow struct {
	movieID    string
	title      string
	genres     string
	year       int
	runtime    *int
	rating     *float64
	voteCount  int
	popularity float64
	overview   string
}

// Transform 执行完整转换：返回清洗+特征工程后的记录，输入表保持不变
func (s *TransformService) Transform(table *model.RawTable) ([]*model.ProcessedRecord, error) {
	if table == nil || table.NumRows() == 0 {
		return nil, fmt.Errorf("转换输入为空表")
	}

	// 1. 类型归一化 + 必填字段清洗（title/release_year缺失或非法则整行丢弃）
	var rows []*parsedRow
	dropped := 0
	for _, raw := range table.Rows {
		row, ok := s.parseRow(raw)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	if dropped > 0 {
		s.logger.Infof("清洗丢弃必填字段缺失行%d条", dropped)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("清洗后无有效记录")
	}

	// 2. 缺失值填充：rating取现有值中位数（全缺则取中性默认），runtime取中位数，vote/popularity已在解析时补0
	fillRating(rows)
	fillRuntime(rows)

	// 3. 按(title, release_year)去重，保留首次出现
	rows = dedupeRows(rows)

	// 4. 特征工程（纯函数，逐行派生）
	meanRating := meanOf(rows)
	records := make([]*model.ProcessedRecord, 0, len(rows))
	for _, row := range rows {
		rec := &model.ProcessedRecord{
			MovieRecord: model.MovieRecord{
				MovieID:     row.movieID,
				Title:       row.title,
				Genres:      row.genres,
				ReleaseYear: row.year,
				Runtime:     *row.runtime,
				Rating:      *row.rating,
				VoteCount:   row.voteCount,
				Popularity:  row.popularity,
				Overview:    row.overview,
			},
			MovieAge:         s.currentYear - row.year,
			RatingCategory:   RatingCategory(*row.rating),
			PopularityBucket: PopularityBucket(row.popularity),
			RuntimeCategory:  RuntimeCategory(*row.runtime),
			Era:              EraLabel(row.year),
			GenreCount:       genreCount(row.genres),
			WeightedScore:    WeightedScore(*row.rating, row.voteCount, s.minVotes, meanRating),
		}
		records = append(records, rec)
	}

	s.logger.Infof("转换完成：输入%d条，输出%d条", table.NumRows(), len(records))
	return records, nil
}

// parseRow 单行类型归一化；必填字段不合法时返回false
func (s *TransformService) parseRow(raw map[string]string) (*parsedRow, bool) {
	title := strings.TrimSpace(raw[model.FieldTitle])
	if title == "" {
		return nil, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw[model.FieldReleaseYear]))
	if err != nil || year < 1888 || year > s.currentYear+1 {
		return nil, false
	}

	row := &parsedRow{
		movieID:  strings.TrimSpace(raw[model.FieldMovieID]),
		title:    title,
		genres:   mapping.NormalizeGenres(raw[model.FieldGenres]),
		year:     year,
		overview: raw[model.FieldOverview],
	}

	// 非法数值按缺失处理，走对应填充规则
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw[model.FieldRating]), 64); err == nil && v >= 0 && v <= 10 {
		row.rating = &v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw[model.FieldRuntime])); err == nil && v >= 0 {
		row.runtime = &v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw[model.FieldVoteCount])); err == nil && v >= 0 {
		row.voteCount = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw[model.FieldPopularity]), 64); err == nil && v >= 0 {
		row.popularity = v
	}

	return row, true
}

// dedupeRows 按(title, release_year)去重，保留首次出现
func dedupeRows(rows []*parsedRow) []*parsedRow {
	seen := make(map[string]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		key := strings.ToLower(row.title) + "|" + strconv.Itoa(row.year)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// fillRating 缺失rating取现有值中位数；整列缺失取中性默认值
func fillRating(rows []*parsedRow) {
	var present []float64
	for _, row := range rows {
		if row.rating != nil {
			present = append(present, *row.rating)
		}
	}
	fill := neutralRating
	if len(present) > 0 {
		fill = median(present)
	}
	for _, row := range rows {
		if row.rating == nil {
			v := fill
			row.rating = &v
		}
	}
}

// fillRuntime 缺失runtime取现有值中位数；整列缺失补0
func fillRuntime(rows []*parsedRow) {
	var present []float64
	for _, row := range rows {
		if row.runtime != nil {
			present = append(present, float64(*row.runtime))
		}
	}
	fill := 0
	if len(present) > 0 {
		fill = int(median(present))
	}
	for _, row := range rows {
		if row.runtime == nil {
			v := fill
			row.runtime = &v
		}
	}
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func meanOf(rows []*parsedRow) float64 {
	if len(rows) == 0 {
		return neutralRating
	}
	sum := 0.0
	for _, row := range rows {
		sum += *row.rating
	}
	return sum / float64(len(rows))
}

// ========== 特征工程纯函数（固定阈值） ==========

// RatingCategory 评分档位：≥8.5 Excellent / ≥7.0 Good / ≥5.0 Average / 其余 Poor
func RatingCategory(rating float64) string {
	switch {
	case rating >= 8.5:
		return "Excellent"
	case rating >= 7.0:
		return "Good"
	case rating >= 5.0:
		return "Average"
	default:
		return "Poor"
	}
}

// PopularityBucket 热度档位：<20 Low / <50 Medium / <80 High / 其余 Very High
func PopularityBucket(popularity float64) string {
	switch {
	case popularity < 20:
		return "Low"
	case popularity < 50:
		return "Medium"
	case popularity < 80:
		return "High"
	default:
		return "Very High"
	}
}

// RuntimeCategory 片长档位：<90 Short / 90-150 Medium / >150 Long
func RuntimeCategory(runtime int) string {
	switch {
	case runtime < 90:
		return "Short"
	case runtime <= 150:
		return "Medium"
	default:
		return "Long"
	}
}

// EraLabel 年代标签，2000年前统一归入Pre-2000
func EraLabel(year int) string {
	switch {
	case year >= 2020:
		return "2020s"
	case year >= 2010:
		return "2010s"
	case year >= 2000:
		return "2000s"
	default:
		return "Pre-2000"
	}
}

// genreCount 竖线分隔的类型数量，空串为0
func genreCount(genres string) int {
	if genres == "" {
		return 0
	}
	return len(strings.Split(genres, "|"))
}

// WeightedScore 贝叶斯加权评分：(v/(v+m))·R + (m/(v+m))·C
// v为投票数，m为最小投票数常量，R为该片评分，C为数据集平均分
// 投票数趋于0时回归数据集平均分
func WeightedScore(rating float64, voteCount int, minVotes float64, meanRating float64) float64 {
	v := float64(voteCount)
	if v+minVotes == 0 {
		return meanRating
	}
	return v/(v+minVotes)*rating + minVotes/(v+minVotes)*meanRating
}
