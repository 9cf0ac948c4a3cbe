package service

import (
	"strconv"
	"testing"
	"time"

	"MovieSync/internal/config"
	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformService() *TransformService {
	cfg := &config.Config{}
	cfg.Pipeline.MinVotes = 500
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewTransformService(cfg, logger)
}

func stdRow(movieID, title, year, rating string) map[string]string {
	return map[string]string{
		model.FieldMovieID:     movieID,
		model.FieldTitle:       title,
		model.FieldGenres:      "Drama",
		model.FieldReleaseYear: year,
		model.FieldRuntime:     "120",
		model.FieldRating:      rating,
		model.FieldVoteCount:   "1000",
		model.FieldPopularity:  "30",
		model.FieldOverview:    "An overview.",
	}
}

func TestRatingCategory_Boundaries(t *testing.T) {
	assert.Equal(t, "Excellent", RatingCategory(8.5))
	assert.Equal(t, "Good", RatingCategory(8.49999))
	assert.Equal(t, "Good", RatingCategory(7.0))
	assert.Equal(t, "Average", RatingCategory(6.99))
	assert.Equal(t, "Average", RatingCategory(5.0))
	assert.Equal(t, "Poor", RatingCategory(4.99))
}

func TestRuntimeCategory_Boundaries(t *testing.T) {
	assert.Equal(t, "Short", RuntimeCategory(89))
	assert.Equal(t, "Medium", RuntimeCategory(90))
	assert.Equal(t, "Medium", RuntimeCategory(148))
	assert.Equal(t, "Medium", RuntimeCategory(150))
	assert.Equal(t, "Long", RuntimeCategory(151))
}

func TestPopularityBucket_Boundaries(t *testing.T) {
	assert.Equal(t, "Low", PopularityBucket(19.9))
	assert.Equal(t, "Medium", PopularityBucket(20))
	assert.Equal(t, "High", PopularityBucket(50))
	assert.Equal(t, "Very High", PopularityBucket(80))
}

func TestEraLabel(t *testing.T) {
	assert.Equal(t, "2020s", EraLabel(2023))
	assert.Equal(t, "2010s", EraLabel(2010))
	assert.Equal(t, "2000s", EraLabel(2005))
	assert.Equal(t, "Pre-2000", EraLabel(1994))
	assert.Equal(t, "Pre-2000", EraLabel(1999))
}

func TestWeightedScore(t *testing.T) {
	// 投票数为0时回归数据集平均分
	assert.InDelta(t, 6.5, WeightedScore(9.0, 0, 500, 6.5), 1e-9)
	// 投票数远大于m时趋近原始评分
	assert.InDelta(t, 9.0, WeightedScore(9.0, 10_000_000, 500, 6.5), 0.01)
	// 评分单调：同等投票下高评分得分更高
	low := WeightedScore(6.0, 1000, 500, 6.5)
	high := WeightedScore(9.0, 1000, 500, 6.5)
	assert.Greater(t, high, low)
	// m与v同时为0的退化情形
	assert.Equal(t, 6.5, WeightedScore(9.0, 0, 0, 6.5))
}

func TestTransform_DropsRowsMissingEssentials(t *testing.T) {
	svc := newTestTransformService()
	table := &model.RawTable{
		Headers: model.StandardFields(),
		Rows: []map[string]string{
			stdRow("M1", "Valid Movie", "2015", "7.5"),
			stdRow("M2", "", "2015", "7.5"),          // title缺失
			stdRow("M3", "No Year", "", "7.5"),       // 年份缺失
			stdRow("M4", "Bad Year", "not-a-number", "7.5"),
			stdRow("M5", "Too Old", "1700", "7.5"),   // 早于电影诞生年
		},
	}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Valid Movie", records[0].Title)
}

func TestTransform_FillsMissingRatingWithMedian(t *testing.T) {
	svc := newTestTransformService()
	table := &model.RawTable{
		Headers: model.StandardFields(),
		Rows: []map[string]string{
			stdRow("M1", "Movie A", "2015", "6.0"),
			stdRow("M2", "Movie B", "2016", "8.0"),
			stdRow("M3", "Movie C", "2017", "7.0"),
			stdRow("M4", "Movie D", "2018", ""), // 缺失，取中位数7.0
		},
	}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	require.Len(t, records, 4)

	byTitle := make(map[string]*model.ProcessedRecord)
	for _, r := range records {
		byTitle[r.Title] = r
	}
	assert.InDelta(t, 7.0, byTitle["Movie D"].Rating, 1e-9)
}

func TestTransform_AllRatingsMissingUsesNeutralDefault(t *testing.T) {
	svc := newTestTransformService()
	table := &model.RawTable{
		Headers: model.StandardFields(),
		Rows: []map[string]string{
			stdRow("M1", "Movie A", "2015", ""),
			stdRow("M2", "Movie B", "2016", ""),
		},
	}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	for _, r := range records {
		assert.InDelta(t, 5.0, r.Rating, 1e-9)
	}
}

func TestTransform_DedupeKeepsFirstOccurrence(t *testing.T) {
	svc := newTestTransformService()
	first := stdRow("M1", "Inception", "2010", "8.8")
	second := stdRow("M2", "inception", "2010", "1.0") // 标题大小写不敏感判重
	other := stdRow("M3", "Inception", "2012", "7.0")  // 年份不同不算重复

	table := &model.RawTable{
		Headers: model.StandardFields(),
		Rows:    []map[string]string{first, second, other},
	}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "M1", records[0].MovieID)
	assert.InDelta(t, 8.8, records[0].Rating, 1e-9)
}

func TestTransform_DerivedFeatures(t *testing.T) {
	svc := newTestTransformService()
	row := stdRow("M1", "Inception", "2010", "8.8")
	row[model.FieldGenres] = "Action|Sci-Fi"
	row[model.FieldRuntime] = "148"
	table := &model.RawTable{Headers: model.StandardFields(), Rows: []map[string]string{row}}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Excellent", rec.RatingCategory)
	assert.Equal(t, "Medium", rec.RuntimeCategory)
	assert.Equal(t, "2010s", rec.Era)
	assert.Equal(t, 2, rec.GenreCount)
	assert.Equal(t, time.Now().Year()-2010, rec.MovieAge)
	// 单条记录时数据集均分即其自身评分，加权分数也应等于评分
	assert.InDelta(t, 8.8, rec.WeightedScore, 1e-9)
}

func TestTransform_EmptyTable(t *testing.T) {
	svc := newTestTransformService()
	_, err := svc.Transform(&model.RawTable{Headers: model.StandardFields()})
	assert.Error(t, err)

	_, err = svc.Transform(nil)
	assert.Error(t, err)
}

func TestTransform_InvalidNumericsFallBackToDefaults(t *testing.T) {
	svc := newTestTransformService()
	row := stdRow("M1", "Movie", "2015", "7.0")
	row[model.FieldVoteCount] = "garbage"
	row[model.FieldPopularity] = "-5"
	table := &model.RawTable{Headers: model.StandardFields(), Rows: []map[string]string{row}}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].VoteCount)
	assert.Equal(t, 0.0, records[0].Popularity)
}

func TestTransform_FutureYearWithinGrace(t *testing.T) {
	svc := newTestTransformService()
	next := strconv.Itoa(time.Now().Year() + 1)
	table := &model.RawTable{
		Headers: model.StandardFields(),
		Rows:    []map[string]string{stdRow("M1", "Upcoming", next, "7.0")},
	}

	records, err := svc.Transform(table)
	require.NoError(t, err)
	assert.Len(t, records, 1) // 次年上映的预告片目允许入库
}
