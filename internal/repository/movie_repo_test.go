package repository

import (
	"context"
	"testing"

	"MovieSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Movie{},
		&model.Genre{},
		&model.MovieGenre{},
		&model.RatingsSummary{},
		&model.PipelineRun{},
	))
	return db
}

func record(movieID, title string, year int, rating float64, genres string) *model.ProcessedRecord {
	return &model.ProcessedRecord{
		MovieRecord: model.MovieRecord{
			MovieID:     movieID,
			Title:       title,
			Genres:      genres,
			ReleaseYear: year,
			Runtime:     120,
			Rating:      rating,
			VoteCount:   1000,
			Popularity:  30,
		},
		RatingCategory:   ratingCategoryOf(rating),
		PopularityBucket: "Medium",
		RuntimeCategory:  "Medium",
		Era:              "2010s",
		GenreCount:       len(splitGenres(genres)),
		WeightedScore:    rating,
	}
}

// 测试夹具内联的档位规则，与转换服务保持一致
func ratingCategoryOf(rating float64) string {
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

func TestReplaceAll_LoadsThreeTables(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	result, err := repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("M1", "Movie One", 2015, 8.8, "Action|Drama"),
		record("M2", "Movie Two", 2016, 7.2, "Drama"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Movies)
	assert.Equal(t, int64(2), result.Genres)     // Action, Drama去重
	assert.Equal(t, int64(3), result.MovieGenre) // M1两行 + M2一行
}

func TestReplaceAll_IdempotentOnRerun(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	records := []*model.ProcessedRecord{
		record("M1", "Movie One", 2015, 8.8, "Action|Drama"),
		record("M2", "Movie Two", 2016, 7.2, "Drama|Thriller"),
	}

	first, err := repo.ReplaceAll(context.Background(), records)
	require.NoError(t, err)
	second, err := repo.ReplaceAll(context.Background(), records)
	require.NoError(t, err)

	// 同一批数据重复装载行数不翻倍
	assert.Equal(t, first, second)
	assert.Equal(t, int64(2), second.Movies)
}

func TestReplaceAll_DuplicateMovieIDAborts(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	// 先装一批好数据
	_, err := repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("M1", "Movie One", 2015, 8.8, "Drama"),
	})
	require.NoError(t, err)

	// 再装带重复movie_id的批次，应整体回滚
	_, err = repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("DUP", "First", 2015, 7.0, "Drama"),
		record("DUP", "Second", 2016, 6.0, "Action"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUP")

	// 上一次成功装载的数据保持不动
	var count int64
	require.NoError(t, repo.db.Model(&model.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var movie model.Movie
	require.NoError(t, repo.db.First(&movie).Error)
	assert.Equal(t, "M1", movie.MovieID)
}

func TestReplaceAll_EmptyInput(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	_, err := repo.ReplaceAll(context.Background(), nil)
	assert.Error(t, err)
}

func TestReplaceAll_RebuildsRatingsSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepository(db)

	_, err := repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("M1", "Excellent One", 2015, 9.0, "Drama"),
		record("M2", "Excellent Two", 2016, 8.6, "Drama"),
		record("M3", "Good One", 2017, 7.5, "Action"),
	})
	require.NoError(t, err)

	var rows []model.RatingsSummary
	require.NoError(t, db.Order("rating_category").Find(&rows).Error)
	require.Len(t, rows, 2)

	byCategory := make(map[string]model.RatingsSummary)
	for _, r := range rows {
		byCategory[r.RatingCategory] = r
	}
	assert.Equal(t, 2, byCategory["Excellent"].MovieCount)
	assert.InDelta(t, 8.8, byCategory["Excellent"].AvgRating, 1e-9)
	assert.Equal(t, int64(2000), byCategory["Excellent"].TotalVotes)
	assert.Equal(t, 1, byCategory["Good"].MovieCount)
}

func TestList_FiltersAndPagination(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	_, err := repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("M1", "Action Movie", 2015, 8.8, "Action"),
		record("M2", "Drama Movie", 2016, 7.2, "Drama"),
		record("M3", "Both Movie", 2017, 6.0, "Action|Drama"),
	})
	require.NoError(t, err)

	// 按类型过滤
	movies, total, err := repo.List(context.Background(), &MovieFilter{Genre: "Action"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, movies, 2)

	// 最低评分过滤
	movies, total, err = repo.List(context.Background(), &MovieFilter{MinRating: 7.0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 分页
	movies, total, err = repo.List(context.Background(), &MovieFilter{Page: 1, PageSize: 2, SortBy: "rating"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, movies, 2)
	assert.Equal(t, "M1", movies[0].MovieID) // rating倒序

	// 非法排序列回退默认列，不报错
	_, _, err = repo.List(context.Background(), &MovieFilter{SortBy: "movies; DROP TABLE movies"})
	assert.NoError(t, err)
}

func TestGetByID_ReturnsGenres(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	_, err := repo.ReplaceAll(context.Background(), []*model.ProcessedRecord{
		record("M1", "Both Movie", 2017, 6.0, "Drama|Action"),
	})
	require.NoError(t, err)

	movie, genres, err := repo.GetByID(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "Both Movie", movie.Title)
	assert.Equal(t, []string{"Action", "Drama"}, genres) // 类型名排序返回

	_, _, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
