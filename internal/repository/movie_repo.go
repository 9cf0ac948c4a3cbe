package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"MovieSync/internal/interfaces"
	"MovieSync/internal/model"

	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

var _ interfaces.MovieRepository = (*MovieRepository)(nil)

// ReplaceAll 全量替换装载（所有数据源共用）
// 单事务内：清空三张表 → 写movies → 类型去重入genres → 写movie_genres关联 → 重建ratings_summary
// movie_id重复属致命错误，整体回滚，库内保留上一次装载结果
func (r *MovieRepository) ReplaceAll(ctx context.Context, records []*model.ProcessedRecord) (*interfaces.LoadResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("装载输入为空")
	}

	// 开启事务
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// 1. 清空旧数据（先子表后主表）
	for _, table := range []string{"movie_genres", "genres", "movies"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("清空%s表失败: %w", table, err)
		}
	}

	// 2. 写入movies（主键冲突即同批次movie_id重复，致命）
	loadDate := time.Now()
	for _, rec := range records {
		movie := &model.Movie{
			MovieID:          rec.MovieID,
			Title:            rec.Title,
			Genres:           rec.Genres,
			ReleaseYear:      rec.ReleaseYear,
			Runtime:          rec.Runtime,
			Rating:           rec.Rating,
			VoteCount:        rec.VoteCount,
			Popularity:       rec.Popularity,
			Overview:         rec.Overview,
			MovieAge:         rec.MovieAge,
			RatingCategory:   rec.RatingCategory,
			PopularityBucket: rec.PopularityBucket,
			RuntimeCategory:  rec.RuntimeCategory,
			Era:              rec.Era,
			GenreCount:       rec.GenreCount,
			WeightedScore:    rec.WeightedScore,
			LoadDate:         loadDate,
		}
		if err := tx.Create(movie).Error; err != nil {
			tx.Rollback()
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				return nil, fmt.Errorf("movie_id重复，装载中止: %s", rec.MovieID)
			}
			return nil, fmt.Errorf("保存Movie失败: %w, movie_id: %s", err, rec.MovieID)
		}
	}

	// 3. 类型去重入genres表（排序后插入，保证genre_id分配确定性）
	genreIDs, err := internGenres(tx, records)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// 4. 写movie_genres关联（单条记录内同类型出现多次只记一行）
	for _, rec := range records {
		seen := make(map[uint64]bool)
		for _, name := range splitGenres(rec.Genres) {
			gid := genreIDs[name]
			if seen[gid] {
				continue
			}
			seen[gid] = true
			link := &model.MovieGenre{MovieID: rec.MovieID, GenreID: gid}
			if err := tx.Create(link).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("保存电影-类型关联失败: %w, movie_id: %s", err, rec.MovieID)
			}
		}
	}

	// 5. 重建评分档位汇总表
	if err := rebuildRatingsSummary(tx); err != nil {
		tx.Rollback()
		return nil, err
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("提交事务失败: %w", err)
	}

	return r.verifyLoad(ctx)
}

// internGenres 收集全部类型token并去重入库，返回 类型名→genre_id
func internGenres(tx *gorm.DB, records []*model.ProcessedRecord) (map[string]uint64, error) {
	nameSet := make(map[string]bool)
	for _, rec := range records {
		for _, name := range splitGenres(rec.Genres) {
			nameSet[name] = true
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]uint64, len(names))
	for _, name := range names {
		genre := &model.Genre{GenreName: name}
		if err := tx.Create(genre).Error; err != nil {
			return nil, fmt.Errorf("保存类型失败: %w, genre: %s", err, name)
		}
		ids[name] = genre.GenreID
	}
	return ids, nil
}

// rebuildRatingsSummary 按评分档位聚合重建汇总表
func rebuildRatingsSummary(tx *gorm.DB) error {
	if err := tx.Exec("DELETE FROM ratings_summary").Error; err != nil {
		return fmt.Errorf("清空ratings_summary失败: %w", err)
	}
	insert := `INSERT INTO ratings_summary (rating_category, movie_count, avg_rating, avg_popularity, total_votes)
		SELECT rating_category, COUNT(*), AVG(rating), AVG(popularity), SUM(vote_count)
		FROM movies GROUP BY rating_category`
	if err := tx.Exec(insert).Error; err != nil {
		return fmt.Errorf("重建ratings_summary失败: %w", err)
	}
	return nil
}

// verifyLoad 装载后核验三张表行数
func (r *MovieRepository) verifyLoad(ctx context.Context) (*interfaces.LoadResult, error) {
	result := &interfaces.LoadResult{}
	if err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&result.Movies).Error; err != nil {
		return nil, fmt.Errorf("核验movies行数失败: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.Genre{}).Count(&result.Genres).Error; err != nil {
		return nil, fmt.Errorf("核验genres行数失败: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.MovieGenre{}).Count(&result.MovieGenre).Error; err != nil {
		return nil, fmt.Errorf("核验movie_genres行数失败: %w", err)
	}
	return result, nil
}

// MovieFilter 影片列表查询条件（零值字段不参与过滤）
type MovieFilter struct {
	Genre          string  // 类型名（经movie_genres关联过滤）
	Era            string  // 年代标签
	RatingCategory string  // 评分档位
	MinRating      float64 // 最低评分
	YearFrom       int     // 上映年份下界
	YearTo         int     // 上映年份上界
	SortBy         string  // 排序列：rating/popularity/weighted_score/release_year
	Page           int
	PageSize       int
}

// 允许的排序列白名单（防注入）
var sortColumns = map[string]bool{
	"rating":         true,
	"popularity":     true,
	"weighted_score": true,
	"release_year":   true,
	"title":          true,
}

// List 按条件分页查询影片，返回当前页与总数
func (r *MovieRepository) List(ctx context.Context, filter *MovieFilter) ([]*model.Movie, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movie{})

	if filter.Genre != "" {
		q = q.Where("movie_id IN (?)",
			r.db.Table("movie_genres").
				Select("movie_genres.movie_id").
				Joins("JOIN genres ON genres.genre_id = movie_genres.genre_id").
				Where("genres.genre_name = ?", filter.Genre))
	}
	if filter.Era != "" {
		q = q.Where("era = ?", filter.Era)
	}
	if filter.RatingCategory != "" {
		q = q.Where("rating_category = ?", filter.RatingCategory)
	}
	if filter.MinRating > 0 {
		q = q.Where("rating >= ?", filter.MinRating)
	}
	if filter.YearFrom > 0 {
		q = q.Where("release_year >= ?", filter.YearFrom)
	}
	if filter.YearTo > 0 {
		q = q.Where("release_year <= ?", filter.YearTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计影片数量失败: %w", err)
	}

	sortBy := filter.SortBy
	if !sortColumns[sortBy] {
		sortBy = "weighted_score"
	}
	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}

	var movies []*model.Movie
	err := q.Order(sortBy + " DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&movies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询影片列表失败: %w", err)
	}
	return movies, total, nil
}

// GetByID 按movie_id查询单片及其关联类型名
func (r *MovieRepository) GetByID(ctx context.Context, movieID string) (*model.Movie, []string, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).First(&movie).Error
	if err != nil {
		return nil, nil, err
	}

	var genres []string
	err = r.db.WithContext(ctx).
		Table("movie_genres").
		Select("genres.genre_name").
		Joins("JOIN genres ON genres.genre_id = movie_genres.genre_id").
		Where("movie_genres.movie_id = ?", movieID).
		Order("genres.genre_name").
		Pluck("genres.genre_name", &genres).Error
	if err != nil {
		return nil, nil, fmt.Errorf("查询影片类型失败: %w", err)
	}
	return &movie, genres, nil
}

// splitGenres 拆分竖线分隔的类型串，空token丢弃
func splitGenres(genres string) []string {
	if genres == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(genres, "|") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
