package model

import (
	"time"

	"gorm.io/datatypes"
)

// Movie 电影主表（每部电影一行，主键为movie_id）
// 标准九字段 + Transformer派生的七个特征字段
type Movie struct {
	MovieID          string    `gorm:"column:movie_id;type:varchar(64);primaryKey;comment:电影唯一ID" json:"movie_id"`
	Title            string    `gorm:"column:title;type:varchar(256);not null;comment:电影标题" json:"title"`
	Genres           string    `gorm:"column:genres;type:varchar(256);comment:类型列表（竖线分隔）" json:"genres"`
	ReleaseYear      int       `gorm:"column:release_year;type:int;not null;index:idx_release_year;comment:上映年份" json:"release_year"`
	Runtime          int       `gorm:"column:runtime;type:int;comment:片长（分钟）" json:"runtime"`
	Rating           float64   `gorm:"column:rating;type:numeric(4,2);index:idx_rating;comment:评分0-10" json:"rating"`
	VoteCount        int       `gorm:"column:vote_count;type:int;default:0;comment:投票数" json:"vote_count"`
	Popularity       float64   `gorm:"column:popularity;type:numeric(10,4);default:0;index:idx_popularity;comment:热度值" json:"popularity"`
	Overview         string    `gorm:"column:overview;type:text;comment:剧情简介" json:"overview"`
	MovieAge         int       `gorm:"column:movie_age;type:int;comment:电影年龄（当前年-上映年）" json:"movie_age"`
	RatingCategory   string    `gorm:"column:rating_category;type:varchar(16);comment:评分档位" json:"rating_category"`
	PopularityBucket string    `gorm:"column:popularity_bucket;type:varchar(16);comment:热度档位" json:"popularity_bucket"`
	RuntimeCategory  string    `gorm:"column:runtime_category;type:varchar(16);comment:片长档位" json:"runtime_category"`
	Era              string    `gorm:"column:era;type:varchar(16);index:idx_era;comment:年代标签" json:"era"`
	GenreCount       int       `gorm:"column:genre_count;type:int;comment:类型数量" json:"genre_count"`
	WeightedScore    float64   `gorm:"column:weighted_score;type:numeric(6,4);comment:贝叶斯加权评分" json:"weighted_score"`
	LoadDate         time.Time `gorm:"column:load_date;type:timestamp;comment:入库时间" json:"load_date"`
}

// Genre 类型表（每个去重后的类型名一行，代理主键）
type Genre struct {
	GenreID   uint64 `gorm:"column:genre_id;primaryKey;autoIncrement;comment:自增主键ID" json:"genre_id"`
	GenreName string `gorm:"column:genre_name;type:varchar(64);uniqueIndex;not null;comment:类型名称" json:"genre_name"`
}

// MovieGenre 电影-类型关联表（每个电影-类型对一行，联合主键防重复）
type MovieGenre struct {
	MovieID string `gorm:"column:movie_id;type:varchar(64);primaryKey;comment:关联电影ID" json:"movie_id"`
	GenreID uint64 `gorm:"column:genre_id;type:bigint;primaryKey;comment:关联类型ID" json:"genre_id"`
}

// RatingsSummary 评分档位汇总表（每次装载后重建）
type RatingsSummary struct {
	RatingCategory string  `gorm:"column:rating_category;type:varchar(16);primaryKey;comment:评分档位" json:"rating_category"`
	MovieCount     int     `gorm:"column:movie_count;type:int;comment:电影数量" json:"movie_count"`
	AvgRating      float64 `gorm:"column:avg_rating;type:numeric(4,2);comment:平均评分" json:"avg_rating"`
	AvgPopularity  float64 `gorm:"column:avg_popularity;type:numeric(10,4);comment:平均热度" json:"avg_popularity"`
	TotalVotes     int64   `gorm:"column:total_votes;type:bigint;comment:总投票数" json:"total_votes"`
}

// PipelineRun 管道执行记录表（每次ETL执行一行）
type PipelineRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	RunUUID    string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一执行ID" json:"run_uuid"`
	Source     string         `gorm:"column:source;type:varchar(32);not null;comment:数据来源" json:"source"`
	Status     string         `gorm:"column:status;type:varchar(16);default:running;comment:状态：running/success/failed" json:"status"`
	Stats      datatypes.JSON `gorm:"column:stats;comment:各阶段统计（JSON）" json:"stats"`
	Error      string         `gorm:"column:error;type:text;comment:失败原因" json:"error"`
	StartedAt  time.Time      `gorm:"column:started_at;type:timestamp;comment:开始时间" json:"started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at;type:timestamp;comment:结束时间" json:"finished_at"`
	DurationMS int64          `gorm:"column:duration_ms;type:bigint;comment:耗时（毫秒）" json:"duration_ms"`
}

func (Movie) TableName() string           { return "movies" }
func (Genre) TableName() string           { return "genres" }
func (MovieGenre) TableName() string      { return "movie_genres" }
func (RatingsSummary) TableName() string  { return "ratings_summary" }
func (PipelineRun) TableName() string     { return "pipeline_runs" }
