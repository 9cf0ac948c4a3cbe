package model

// SourceType 数据源画像类型枚举
type SourceType string

const (
	SourceIMDB           SourceType = "imdb"
	SourceTMDB           SourceType = "tmdb"
	SourceMovieLens      SourceType = "movielens"
	SourceRottenTomatoes SourceType = "rotten_tomatoes"
	SourceLetterboxd     SourceType = "letterboxd"
	SourceKaggle         SourceType = "kaggle"
	SourceCustom         SourceType = "custom" // 未识别来源，走模糊匹配
	SourceAuto           SourceType = "auto"   // 由检测器自动判定
)

// 标准九字段列名（所有管道阶段约定的schema，顺序即CSV表头顺序）
const (
	FieldMovieID     = "movie_id"
	FieldTitle       = "title"
	FieldGenres      = "genres"
	FieldReleaseYear = "release_year"
	FieldRuntime     = "runtime"
	FieldRating      = "rating"
	FieldVoteCount   = "vote_count"
	FieldPopularity  = "popularity"
	FieldOverview    = "overview"
)

// StandardFields 返回标准schema的九个字段名（固定顺序）
func StandardFields() []string {
	return []string{
		FieldMovieID,
		FieldTitle,
		FieldGenres,
		FieldReleaseYear,
		FieldRuntime,
		FieldRating,
		FieldVoteCount,
		FieldPopularity,
		FieldOverview,
	}
}

// RawTable 未类型化的数据表（表头有序，行为 列名→字符串值）
// 抽取阶段的输入输出都用它承载，类型归一化由Transformer负责
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// NumRows 行数
func (t *RawTable) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// MovieRecord 标准化后的电影记录（九个标准字段）
type MovieRecord struct {
	MovieID     string  `json:"movie_id"`
	Title       string  `json:"title"`
	Genres      string  `json:"genres"` // 竖线分隔，如 Action|Drama
	ReleaseYear int     `json:"release_year"`
	Runtime     int     `json:"runtime"`
	Rating      float64 `json:"rating"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Overview    string  `json:"overview"`
}

// ProcessedRecord 清洗+特征工程后的记录（标准字段 + 七个派生字段）
type ProcessedRecord struct {
	MovieRecord
	MovieAge         int     `json:"movie_age"`
	RatingCategory   string  `json:"rating_category"`
	PopularityBucket string  `json:"popularity_bucket"`
	RuntimeCategory  string  `json:"runtime_category"`
	Era              string  `json:"era"`
	GenreCount       int     `json:"genre_count"`
	WeightedScore    float64 `json:"weighted_score"`
}
