package model

// ========== TMDB 官方 API 响应结构（GET /movie/popular、/movie/top_rated） ==========

// TMDBPageResponse 分页根响应
type TMDBPageResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBMovie 单部电影的 API 结构
type TMDBMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"` // 格式 YYYY-MM-DD，取前四位作上映年份
	GenreIDs    []int   `json:"genre_ids"`    // 类型数字ID列表（popular接口不带类型名）
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Overview    string  `json:"overview"`
}
