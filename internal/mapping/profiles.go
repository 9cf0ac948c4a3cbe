package mapping

import "MovieSync/internal/model"

// ========== 各数据源的列映射画像（数据驱动，新增来源只加数据不加分支） ==========

// SourceProfiles 各来源的 原始列名→标准字段 映射表
var SourceProfiles = map[model.SourceType]map[string]string{
	model.SourceTMDB: {
		"id":           model.FieldMovieID,
		"title":        model.FieldTitle,
		"genres":       model.FieldGenres,
		"release_date": model.FieldReleaseYear,
		"runtime":      model.FieldRuntime,
		"vote_average": model.FieldRating,
		"vote_count":   model.FieldVoteCount,
		"popularity":   model.FieldPopularity,
		"overview":     model.FieldOverview,
	},
	model.SourceIMDB: {
		"tconst":          model.FieldMovieID,
		"title_id":        model.FieldMovieID,
		"primary_title":   model.FieldTitle,
		"original_title":  model.FieldTitle,
		"genres":          model.FieldGenres,
		"start_year":      model.FieldReleaseYear,
		"runtime_minutes": model.FieldRuntime,
		"average_rating":  model.FieldRating,
		"num_votes":       model.FieldVoteCount,
	},
	model.SourceMovieLens: {
		"movieid":  model.FieldMovieID,
		"movie_id": model.FieldMovieID,
		"title":    model.FieldTitle,
		"genres":   model.FieldGenres,
		"rating":   model.FieldRating,
	},
	model.SourceRottenTomatoes: {
		"id":             model.FieldMovieID,
		"name":           model.FieldTitle,
		"title":          model.FieldTitle,
		"genre":          model.FieldGenres,
		"genres":         model.FieldGenres,
		"year":           model.FieldReleaseYear,
		"rating":         model.FieldRating,
		"audience_score": model.FieldRating,
		"imdb_rating":    model.FieldRating,
	},
	model.SourceLetterboxd: {
		"id":           model.FieldMovieID,
		"name":         model.FieldTitle,
		"year":         model.FieldReleaseYear,
		"genre":        model.FieldGenres,
		"rating":       model.FieldRating,
		"rating_count": model.FieldVoteCount,
		"description":  model.FieldOverview,
	},
	model.SourceKaggle: {
		"movie_id":     model.FieldMovieID,
		"film_name":    model.FieldTitle,
		"movie_name":   model.FieldTitle,
		"name":         model.FieldTitle,
		"genre":        model.FieldGenres,
		"release_year": model.FieldReleaseYear,
		"year":         model.FieldReleaseYear,
		"rating":       model.FieldRating,
		"votes":        model.FieldVoteCount,
		"runtime":      model.FieldRuntime,
	},
}

// sourceSignatures 各来源的签名列（重合数最多者胜出）
var sourceSignatures = map[model.SourceType][]string{
	model.SourceIMDB:           {"tconst", "primary_title", "start_year", "runtime_minutes", "average_rating", "num_votes"},
	model.SourceTMDB:           {"id", "title", "release_date", "runtime", "vote_average", "vote_count", "popularity", "overview"},
	model.SourceMovieLens:      {"movieid", "userid", "timestamp"},
	model.SourceRottenTomatoes: {"audience_score", "critics_score"},
	model.SourceLetterboxd:     {"imdb_code", "imdb_id", "rating_count"},
	model.SourceKaggle:         {"film_name", "movie_name", "name"},
}

// detectPriority 检测平局时的固定优先级顺序
var detectPriority = []model.SourceType{
	model.SourceIMDB,
	model.SourceTMDB,
	model.SourceMovieLens,
	model.SourceRottenTomatoes,
	model.SourceLetterboxd,
	model.SourceKaggle,
}

// FuzzyPatterns 模糊匹配表：标准字段→候选列名（大小写不敏感子串匹配）
var FuzzyPatterns = map[string][]string{
	model.FieldMovieID:     {"movie_id", "tconst", "imdb_id", "film_id", "id"},
	model.FieldTitle:       {"title", "name", "film_name", "movie_name", "primary_title", "original_title"},
	model.FieldGenres:      {"genres", "genre", "genre_list", "category"},
	model.FieldReleaseYear: {"release_year", "year", "release_date", "start_year"},
	model.FieldRuntime:     {"runtime", "duration", "length", "running_time"},
	model.FieldRating:      {"rating", "score", "imdb_rating", "average_rating", "audience_score", "vote_average"},
	model.FieldVoteCount:   {"vote_count", "votes", "num_votes", "number_of_votes", "rating_count"},
	model.FieldPopularity:  {"popularity", "popular"},
	model.FieldOverview:    {"overview", "description", "synopsis", "summary", "plot"},
}

// fuzzyOrder 模糊匹配的标准字段遍历顺序（map遍历无序，固定顺序保证确定性）
var fuzzyOrder = model.StandardFields()
