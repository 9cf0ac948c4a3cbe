package mapping

import (
	"testing"

	"MovieSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMapping_ExactlyNineStandardColumns(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"title", "junk_column", "another_junk"},
		Rows: []map[string]string{
			{"title": "Alien", "junk_column": "x", "another_junk": "y"},
		},
	}
	colMap := BuildMapping(table.Headers, model.SourceCustom)
	out := ApplyMapping(table, colMap)

	assert.Equal(t, model.StandardFields(), out.Headers)
	require.Len(t, out.Rows, 1)
	assert.Len(t, out.Rows[0], len(model.StandardFields()))
	// 未映射的原始列不出现在结果里
	_, exists := out.Rows[0]["junk_column"]
	assert.False(t, exists)
}

// 自定义表头的端到端标准化：画像检测 → 模糊匹配 → 标准九列
func TestApplyMapping_CustomHeadersEndToEnd(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"Movie Name", "Year of Release", "IMDB Rating", "Genre List", "Duration", "Votes", "Plot"},
		Rows: []map[string]string{
			{
				"Movie Name":      "Inception",
				"Year of Release": "2010",
				"IMDB Rating":     "8.8",
				"Genre List":      "Action, Sci-Fi",
				"Duration":        "148",
				"Votes":           "2100000",
				"Plot":            "A thief who steals corporate secrets.",
			},
		},
	}

	source := DetectSource(table.Headers)
	colMap := BuildMapping(table.Headers, source)
	out := ApplyMapping(table, colMap)

	require.Len(t, out.Rows, 1)
	row := out.Rows[0]
	assert.Equal(t, "Inception", row[model.FieldTitle])
	assert.Equal(t, "2010", row[model.FieldReleaseYear])
	assert.Equal(t, "8.8", row[model.FieldRating])
	assert.Equal(t, "Action|Sci-Fi", row[model.FieldGenres])
	assert.Equal(t, "148", row[model.FieldRuntime])
	assert.Equal(t, "2100000", row[model.FieldVoteCount])
	assert.Equal(t, "0", row[model.FieldPopularity]) // 整列缺失按默认值补齐
	assert.NotEmpty(t, row[model.FieldMovieID])      // 缺失movie_id自动生成
	assert.Equal(t, "A thief who steals corporate secrets.", row[model.FieldOverview])
}

func TestApplyMapping_ReleaseDateTrimmedToYear(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"id", "title", "release_date"},
		Rows: []map[string]string{
			{"id": "27205", "title": "Inception", "release_date": "2010-07-16"},
		},
	}
	colMap := BuildMapping(table.Headers, model.SourceTMDB)
	out := ApplyMapping(table, colMap)

	require.Len(t, out.Rows, 1)
	assert.Equal(t, "2010", out.Rows[0][model.FieldReleaseYear])
}

func TestApplyMapping_LastColumnWinsOnDuplicateTarget(t *testing.T) {
	// rotten_tomatoes画像里name与title都映射到标准title，按表头顺序后者覆盖
	table := &model.RawTable{
		Headers: []string{"name", "title", "audience_score"},
		Rows: []map[string]string{
			{"name": "Old Name", "title": "New Title", "audience_score": "92"},
		},
	}
	colMap := BuildMapping(table.Headers, model.SourceRottenTomatoes)
	out := ApplyMapping(table, colMap)

	require.Len(t, out.Rows, 1)
	assert.Equal(t, "New Title", out.Rows[0][model.FieldTitle])
}

func TestBuildMapping_ShortPatternNeedsExactMatch(t *testing.T) {
	// imdb_rating不能被movie_id的短候选词id按子串抢走
	colMap := BuildMapping([]string{"imdb_rating", "movie_name"}, model.SourceCustom)
	assert.Equal(t, model.FieldRating, colMap["imdb_rating"])
	assert.Equal(t, model.FieldTitle, colMap["movie_name"])
}

func TestNormalizeGenres(t *testing.T) {
	cases := map[string]string{
		"Action, Drama":           "Action|Drama",
		"['Action', 'Sci-Fi']":    "Action|Sci-Fi",
		`["Drama"]`:               "Drama",
		"Drama/Romance;Thriller":  "Drama|Romance|Thriller",
		"Action|Drama":            "Action|Drama",
		" Crime ,  Drama ":        "Crime|Drama",
		"":                        "",
		", ,":                     "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeGenres(input), "input=%q", input)
	}
}
