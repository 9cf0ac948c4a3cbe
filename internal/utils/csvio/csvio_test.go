package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"MovieSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_PadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	content := "a,b,c\n1,2,3\n4,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "3", table.Rows[0]["c"])
	assert.Equal(t, "", table.Rows[1]["c"]) // 短行缺的列按空值补齐
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadTable(empty)
	assert.Error(t, err)
}

func TestWriteTable_CreatesDirsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	table := &model.RawTable{
		Headers: []string{"title", "year"},
		Rows: []map[string]string{
			{"title": "Movie, With Comma", "year": "2015"},
		},
	}
	require.NoError(t, WriteTable(path, table))

	back, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 1, back.NumRows())
	assert.Equal(t, "Movie, With Comma", back.Rows[0]["title"]) // 含逗号字段正确转义
}

func TestWriteProcessed_IncludesDerivedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.csv")
	rec := &model.ProcessedRecord{
		MovieRecord: model.MovieRecord{
			MovieID: "M1", Title: "Movie", Genres: "Drama",
			ReleaseYear: 2015, Runtime: 120, Rating: 7.5, VoteCount: 1000, Popularity: 30,
		},
		MovieAge: 10, RatingCategory: "Good", PopularityBucket: "Medium",
		RuntimeCategory: "Medium", Era: "2010s", GenreCount: 1, WeightedScore: 7.3,
	}
	require.NoError(t, WriteProcessed(path, []*model.ProcessedRecord{rec}))

	back, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, back.Headers, 16) // 标准九列 + 七个派生列
	require.Equal(t, 1, back.NumRows())
	assert.Equal(t, "Good", back.Rows[0]["rating_category"])
	assert.Equal(t, "2010s", back.Rows[0]["era"])
}
