package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"MovieSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewFile_AutoDetectAndReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	content := "tconst,primary_title,start_year,average_rating,num_votes,mystery_column\n" +
		"tt1375666,Inception,2010,8.8,2100000,whatever\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	report, err := PreviewFile(path, model.SourceAuto)
	require.NoError(t, err)

	assert.Equal(t, model.SourceIMDB, report.Source)
	assert.Equal(t, 6, report.TotalColumns)
	assert.Equal(t, 1, report.TotalRows)
	assert.Contains(t, report.Unmapped, "mystery_column")

	byColumn := make(map[string]ColumnPreview)
	for _, m := range report.Mappings {
		byColumn[m.SourceColumn] = m
	}
	assert.Equal(t, model.FieldMovieID, byColumn["tconst"].TargetField)
	assert.Equal(t, model.FieldTitle, byColumn["primary_title"].TargetField)
	assert.Equal(t, "Inception", byColumn["primary_title"].Sample)

	// 未被任何原始列覆盖的标准字段以警告形式列出
	assert.NotEmpty(t, report.Warnings)
}

func TestPreviewFile_MissingFile(t *testing.T) {
	_, err := PreviewFile(filepath.Join(t.TempDir(), "nope.csv"), model.SourceAuto)
	assert.Error(t, err)
}
