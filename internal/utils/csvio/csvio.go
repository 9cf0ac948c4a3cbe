package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"MovieSync/internal/model"
)

// ReadTable 读取CSV文件为未类型化表（首行为表头）
func ReadTable(path string) (*model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开CSV文件失败: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 允许行字段数不一致，短行按空值处理
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析CSV失败: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV文件为空: %s", path)
	}

	headers := records[0]
	table := &model.RawTable{Headers: headers}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// WriteTable 按表头顺序写出CSV（目录不存在则创建）
func WriteTable(path string, table *model.RawTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		return fmt.Errorf("写表头失败: %w", err)
	}
	for _, row := range table.Rows {
		rec := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			rec[i] = row[h]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("写数据行失败: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteProcessed 写出处理后CSV（标准九字段 + 派生字段）
func WriteProcessed(path string, records []*model.ProcessedRecord) error {
	headers := append(model.StandardFields(),
		"movie_age", "rating_category", "popularity_bucket",
		"runtime_category", "era", "genre_count", "weighted_score")

	table := &model.RawTable{Headers: headers}
	for _, rec := range records {
		table.Rows = append(table.Rows, map[string]string{
			model.FieldMovieID:     rec.MovieID,
			model.FieldTitle:       rec.Title,
			model.FieldGenres:      rec.Genres,
			model.FieldReleaseYear: strconv.Itoa(rec.ReleaseYear),
			model.FieldRuntime:     strconv.Itoa(rec.Runtime),
			model.FieldRating:      strconv.FormatFloat(rec.Rating, 'f', -1, 64),
			model.FieldVoteCount:   strconv.Itoa(rec.VoteCount),
			model.FieldPopularity:  strconv.FormatFloat(rec.Popularity, 'f', -1, 64),
			model.FieldOverview:    rec.Overview,
			"movie_age":            strconv.Itoa(rec.MovieAge),
			"rating_category":      rec.RatingCategory,
			"popularity_bucket":    rec.PopularityBucket,
			"runtime_category":     rec.RuntimeCategory,
			"era":                  rec.Era,
			"genre_count":          strconv.Itoa(rec.GenreCount),
			"weighted_score":       strconv.FormatFloat(rec.WeightedScore, 'f', 4, 64),
		})
	}
	return WriteTable(path, table)
}
