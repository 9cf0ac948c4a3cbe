package sample

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"MovieSync/internal/adapter"
	"MovieSync/internal/config"
	"MovieSync/internal/interfaces"
	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register("sample", NewSampleAdapter)
}

var genresList = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "Horror",
	"Mystery", "Romance", "Science Fiction", "Thriller", "War", "Western",
}

var movieTitles = []string{
	"The Last Echo", "Midnight Runner", "Silent Storm", "Digital Dreams",
	"Beyond the Horizon", "Shadow Protocol", "Crystal Empire", "Neon City",
	"The Forgotten Path", "Quantum Divide", "Eternal Flame", "Dark Waters",
	"Phoenix Rising", "Lost in Time", "Broken Compass", "Steel Heart",
	"Velvet Revolution", "Ghost in Machine", "Sacred Ground", "Wild Spirit",
	"Golden Hour", "Crimson Tide", "Silver Lining", "Iron Will",
	"Frozen Destiny", "Burning Sky", "Rising Sun", "Falling Stars",
	"Hidden Truth", "Perfect Storm", "Blind Faith", "Pure Chaos",
}

var titleSuffixes = []string{"", "Returns", "Reloaded", "Rising", "Begins", "2", "Redemption"}

// Adapter 样例数据源适配器（本地生成，零网络，永不失败）
// 生产环境走TMDB时，本源用于演示与开发环境
type Adapter struct {
	logger *logrus.Logger
}

func NewSampleAdapter(_ *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{logger: logger}
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "sample"
}

// Profile 生成数据已是标准列名，走custom画像
func (a *Adapter) Profile() model.SourceType {
	return model.SourceCustom
}

// FetchMovies 生成limit条仿真电影记录
func (a *Adapter) FetchMovies(_ context.Context, limit int) (*model.RawTable, error) {
	if limit <= 0 {
		limit = 500
	}

	table := &model.RawTable{Headers: model.StandardFields()}
	for i := 0; i < limit; i++ {
		title := strings.TrimSpace(fmt.Sprintf("%s %s",
			movieTitles[rand.Intn(len(movieTitles))],
			titleSuffixes[rand.Intn(len(titleSuffixes))]))
		year := 1990 + rand.Intn(35)
		rating := 4.0 + rand.Float64()*5.5

		// 每部1-3个类型
		n := 1 + rand.Intn(3)
		picked := rand.Perm(len(genresList))[:n]
		genres := make([]string, n)
		for j, idx := range picked {
			genres[j] = genresList[idx]
		}

		table.Rows = append(table.Rows, map[string]string{
			model.FieldMovieID:     fmt.Sprintf("TM%05d", i+1),
			model.FieldTitle:       title,
			model.FieldGenres:      strings.Join(genres, "|"),
			model.FieldReleaseYear: strconv.Itoa(year),
			model.FieldRuntime:     strconv.Itoa(80 + rand.Intn(101)),
			model.FieldRating:      strconv.FormatFloat(rating, 'f', 1, 64),
			model.FieldVoteCount:   strconv.Itoa(100 + rand.Intn(49901)),
			model.FieldPopularity:  strconv.FormatFloat(1.0+rand.Float64()*99.0, 'f', 2, 64),
			model.FieldOverview: fmt.Sprintf("A %s story set in %d. This compelling narrative explores themes of adventure, drama, and human emotion.",
				strings.ToLower(genres[0]), year),
		})
	}

	a.logger.Infof("样例数据生成完成，共%d条", table.NumRows())
	return table, nil
}
