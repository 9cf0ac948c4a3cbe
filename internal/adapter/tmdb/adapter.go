package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"MovieSync/internal/adapter"
	"MovieSync/internal/config"
	"MovieSync/internal/interfaces"
	"MovieSync/internal/model"
	"MovieSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register("tmdb", NewTMDBAdapter)
}

// Adapter TMDB数据源适配器（官方API，免费档每10秒40次）
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTMDBAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "tmdb"
}

// Profile TMDB原生列名走tmdb画像映射
func (a *Adapter) Profile() model.SourceType {
	return model.SourceTMDB
}

// FetchMovies 拉取热门电影，按TMDB原生列名组装原始表
// 单次尝试：任何网络/解析/缺key错误直接返回error，由上层切换下一数据源
func (a *Adapter) FetchMovies(ctx context.Context, limit int) (*model.RawTable, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("未配置TMDB API Key（见 https://www.themoviedb.org/settings/api ）")
	}

	pages := a.cfg.Pages
	if pages <= 0 {
		pages = (limit + 19) / 20 // 每页约20条
		if pages < 1 {
			pages = 1
		}
	}

	table := &model.RawTable{
		Headers: []string{"id", "title", "genres", "release_date", "runtime",
			"vote_average", "vote_count", "popularity", "overview"},
	}

	for page := 1; page <= pages; page++ {
		url := fmt.Sprintf("%s/movie/popular?api_key=%s&page=%d&language=en-US",
			a.cfg.BaseURL, a.cfg.APIKey, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("构造TMDB请求失败: %w", err)
		}
		resp, err := a.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("请求TMDB第%d页失败: %w", page, err)
		}

		var pageResp model.TMDBPageResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&pageResp)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("TMDB返回状态码%d（API Key无效？）", resp.StatusCode)
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("解析TMDB第%d页响应失败: %w", page, decodeErr)
		}

		for _, m := range pageResp.Results {
			table.Rows = append(table.Rows, map[string]string{
				"id":           fmt.Sprintf("TMDB%d", m.ID),
				"title":        m.Title,
				"genres":       genreIDsToString(m.GenreIDs),
				"release_date": m.ReleaseDate,
				"runtime":      "120", // popular接口不含片长，按默认值补
				"vote_average": strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
				"vote_count":   strconv.Itoa(m.VoteCount),
				"popularity":   strconv.FormatFloat(m.Popularity, 'f', 2, 64),
				"overview":     m.Overview,
			})
		}

		if page >= pageResp.TotalPages && pageResp.TotalPages > 0 {
			break
		}
	}

	if table.NumRows() == 0 {
		return nil, fmt.Errorf("TMDB未返回任何电影")
	}
	if limit > 0 && table.NumRows() > limit {
		table.Rows = table.Rows[:limit]
	}
	a.logger.Infof("TMDB拉取完成，共%d条", table.NumRows())
	return table, nil
}

// genreIDsToString popular接口只有类型数字ID，转为占位类型名
func genreIDsToString(ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, fmt.Sprintf("Genre%d", id))
	}
	return strings.Join(names, "|")
}
