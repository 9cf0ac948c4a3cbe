package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"MovieSync/internal/adapter"
	"MovieSync/internal/config"
	"MovieSync/internal/interfaces"
	"MovieSync/internal/model"
	"MovieSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register("wikipedia", NewWikipediaAdapter)
}

// Adapter Wikipedia数据源适配器（公开数据，无需API Key）
// 页面解析未落地时退回内置高分片单，因此本适配器永不失败，
// 也作为整条抽取链的最终兜底数据源
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewWikipediaAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "wikipedia"
}

// Profile 内置片单已是标准列名，走custom画像（模糊匹配即恒等映射）
func (a *Adapter) Profile() model.SourceType {
	return model.SourceCustom
}

// FetchMovies 尝试连通Wikipedia片单页面；无论成败都返回内置高分片单
func (a *Adapter) FetchMovies(ctx context.Context, limit int) (*model.RawTable, error) {
	if a.cfg.BaseURL != "" {
		urls := []string{
			fmt.Sprintf("%s/wiki/IMDb_Top_250", a.cfg.BaseURL),
			fmt.Sprintf("%s/wiki/List_of_best-reviewed_films", a.cfg.BaseURL),
		}
		connected := false
		for _, url := range urls {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				continue
			}
			resp, err := a.httpClient.Do(req)
			if err != nil {
				continue
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				connected = true
				break
			}
		}
		if connected {
			// 页面表格解析未实现，数据仍取内置片单
			a.logger.Warn("Wikipedia页面连通成功，但表格解析未实现，使用内置高分片单")
		} else {
			a.logger.Warn("Wikipedia连接失败，使用内置高分片单")
		}
	}

	return FallbackTable(limit), nil
}

// FallbackTable 内置高分片单的标准化表（永不失败，零网络可用）
// limit<=0 或超过片单长度时返回全部
func FallbackTable(limit int) *model.RawTable {
	films := fallbackFilms
	if limit > 0 && limit < len(films) {
		films = films[:limit]
	}

	table := &model.RawTable{Headers: model.StandardFields()}
	for i, f := range films {
		table.Rows = append(table.Rows, map[string]string{
			model.FieldMovieID:     fmt.Sprintf("WIKI%05d", i+1),
			model.FieldTitle:       f.title,
			model.FieldGenres:      f.genres,
			model.FieldReleaseYear: strconv.Itoa(f.year),
			model.FieldRuntime:     strconv.Itoa(f.runtime),
			model.FieldRating:      strconv.FormatFloat(f.rating, 'f', 1, 64),
			// 评分越高投票越多的估算口径
			model.FieldVoteCount:  strconv.Itoa(int(1000000 * f.rating / 10)),
			model.FieldPopularity: strconv.FormatFloat(f.rating*10, 'f', 1, 64),
			model.FieldOverview:   fmt.Sprintf("%s is a highly-rated film from %d", f.title, f.year),
		})
	}
	return table
}

// FallbackCount 内置片单的条数（测试断言用）
func FallbackCount() int {
	return len(fallbackFilms)
}
