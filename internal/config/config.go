package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig          `mapstructure:"database"` // SQLite数据库配置
	Pipeline PipelineConfig          `mapstructure:"pipeline"` // ETL管道配置
	Sync     SyncConfig              `mapstructure:"sync"`     // 定时调度配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 多数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig SQLite数据库配置
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`              // 数据库文件路径
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// PipelineConfig ETL管道配置
type PipelineConfig struct {
	RecordCount      int    `mapstructure:"record_count"`      // 期望抽取的电影数量
	DataDir          string `mapstructure:"data_dir"`          // 数据文件根目录
	StandardizedFile string `mapstructure:"standardized_file"` // 标准化CSV文件名（extracted_data/下）
	ProcessedFile    string `mapstructure:"processed_file"`    // 处理后CSV文件名（processed/下）
	MinVotes         int    `mapstructure:"min_votes"`         // 加权评分的最小投票数常量m
}

// SyncConfig 定时调度配置
type SyncConfig struct {
	IntervalMinutes int      `mapstructure:"interval_minutes"` // 执行间隔（分钟），0为不启用
	RunOnStart      bool     `mapstructure:"run_on_start"`     // 启动时是否立即执行一次
	SourceOrder     []string `mapstructure:"source_order"`     // 数据源尝试顺序
}

// SourceConfig 单个数据源的独立配置
type SourceConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数（本设计固定单次尝试，保留配置位）
	APIKey     string `mapstructure:"api_key"`     // TMDB专属API Key
	Proxy      string `mapstructure:"proxy"`       // 代理地址
	Pages      int    `mapstructure:"pages"`       // 拉取页数（每页约20条）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 兜底默认值
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if t, ok := cfg.Sources["tmdb"]; ok {
		if v := os.Getenv("TMDB_API_KEY"); v != "" {
			t.APIKey = v
		}
		if v := os.Getenv("TMDB_PROXY"); v != "" {
			t.Proxy = v
		}
		cfg.Sources["tmdb"] = t
	}
	if v := os.Getenv("MOVIE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
}

// applyDefaults 填充未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./database/movies.db"
	}
	if cfg.Pipeline.RecordCount <= 0 {
		cfg.Pipeline.RecordCount = 500
	}
	if cfg.Pipeline.DataDir == "" {
		cfg.Pipeline.DataDir = "./data"
	}
	if cfg.Pipeline.StandardizedFile == "" {
		cfg.Pipeline.StandardizedFile = "standardized_movies.csv"
	}
	if cfg.Pipeline.ProcessedFile == "" {
		cfg.Pipeline.ProcessedFile = "processed_movies.csv"
	}
	if cfg.Pipeline.MinVotes <= 0 {
		cfg.Pipeline.MinVotes = 500
	}
	if len(cfg.Sync.SourceOrder) == 0 {
		cfg.Sync.SourceOrder = []string{"tmdb", "wikipedia"}
	}
}

// StandardizedPath 标准化CSV的完整路径（extracted_data/<name>.csv）
func (p *PipelineConfig) StandardizedPath() string {
	return filepath.Join(p.DataDir, "extracted_data", p.StandardizedFile)
}

// ProcessedPath 处理后CSV的完整路径（processed/<name>.csv）
func (p *PipelineConfig) ProcessedPath() string {
	return filepath.Join(p.DataDir, "processed", p.ProcessedFile)
}
