package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "MovieSync/internal/adapter/sample"
	_ "MovieSync/internal/adapter/tmdb"
	_ "MovieSync/internal/adapter/wikipedia"
	"MovieSync/internal/api"
	"MovieSync/internal/config"
	"MovieSync/internal/model"
	"MovieSync/internal/repository"
	"MovieSync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	logrusLogger.Info("配置文件加载成功")

	// 3. 初始化GORM日志器（Warn级别，SQLite本地文件无需逐条SQL日志）
	gormLogger := logger.Default.LogMode(logger.Warn)

	// 4. 初始化SQLite连接（数据库目录不存在则先创建）
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrusLogger.Fatalf("创建数据库目录失败: %v", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		logrusLogger.Fatalf("连接SQLite失败: %v", err)
	}
	logrusLogger.Infof("SQLite连接成功: %s", cfg.Database.Path)

	// 5. 配置连接池（SQLite单写者，写连接收紧到1避免database is locked）
	sqlDB, err := db.DB()
	if err != nil {
		logrusLogger.Fatalf("获取SQL DB失败: %v", err)
	}
	maxOpen := cfg.Database.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 6. 库表不存在则自动创建（按依赖顺序迁移）
	if err := db.AutoMigrate(
		&model.Movie{},
		&model.Genre{},
		&model.MovieGenre{},
		&model.RatingsSummary{},
		&model.PipelineRun{},
	); err != nil {
		logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
	}
	logrusLogger.Info("数据库表结构检查完成（不存在则已创建）")

	// 7. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册pprof 方便调试和监测性能问题
	pprof.Register(r)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 注册API路由（传入全局配置）
	pipelineHandler := api.NewPipelineHandler(db, logrusLogger, cfg)
	r.POST("/pipeline/run", pipelineHandler.RunPipeline)
	r.POST("/pipeline/extract/:source", pipelineHandler.ExtractSource)
	r.GET("/api/runs", pipelineHandler.ListRuns)
	r.GET("/api/mappings/preview", pipelineHandler.PreviewMapping)

	// 影片查询接口（给前端页面用）
	movieHandler := api.NewMovieHandler(db, logrusLogger)
	r.GET("/api/movies", movieHandler.ListMovies)
	r.GET("/api/movies/:movie_id", movieHandler.GetMovieDetail)

	// 分析报表接口
	reportHandler := api.NewReportHandler(db, logrusLogger)
	r.GET("/api/reports/summary", reportHandler.GetSummary)
	r.GET("/api/reports/genres", reportHandler.GetGenreDistribution)
	r.GET("/api/reports/eras", reportHandler.GetEraDistribution)
	r.GET("/api/reports/ratings", reportHandler.GetRatingsSummary)

	// 9. 启动定时调度（interval_minutes>0时生效）
	extractSvc := service.NewExtractService(cfg, logrusLogger)
	transformSvc := service.NewTransformService(cfg, logrusLogger)
	pipelineSvc := service.NewPipelineService(cfg, extractSvc, transformSvc,
		repository.NewMovieRepository(db), repository.NewRunRepository(db), logrusLogger)
	scheduler := service.NewScheduler(cfg, pipelineSvc, logrusLogger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Start(ctx)

	// 10. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logrusLogger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logrusLogger.Fatalf("启动服务失败: %v", err)
	}
}
