package api

import (
	"net/http"
	"strconv"

	"MovieSync/internal/config"
	"MovieSync/internal/mapping"
	"MovieSync/internal/model"
	"MovieSync/internal/repository"
	"MovieSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewPipelineHandler 创建 PipelineHandler，内部装配完整流水线服务链
func NewPipelineHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *PipelineHandler {
	extractSvc := service.NewExtractService(cfg, logger)
	transformSvc := service.NewTransformService(cfg, logger)
	movieRepo := repository.NewMovieRepository(db)
	runRepo := repository.NewRunRepository(db)
	pipelineSvc := service.NewPipelineService(cfg, extractSvc, transformSvc, movieRepo, runRepo, logger)
	return &PipelineHandler{
		pipelineService: pipelineSvc,
		logger:          logger,
	}
}

// PipelineHandler 流水线触发与运行记录接口
type PipelineHandler struct {
	pipelineService *service.PipelineService
	logger          *logrus.Logger
}

// RunPipeline 触发完整流水线 POST /pipeline/run?source=tmdb&count=500
// source 缺省为auto（文件→源顺序→兜底），count 缺省取配置
func (h *PipelineHandler) RunPipeline(c *gin.Context) {
	source := c.Query("source")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	summary, err := h.pipelineService.Run(c.Request.Context(), source, count)
	if err != nil {
		h.logger.WithError(err).Error("RunPipeline failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExtractSource 仅执行抽取阶段 POST /pipeline/extract/:source
func (h *PipelineHandler) ExtractSource(c *gin.Context) {
	source := c.Param("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	usedSource, rows, err := h.pipelineService.ExtractOnly(c.Request.Context(), source, count)
	if err != nil {
		h.logger.WithError(err).Error("ExtractSource failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": usedSource, "rows": rows})
}

// ListRuns 最近运行记录 GET /api/runs?limit=20
func (h *PipelineHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.pipelineService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// PreviewMapping 列映射预演 GET /api/mappings/preview?file=./data/raw.csv&source=auto
// 只读不落库，返回每列的映射结果与样例值，便于接入新CSV前检查
func (h *PipelineHandler) PreviewMapping(c *gin.Context) {
	file := c.Query("file")
	if file == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	source := c.DefaultQuery("source", "auto")

	report, err := mapping.PreviewFile(file, model.SourceType(source))
	if err != nil {
		h.logger.WithError(err).Error("PreviewMapping failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
