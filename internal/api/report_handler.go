package api

import (
	"net/http"

	"MovieSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewReportHandler 创建 ReportHandler
func NewReportHandler(db *gorm.DB, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: service.NewReportService(db, logger),
		logger:        logger,
	}
}

// ReportHandler 分析报表接口
type ReportHandler struct {
	reportService *service.ReportService
	logger        *logrus.Logger
}

// GetSummary 数据集总览 GET /api/reports/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetSummary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetGenreDistribution 类型分布 GET /api/reports/genres
func (h *ReportHandler) GetGenreDistribution(c *gin.Context) {
	rows, err := h.reportService.GenreDistribution(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetGenreDistribution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetEraDistribution 年代分布 GET /api/reports/eras
func (h *ReportHandler) GetEraDistribution(c *gin.Context) {
	rows, err := h.reportService.EraDistribution(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetEraDistribution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetRatingsSummary 评分档位汇总 GET /api/reports/ratings
func (h *ReportHandler) GetRatingsSummary(c *gin.Context) {
	rows, err := h.reportService.RatingsSummary(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetRatingsSummary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
