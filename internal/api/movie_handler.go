package api

import (
	"errors"
	"net/http"
	"strconv"

	"MovieSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewMovieHandler 创建 MovieHandler
func NewMovieHandler(db *gorm.DB, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		movieRepo: repository.NewMovieRepository(db),
		logger:    logger,
	}
}

// MovieHandler 影片查询接口（给前端页面用）
type MovieHandler struct {
	movieRepo *repository.MovieRepository
	logger    *logrus.Logger
}

// ListMovies 影片列表 GET /api/movies?genre=Drama&era=2010s&rating_category=Excellent&min_rating=8&year_from=2000&year_to=2020&sort_by=weighted_score&page=1&page_size=20
func (h *MovieHandler) ListMovies(c *gin.Context) {
	minRating, _ := strconv.ParseFloat(c.DefaultQuery("min_rating", "0"), 64)
	yearFrom, _ := strconv.Atoi(c.DefaultQuery("year_from", "0"))
	yearTo, _ := strconv.Atoi(c.DefaultQuery("year_to", "0"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := &repository.MovieFilter{
		Genre:          c.Query("genre"),
		Era:            c.Query("era"),
		RatingCategory: c.Query("rating_category"),
		MinRating:      minRating,
		YearFrom:       yearFrom,
		YearTo:         yearTo,
		SortBy:         c.DefaultQuery("sort_by", "weighted_score"),
		Page:           page,
		PageSize:       pageSize,
	}

	movies, total, err := h.movieRepo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("ListMovies failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
		"movies":    movies,
	})
}

// GetMovieDetail 影片详情 GET /api/movies/:movie_id
func (h *MovieHandler) GetMovieDetail(c *gin.Context) {
	movieID := c.Param("movie_id")
	if movieID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movie_id is required"})
		return
	}

	movie, genres, err := h.movieRepo.GetByID(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		h.logger.WithError(err).Error("GetMovieDetail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movie":  movie,
		"genres": genres,
	})
}
