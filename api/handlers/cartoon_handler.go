package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// CartoonHandler handles cartoon episode requests
type CartoonHandler struct {
	ctx         context.Context
	downloadMgr *app.DownloadManager
	logger      *zap.Logger
}

// NewCartoonHandler creates a new cartoon handler
func NewCartoonHandler(ctx context.Context, downloadMgr *app.DownloadManager, logger *zap.Logger) *CartoonHandler {
	return &CartoonHandler{
		ctx:         ctx,
		downloadMgr: downloadMgr,
		logger:      logger,
	}
}

// DownloadEpisode handles POST /api/v1/cartoons/episodes/download
func (h *CartoonHandler) DownloadEpisode(c *gin.Context) {
	var req domain.EpisodeDownload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.downloadMgr.DownloadEpisode(h.ctx, &req)
	if err != nil {
		h.logger.Error("Failed to download episode",
			zap.String("task_key", req.Key().String()),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EpisodeProgress handles GET /api/v1/cartoons/:cartoon/:chapter/progress
func (h *CartoonHandler) EpisodeProgress(c *gin.Context) {
	key := domain.NewCartoonKey(c.Param("cartoon"), c.Param("chapter"))

	progress, err := h.downloadMgr.EpisodeProgress(key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
