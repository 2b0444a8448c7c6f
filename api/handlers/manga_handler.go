package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// MangaHandler handles manga chapter requests
type MangaHandler struct {
	ctx         context.Context
	downloadMgr *app.DownloadManager
	logger      *zap.Logger
}

// NewMangaHandler creates a new manga handler. Downloads run under ctx so
// that a client disconnect does not abort them but server shutdown does.
func NewMangaHandler(ctx context.Context, downloadMgr *app.DownloadManager, logger *zap.Logger) *MangaHandler {
	return &MangaHandler{
		ctx:         ctx,
		downloadMgr: downloadMgr,
		logger:      logger,
	}
}

// ChapterRef identifies a manga chapter in pause and resume requests
type ChapterRef struct {
	MangaID   string `json:"manga_uuid" binding:"required"`
	GroupID   string `json:"group_path_word" binding:"required"`
	ChapterID string `json:"chapter_uuid" binding:"required"`
}

// Key returns the task key of the referenced chapter
func (r ChapterRef) Key() domain.TaskKey {
	return domain.NewMangaKey(r.MangaID, r.GroupID, r.ChapterID)
}

// DownloadChapter handles POST /api/v1/manga/chapters/download
func (h *MangaHandler) DownloadChapter(c *gin.Context) {
	var req domain.ChapterDownload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.downloadMgr.DownloadChapter(h.ctx, &req)
	if err != nil {
		h.logger.Error("Failed to download chapter",
			zap.String("task_key", req.Key().String()),
			zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PauseChapter handles POST /api/v1/manga/chapters/pause
func (h *MangaHandler) PauseChapter(c *gin.Context) {
	var ref ChapterRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paused": h.downloadMgr.PauseChapter(ref.Key())})
}

// ResumeChapter handles POST /api/v1/manga/chapters/resume
func (h *MangaHandler) ResumeChapter(c *gin.Context) {
	var ref ChapterRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumed": h.downloadMgr.ResumeChapter(ref.Key())})
}

// ChapterDetail handles GET /api/v1/manga/:manga/:group/:chapter/detail
func (h *MangaHandler) ChapterDetail(c *gin.Context) {
	expected, ok := queryInt(c, "expected", 0)
	if !ok {
		return
	}

	detail, err := h.downloadMgr.ChapterDetail(pathKey(c), expected)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ChapterProgress handles GET /api/v1/manga/:manga/:group/:chapter/progress
func (h *MangaHandler) ChapterProgress(c *gin.Context) {
	expected, ok := queryInt(c, "expected", 0)
	if !ok {
		return
	}

	progress, err := h.downloadMgr.ChapterProgress(pathKey(c), expected)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// IncompleteChapter handles GET /api/v1/manga/:manga/:group/:chapter/incomplete
func (h *MangaHandler) IncompleteChapter(c *gin.Context) {
	result, err := h.downloadMgr.IncompleteChapter(pathKey(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func pathKey(c *gin.Context) domain.TaskKey {
	return domain.NewMangaKey(c.Param("manga"), c.Param("group"), c.Param("chapter"))
}
