package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// LibraryHandler handles requests about already downloaded media
type LibraryHandler struct {
	library     *app.Library
	downloadMgr *app.DownloadManager
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(library *app.Library, downloadMgr *app.DownloadManager) *LibraryHandler {
	return &LibraryHandler{
		library:     library,
		downloadMgr: downloadMgr,
	}
}

// ListMedia handles GET /api/v1/library/:kind
func (h *LibraryHandler) ListMedia(c *gin.Context) {
	media, err := h.library.ListMedia(domain.MediaKind(c.Param("kind")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

// MediaDetail handles GET /api/v1/library/:kind/:media
func (h *LibraryHandler) MediaDetail(c *gin.Context) {
	item, err := h.library.MediaDetail(domain.MediaKind(c.Param("kind")), c.Param("media"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Chapters handles GET /api/v1/library/:kind/:media/chapters
func (h *LibraryHandler) Chapters(c *gin.Context) {
	chapters, err := h.library.Chapters(domain.MediaKind(c.Param("kind")), c.Param("media"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chapters)
}

// ChapterImages handles GET /api/v1/library/:kind/:media/chapters/:chapter/images
func (h *LibraryHandler) ChapterImages(c *gin.Context) {
	images, err := h.library.ChapterImages(libraryKey(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

// DeleteChapter handles DELETE /api/v1/library/:kind/:media/chapters/:chapter
func (h *LibraryHandler) DeleteChapter(c *gin.Context) {
	key := libraryKey(c)
	if h.downloadMgr != nil && h.downloadMgr.IsActive(key) {
		respondError(c, domain.NewError(domain.ErrInvalidState, fmt.Sprintf("download running: %s", key), nil))
		return
	}

	if err := h.library.DeleteChapter(key); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "chapter deleted"})
}

// libraryKey builds the chapter key from the path; manga chapters take
// their group from the group query parameter
func libraryKey(c *gin.Context) domain.TaskKey {
	kind := domain.MediaKind(c.Param("kind"))
	if kind == domain.KindManga {
		return domain.NewMangaKey(c.Param("media"), c.Query("group"), c.Param("chapter"))
	}
	return domain.TaskKey{Kind: kind, MediaID: c.Param("media"), ChapterID: c.Param("chapter")}
}
