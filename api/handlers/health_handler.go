package handlers

import (
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/yourusername/mediafetch-go/internal/app"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	downloadMgr *app.DownloadManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(downloadMgr *app.DownloadManager) *HealthHandler {
	return &HealthHandler{
		downloadMgr: downloadMgr,
	}
}

// DiskStatus describes the filesystem holding the download root
type DiskStatus struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	FreeHuman   string  `json:"free_human"`
	UsedPercent float64 `json:"used_percent"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status          string      `json:"status"`
	Version         string      `json:"version"`
	ActiveDownloads int         `json:"active_downloads"`
	Disk            *DiskStatus `json:"disk,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:          "ok",
		Version:         Version,
		ActiveDownloads: len(h.downloadMgr.ActiveKeys()),
	}

	root := h.downloadMgr.Root()
	if usage, err := disk.Usage(root); err == nil {
		response.Disk = &DiskStatus{
			Path:        root,
			Total:       usage.Total,
			Free:        usage.Free,
			FreeHuman:   humanize.Bytes(usage.Free),
			UsedPercent: usage.UsedPercent,
		}
	}

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	info, err := os.Stat(h.downloadMgr.Root())
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "download directory unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
