package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/api/handlers"
	"github.com/yourusername/mediafetch-go/api/middleware"
	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/pkg/logger"
)

// Services bundles what the HTTP layer exposes
type Services struct {
	DownloadMgr *app.DownloadManager
	Tasks       *app.TaskService
	Library     *app.Library
	History     domain.HistoryRepository // optional
	Events      *logger.LoggerAdapter    // optional
	LogsDir     string
}

// SetupRouter sets up the HTTP router. Downloads started through it run
// under ctx, which should end on server shutdown.
func SetupRouter(ctx context.Context, svc Services, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.ErrorLogger(svc.Events))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(svc.DownloadMgr)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		mangaHandler := handlers.NewMangaHandler(ctx, svc.DownloadMgr, log)
		manga := v1.Group("/manga")
		{
			manga.POST("/chapters/download", mangaHandler.DownloadChapter)
			manga.POST("/chapters/pause", mangaHandler.PauseChapter)
			manga.POST("/chapters/resume", mangaHandler.ResumeChapter)
			manga.GET("/:manga/:group/:chapter/detail", mangaHandler.ChapterDetail)
			manga.GET("/:manga/:group/:chapter/progress", mangaHandler.ChapterProgress)
			manga.GET("/:manga/:group/:chapter/incomplete", mangaHandler.IncompleteChapter)
		}

		cartoonHandler := handlers.NewCartoonHandler(ctx, svc.DownloadMgr, log)
		cartoons := v1.Group("/cartoons")
		{
			cartoons.POST("/episodes/download", cartoonHandler.DownloadEpisode)
			cartoons.GET("/:cartoon/:chapter/progress", cartoonHandler.EpisodeProgress)
		}

		taskHandler := handlers.NewTaskHandler(svc.Tasks, log)
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.SaveTask)
			tasks.PUT("/:cartoon/:chapter/status", taskHandler.UpdateStatus)
			tasks.POST("/:cartoon/:chapter/cancel", taskHandler.CancelTask)
			tasks.DELETE("/:cartoon/:chapter", taskHandler.RemoveTask)
		}

		libraryHandler := handlers.NewLibraryHandler(svc.Library, svc.DownloadMgr)
		library := v1.Group("/library")
		{
			library.GET("/:kind", libraryHandler.ListMedia)
			library.GET("/:kind/:media", libraryHandler.MediaDetail)
			library.GET("/:kind/:media/chapters", libraryHandler.Chapters)
			library.GET("/:kind/:media/chapters/:chapter/images", libraryHandler.ChapterImages)
			library.DELETE("/:kind/:media/chapters/:chapter", libraryHandler.DeleteChapter)
		}

		progressHandler := handlers.NewProgressWebSocketHandler(ctx, svc.DownloadMgr.Progress(), log)
		v1.GET("/ws/progress", progressHandler.HandleWebSocket)

		if svc.History != nil {
			historyHandler := handlers.NewHistoryHandler(svc.History, log)
			v1.GET("/history", historyHandler.ListHistory)
			v1.GET("/history/stats", historyHandler.GetStats)
		}

		if svc.LogsDir != "" {
			logHandler := handlers.NewLogHandler(svc.LogsDir)
			logs := v1.Group("/logs")
			{
				logs.GET("/categories", logHandler.GetCategories)
				logs.GET("/:category", logHandler.GetLogs)
				logs.GET("/:category/search", logHandler.SearchLogs)
				logs.GET("/:category/export", logHandler.ExportLogs)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "not found"})
	})

	return router
}
