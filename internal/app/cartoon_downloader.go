package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

const (
	scratchDirName = "temp_segments"
	partSuffix     = ".part"

	// share of the percent scale spent fetching segments; merging takes the rest
	fetchShare = 80.0
	mergeShare = 20.0
)

// DownloadEpisode fetches one cartoon episode, either as a single file or as
// an HLS playlist whose segments are merged in playlist order. Any segment
// or merge failure is fatal and leaves no destination file behind.
func (dm *DownloadManager) DownloadEpisode(ctx context.Context, req *domain.EpisodeDownload) (*domain.EpisodeResult, error) {
	key := req.Key()
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if req.VideoURL == "" {
		return nil, domain.NewError(domain.ErrInvalidState, "video url is required", nil)
	}
	if req.ChapterName == "" || strings.ContainsAny(req.ChapterName, `/\`) || req.ChapterName == ".." {
		return nil, domain.NewError(domain.ErrInvalidState, fmt.Sprintf("invalid chapter name: %q", req.ChapterName), nil)
	}
	if err := dm.acquire(key); err != nil {
		return nil, err
	}
	defer dm.release(key)

	record := domain.NewDownloadRecord(key)
	record.TotalAssets = 1
	title := req.CartoonName

	chapterDir := key.ChapterDir(dm.Root())
	if err := infrastructure.EnsureDir(chapterDir); err != nil {
		err = domain.NewError(domain.ErrIO, "failed to create episode directory", err)
		dm.finish(record, title, domain.OutcomeFailed, err)
		return nil, err
	}

	if req.Detail != nil {
		cover := req.Detail.Cover
		if cover == "" {
			cover = req.Cover
		}
		if err := dm.persistMediaDetail(ctx, key, req.Detail, cover); err != nil {
			dm.finish(record, title, domain.OutcomeFailed, err)
			return nil, err
		}
	}

	videoPath := filepath.Join(chapterDir, req.VideoFilename())

	if info, err := os.Stat(videoPath); err == nil && info.Mode().IsRegular() {
		size := uint64(info.Size())
		if err := dm.journals.WriteCartoon(key, domain.NewCartoonJournal(req, size)); err != nil {
			dm.finish(record, title, domain.OutcomeFailed, err)
			return nil, err
		}
		record.Assets = 1
		record.Bytes = size
		dm.finish(record, title, domain.OutcomeCompleted, nil)
		return &domain.EpisodeResult{
			Success:  true,
			Message:  fmt.Sprintf("episode already exists: %s", req.ChapterName),
			FilePath: videoPath,
		}, nil
	}

	dm.upsertTask(req, domain.TaskDownloading, 0)
	dm.progress.Set(key, domain.LiveProgress{
		Status:  domain.ProgressStarting,
		Message: "preparing",
	})

	dm.logger.Info("Episode download started",
		zap.String("task_key", key.String()),
		zap.String("url", req.VideoURL),
		zap.Bool("playlist", IsPlaylistURL(req.VideoURL)))

	var (
		size uint64
		err  error
	)
	if IsPlaylistURL(req.VideoURL) {
		size, err = dm.downloadPlaylist(ctx, key, req.VideoURL, videoPath)
	} else {
		size, err = dm.downloadDirect(ctx, key, req.VideoURL, videoPath)
	}
	if err == nil {
		err = dm.journals.WriteCartoon(key, domain.NewCartoonJournal(req, size))
	}
	if err != nil {
		last, _ := dm.progress.Get(key)
		dm.progress.Update(key, func(p *domain.LiveProgress) {
			p.Status = domain.ProgressError
			p.Message = err.Error()
		})
		dm.upsertTask(req, domain.TaskError, last.Percent)
		dm.logger.Error("Episode download failed",
			zap.String("task_key", key.String()),
			zap.Error(err))
		dm.finish(record, title, domain.OutcomeFailed, err)
		return nil, err
	}

	dm.upsertTask(req, domain.TaskCompleted, 100)
	record.Assets = 1
	record.Bytes = size

	dm.logger.Info("Episode download finished",
		zap.String("task_key", key.String()),
		zap.String("file", videoPath),
		zap.String("size", humanize.Bytes(size)))

	dm.finish(record, title, domain.OutcomeCompleted, nil)
	return &domain.EpisodeResult{
		Success:  true,
		Message:  fmt.Sprintf("episode downloaded: %s", req.ChapterName),
		FilePath: videoPath,
	}, nil
}

// downloadDirect fetches a single video file
func (dm *DownloadManager) downloadDirect(ctx context.Context, key domain.TaskKey, videoURL, dest string) (uint64, error) {
	dm.progress.Update(key, func(p *domain.LiveProgress) {
		p.Current = 1
		p.Total = 1
		p.Status = domain.ProgressDownloading
		p.Message = "downloading video"
	})

	data, err := dm.videoFetcher.Fetch(ctx, videoURL)
	if err != nil {
		return 0, domain.NewError(domain.ErrNetwork, "failed to fetch video", err)
	}
	if err := infrastructure.WriteFileAtomic(dest, data); err != nil {
		return 0, domain.NewError(domain.ErrIO, "failed to write video", err)
	}

	size := uint64(len(data))
	dm.progress.Update(key, func(p *domain.LiveProgress) {
		p.DownloadedBytes = size
		p.TotalBytes = size
		p.Percent = 100
		p.Status = domain.ProgressCompleted
		p.Message = "completed"
	})
	return size, nil
}

// downloadPlaylist fetches every segment of an HLS playlist into a scratch
// directory and concatenates them into dest. The scratch directory is
// removed on every exit path.
func (dm *DownloadManager) downloadPlaylist(ctx context.Context, key domain.TaskKey, playlistURL, dest string) (uint64, error) {
	body, err := dm.videoFetcher.Fetch(ctx, playlistURL)
	if err != nil {
		return 0, domain.NewError(domain.ErrNetwork, "failed to fetch playlist", err)
	}

	segments := ParsePlaylist(string(body), PlaylistBase(playlistURL))
	if len(segments) == 0 {
		return 0, domain.NewError(domain.ErrParse, "no segments found in playlist", nil)
	}
	total := len(segments)

	scratch := filepath.Join(filepath.Dir(dest), scratchDirName)
	if err := infrastructure.EnsureDir(scratch); err != nil {
		return 0, domain.NewError(domain.ErrIO, "failed to create scratch directory", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			dm.logger.Warn("Failed to remove scratch directory", zap.String("path", scratch), zap.Error(err))
		}
	}()

	var downloaded uint64
	files := make([]string, 0, total)
	for i, segmentURL := range segments {
		dm.progress.Update(key, func(p *domain.LiveProgress) {
			p.Current = i + 1
			p.Total = total
			p.Percent = fetchShare * float64(i) / float64(total)
			p.Status = domain.ProgressDownloading
			p.Message = fmt.Sprintf("segment %d/%d", i+1, total)
		})

		data, err := dm.videoFetcher.Fetch(ctx, segmentURL)
		if err != nil {
			return 0, domain.NewError(domain.ErrNetwork, fmt.Sprintf("failed to fetch segment %d", i), err)
		}

		path := filepath.Join(scratch, fmt.Sprintf("segment_%04d.ts", i))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return 0, domain.NewError(domain.ErrIO, fmt.Sprintf("failed to write segment %d", i), err)
		}

		downloaded += uint64(len(data))
		files = append(files, path)
		dm.progress.Update(key, func(p *domain.LiveProgress) {
			p.DownloadedBytes = downloaded
		})
	}

	dm.progress.Update(key, func(p *domain.LiveProgress) {
		p.Percent = fetchShare
		p.Status = domain.ProgressMerging
		p.Message = "merging segments"
	})

	if err := dm.mergeSegments(key, files, dest); err != nil {
		return 0, err
	}

	dm.progress.Update(key, func(p *domain.LiveProgress) {
		p.Percent = 100
		p.TotalBytes = downloaded
		p.Status = domain.ProgressCompleted
		p.Message = "completed"
	})

	dm.logger.Debug("Segments merged",
		zap.String("task_key", key.String()),
		zap.Int("segments", total),
		zap.String("size", humanize.Bytes(downloaded)))

	return downloaded, nil
}

// mergeSegments concatenates files in order into dest through a .part file
// that is renamed only after a successful flush
func (dm *DownloadManager) mergeSegments(key domain.TaskKey, files []string, dest string) error {
	part := dest + partSuffix
	out, err := os.Create(part)
	if err != nil {
		return domain.NewError(domain.ErrIO, "failed to create output file", err)
	}

	total := len(files)
	for m, path := range files {
		if err := appendFile(out, path); err != nil {
			out.Close()
			os.Remove(part)
			return domain.NewError(domain.ErrIO, fmt.Sprintf("failed to merge segment %d", m), err)
		}
		// 100 is reported only once the output is flushed
		if merged := m + 1; merged < total {
			dm.progress.Update(key, func(p *domain.LiveProgress) {
				p.Percent = fetchShare + mergeShare*float64(merged)/float64(total)
				p.Message = fmt.Sprintf("merging %d/%d", merged, total)
			})
		}
	}

	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(part)
		return domain.NewError(domain.ErrIO, "failed to flush output file", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(part)
		return domain.NewError(domain.ErrIO, "failed to close output file", err)
	}
	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return domain.NewError(domain.ErrIO, "failed to finalize output file", err)
	}
	return nil
}

func appendFile(out io.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(out, in)
	return err
}

// upsertTask records the lifecycle of an episode in the task registry.
// Registry failures are logged; they never fail the download.
func (dm *DownloadManager) upsertTask(req *domain.EpisodeDownload, status domain.TaskStatus, progress float64) {
	if dm.registry == nil {
		return
	}
	task := domain.NewRegisteredTask(req, status, progress)
	if err := dm.registry.Upsert(task); err != nil {
		dm.logger.Warn("Failed to update task registry",
			zap.String("task_key", req.Key().String()),
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}
	dm.events.LogTaskEvent("task_upserted",
		zap.String("task_key", req.Key().String()),
		zap.String("status", string(status)),
		zap.Float64("progress", progress))
}
