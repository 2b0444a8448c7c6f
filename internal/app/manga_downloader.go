package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// DownloadChapter fetches the images of one manga chapter that are not yet on
// disk. Individual image failures are skipped; the journal is rewritten with
// whatever was materialized when the loop stops. A pause flag that is already
// set when the call begins stops it before any fetch or journal write.
func (dm *DownloadManager) DownloadChapter(ctx context.Context, req *domain.ChapterDownload) (*domain.ChapterResult, error) {
	key := req.Key()
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := dm.acquire(key); err != nil {
		return nil, err
	}
	defer dm.release(key)

	images := req.OrderedImages()
	total := len(images)
	chapterDir := key.ChapterDir(dm.Root())

	record := domain.NewDownloadRecord(key)
	record.TotalAssets = total

	if dm.pauses.IsPaused(key) {
		done := 0
		if journal, ok, err := dm.journals.ReadManga(key); err == nil && ok {
			done = len(journal.Images)
		}
		record.Assets = done
		dm.finish(record, req.MangaName, domain.OutcomePaused, nil)
		return &domain.ChapterResult{
			Success:     true,
			Message:     fmt.Sprintf("chapter paused before start: %s", req.ChapterName),
			ChapterPath: chapterDir,
			Downloaded:  done,
			Total:       total,
			Paused:      true,
		}, nil
	}

	dm.logger.Info("Chapter download started",
		zap.String("task_key", key.String()),
		zap.String("chapter", req.ChapterName),
		zap.Int("images", total))

	if err := infrastructure.EnsureDir(chapterDir); err != nil {
		err = domain.NewError(domain.ErrIO, "failed to create chapter directory", err)
		dm.finish(record, req.MangaName, domain.OutcomeFailed, err)
		return nil, err
	}

	if req.Detail != nil {
		if err := dm.persistMediaDetail(ctx, key, req.Detail, req.Detail.Cover); err != nil {
			dm.finish(record, req.MangaName, domain.OutcomeFailed, err)
			return nil, err
		}
	}

	journal := domain.NewMangaJournal(req, total)
	if err := dm.journals.WriteManga(key, journal); err != nil {
		dm.finish(record, req.MangaName, domain.OutcomeFailed, err)
		return nil, err
	}

	dm.progress.Set(key, domain.LiveProgress{
		Total:   total,
		Status:  domain.ProgressDownloading,
		Message: "preparing",
	})

	materialized, paused := dm.fetchImages(ctx, key, chapterDir, images, record)
	paused = paused && len(materialized) < total

	journal.Images = materialized
	journal.DownloadTime = domain.FormatTimestamp(time.Now())
	if err := dm.journals.WriteManga(key, journal); err != nil {
		dm.finish(record, req.MangaName, domain.OutcomeFailed, err)
		return nil, err
	}

	record.Assets = len(materialized)
	result := &domain.ChapterResult{
		Success:     true,
		ChapterPath: chapterDir,
		Downloaded:  len(materialized),
		Total:       total,
		Paused:      paused,
	}

	var outcome domain.DownloadOutcome
	switch {
	case len(materialized) == total:
		outcome = domain.OutcomeCompleted
		result.Message = fmt.Sprintf("chapter downloaded: %s", req.ChapterName)
	case paused:
		outcome = domain.OutcomePaused
		result.Message = fmt.Sprintf("chapter paused: %s (%d/%d)", req.ChapterName, len(materialized), total)
	default:
		outcome = domain.OutcomePartial
		result.Message = fmt.Sprintf("chapter partially downloaded: %s (%d/%d)", req.ChapterName, len(materialized), total)
	}

	dm.logger.Info("Chapter download finished",
		zap.String("task_key", key.String()),
		zap.String("outcome", string(outcome)),
		zap.Int("downloaded", len(materialized)),
		zap.Int("total", total))

	dm.finish(record, req.MangaName, outcome, nil)
	return result, nil
}

// fetchImages runs the sequential image loop. It returns the filenames on disk
// and whether the loop was stopped by a pause request or shutdown.
func (dm *DownloadManager) fetchImages(
	ctx context.Context,
	key domain.TaskKey,
	chapterDir string,
	images []domain.ImageAsset,
	record *domain.DownloadRecord,
) ([]string, bool) {
	materialized := make([]string, 0, len(images))
	stopped := func() bool {
		return dm.pauses.IsPaused(key) || ctx.Err() != nil
	}
	advance := func(filename string) {
		dm.progress.Update(key, func(p *domain.LiveProgress) {
			p.Current = len(materialized)
			if p.Total > 0 {
				p.Percent = float64(p.Current) * 100 / float64(p.Total)
			}
			p.DownloadedBytes = record.Bytes
			p.Message = filename
		})
	}

	for i, img := range images {
		if stopped() {
			return materialized, true
		}

		if filepath.Base(img.Filename) != img.Filename || img.Filename == "." || img.Filename == ".." {
			dm.logger.Warn("Skipping image with invalid filename",
				zap.String("task_key", key.String()),
				zap.String("filename", img.Filename))
			continue
		}

		target := filepath.Join(chapterDir, img.Filename)
		if infrastructure.FileExists(target) {
			materialized = append(materialized, img.Filename)
			advance(img.Filename)
			continue
		}

		if stopped() {
			return materialized, true
		}

		data, err := dm.fetcher.Fetch(ctx, img.URL)
		if err == nil {
			err = infrastructure.WriteFileAtomic(target, data)
		}
		if err != nil {
			dm.logger.Warn("Image download failed",
				zap.String("task_key", key.String()),
				zap.String("url", img.URL),
				zap.Error(err))
		} else {
			record.Bytes += uint64(len(data))
			materialized = append(materialized, img.Filename)
			advance(img.Filename)
		}

		if stopped() {
			return materialized, true
		}

		if i == len(images)-1 {
			break
		}
		if err := wait(ctx, dm.config.ImageDelay); err != nil {
			return materialized, true
		}
		if stopped() {
			return materialized, true
		}
	}

	return materialized, false
}
