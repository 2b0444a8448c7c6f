package app

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"go.uber.org/zap"
)

// persistMediaDetail writes the parent media descriptor and fetches its cover
// once. A failed cover fetch is logged and otherwise ignored.
func (dm *DownloadManager) persistMediaDetail(ctx context.Context, key domain.TaskKey, detail any, cover string) error {
	mediaDir := key.MediaDir(dm.Root())
	detailPath := filepath.Join(mediaDir, key.Kind.DetailFilename())
	if err := infrastructure.WriteJSONAtomic(detailPath, detail); err != nil {
		return domain.NewError(domain.ErrIO, "failed to write media detail", err)
	}

	if cover == "" {
		return nil
	}
	coverPath := filepath.Join(mediaDir, "cover."+CoverExtension(cover))
	if infrastructure.FileExists(coverPath) {
		return nil
	}

	data, err := dm.fetcher.Fetch(ctx, cover)
	if err == nil {
		err = infrastructure.WriteFileAtomic(coverPath, data)
	}
	if err != nil {
		dm.logger.Warn("Failed to download cover",
			zap.String("task_key", key.String()),
			zap.String("url", cover),
			zap.Error(err))
		return nil
	}

	dm.logger.Debug("Cover saved", zap.String("path", coverPath))
	return nil
}

// CoverExtension returns the extension of the last path segment of rawURL,
// or "jpg" when it has none
func CoverExtension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return "jpg"
	}
	return base[idx+1:]
}
