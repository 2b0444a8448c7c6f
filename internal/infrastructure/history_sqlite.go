package infrastructure

import (
	"fmt"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository opens (and migrates) the history database
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.DownloadRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create stores a finished invocation
func (r *SQLiteHistoryRepository) Create(record *domain.DownloadRecord) error {
	return r.db.Create(record).Error
}

// FindRecent returns up to limit records, newest first. limit <= 0 means no limit.
func (r *SQLiteHistoryRepository) FindRecent(limit int) ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	query := r.db.Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// FindByTaskKey returns every invocation of one task, newest first
func (r *SQLiteHistoryRepository) FindByTaskKey(key string) ([]*domain.DownloadRecord, error) {
	var records []*domain.DownloadRecord
	err := r.db.Where("task_key = ?", key).
		Order("started_at DESC").
		Find(&records).Error
	return records, err
}

// GetStats returns outcome counters
func (r *SQLiteHistoryRepository) GetStats() (*domain.HistoryStats, error) {
	stats := &domain.HistoryStats{}

	if err := r.db.Model(&domain.DownloadRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	outcomeCounts := []struct {
		Outcome domain.DownloadOutcome
		Count   int64
	}{}

	if err := r.db.Model(&domain.DownloadRecord{}).
		Select("outcome, count(*) as count").
		Group("outcome").
		Scan(&outcomeCounts).Error; err != nil {
		return nil, err
	}

	for _, oc := range outcomeCounts {
		switch oc.Outcome {
		case domain.OutcomeCompleted:
			stats.Completed = oc.Count
		case domain.OutcomePartial:
			stats.Partial = oc.Count
		case domain.OutcomePaused:
			stats.Paused = oc.Count
		case domain.OutcomeFailed:
			stats.Failed = oc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
