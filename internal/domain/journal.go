package domain

import "time"

// TimestampLayout is the layout of every persisted timestamp (UTC)
const TimestampLayout = "2006-01-02 15:04:05"

// JournalFilename is the per-chapter journal file name
const JournalFilename = "info.json"

// FormatTimestamp formats t the way journals and the task registry store it
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MangaJournal records which images of a chapter have been materialized.
// Images never holds more entries than TotalImages.
type MangaJournal struct {
	MangaUUID     string   `json:"manga_uuid"`
	MangaName     string   `json:"manga_name"`
	GroupPathWord string   `json:"group_path_word"`
	ChapterUUID   string   `json:"chapter_uuid"`
	ChapterName   string   `json:"chapter_name"`
	TotalImages   int      `json:"total_images"`
	Images        []string `json:"images"`
	DownloadTime  string   `json:"download_time"`
}

// NewMangaJournal creates an empty journal for a chapter
func NewMangaJournal(d *ChapterDownload, total int) *MangaJournal {
	return &MangaJournal{
		MangaUUID:     d.MangaID,
		MangaName:     d.MangaName,
		GroupPathWord: d.GroupID,
		ChapterUUID:   d.ChapterID,
		ChapterName:   d.ChapterName,
		TotalImages:   total,
		Images:        []string{},
		DownloadTime:  FormatTimestamp(time.Now()),
	}
}

// Key returns the task key the journal belongs to
func (j *MangaJournal) Key() TaskKey {
	return NewMangaKey(j.MangaUUID, j.GroupPathWord, j.ChapterUUID)
}

// CartoonJournal records a materialized episode video
type CartoonJournal struct {
	CartoonUUID  string `json:"cartoon_uuid"`
	CartoonName  string `json:"cartoon_name"`
	ChapterUUID  string `json:"chapter_uuid"`
	ChapterName  string `json:"chapter_name"`
	VideoFile    string `json:"video_file"`
	FileSize     uint64 `json:"file_size"`
	DownloadTime string `json:"download_time"`
}

// NewCartoonJournal creates the completion record of an episode
func NewCartoonJournal(d *EpisodeDownload, size uint64) *CartoonJournal {
	return &CartoonJournal{
		CartoonUUID:  d.CartoonID,
		CartoonName:  d.CartoonName,
		ChapterUUID:  d.ChapterID,
		ChapterName:  d.ChapterName,
		VideoFile:    d.VideoFilename(),
		FileSize:     size,
		DownloadTime: FormatTimestamp(time.Now()),
	}
}

// Key returns the task key the journal belongs to
func (j *CartoonJournal) Key() TaskKey {
	return NewCartoonKey(j.CartoonUUID, j.ChapterUUID)
}
