package domain

import "encoding/json"

// LocalMedia is a downloaded parent media item found under the download root
type LocalMedia struct {
	ID                 string          `json:"uuid"`
	Kind               MediaKind       `json:"kind"`
	Detail             json.RawMessage `json:"detail"`
	CoverPath          string          `json:"cover_path,omitempty"`
	ChapterCount       int             `json:"chapter_count"`
	LatestDownloadTime string          `json:"latest_download_time"`
}

// LocalChapter is a chapter directory with a readable journal
type LocalChapter struct {
	Key          TaskKey `json:"-"`
	GroupID      string  `json:"group_path_word,omitempty"`
	ChapterID    string  `json:"chapter_uuid"`
	ChapterName  string  `json:"chapter_name"`
	DownloadTime string  `json:"download_time"`
	ImageCount   int     `json:"image_count,omitempty"`
	TotalImages  int     `json:"total_images,omitempty"`
	VideoFile    string  `json:"video_file,omitempty"`
	FileSize     uint64  `json:"file_size,omitempty"`
}
