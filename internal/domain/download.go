package domain

import (
	"sort"
)

// ImageAsset describes one remote image of a chapter
type ImageAsset struct {
	URL      string `json:"url"`
	Index    int    `json:"index"`
	Filename string `json:"filename"`
}

// MangaDetail is the parent media descriptor persisted once per manga
type MangaDetail struct {
	UUID     string   `json:"uuid"`
	Name     string   `json:"name"`
	PathWord string   `json:"path_word"`
	Cover    string   `json:"cover"`
	Author   []string `json:"author"`
	Theme    []string `json:"theme"`
	Status   string   `json:"status"`
	Popular  *int     `json:"popular"`
	Brief    *string  `json:"brief"`
}

// CartoonDetail is the parent media descriptor persisted once per cartoon
type CartoonDetail struct {
	UUID            string   `json:"uuid"`
	Name            string   `json:"name"`
	PathWord        string   `json:"path_word"`
	Cover           string   `json:"cover"`
	Company         *string  `json:"company"`
	Theme           []string `json:"theme"`
	CartoonType     *string  `json:"cartoon_type"`
	Category        *string  `json:"category"`
	Grade           *string  `json:"grade"`
	Popular         *int     `json:"popular"`
	Brief           *string  `json:"brief"`
	Years           *string  `json:"years"`
	DatetimeUpdated *string  `json:"datetime_updated"`
}

// ChapterDownload is the work description of one manga chapter
type ChapterDownload struct {
	MangaID     string       `json:"manga_uuid" binding:"required"`
	MangaName   string       `json:"manga_name"`
	GroupID     string       `json:"group_path_word" binding:"required"`
	ChapterID   string       `json:"chapter_uuid" binding:"required"`
	ChapterName string       `json:"chapter_name"`
	Images      []ImageAsset `json:"images"`
	Detail      *MangaDetail `json:"manga_detail,omitempty"`
}

// Key returns the task key of the chapter
func (d *ChapterDownload) Key() TaskKey {
	return NewMangaKey(d.MangaID, d.GroupID, d.ChapterID)
}

// OrderedImages returns the images sorted by index without mutating the request
func (d *ChapterDownload) OrderedImages() []ImageAsset {
	images := make([]ImageAsset, len(d.Images))
	copy(images, d.Images)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Index < images[j].Index
	})
	return images
}

// EpisodeDownload is the work description of one cartoon episode
type EpisodeDownload struct {
	CartoonID   string         `json:"cartoon_uuid" binding:"required"`
	CartoonName string         `json:"cartoon_name"`
	ChapterID   string         `json:"chapter_uuid" binding:"required"`
	ChapterName string         `json:"chapter_name" binding:"required"`
	VideoURL    string         `json:"video_url" binding:"required"`
	Cover       string         `json:"cover"`
	Detail      *CartoonDetail `json:"cartoon_detail,omitempty"`
}

// Key returns the task key of the episode
func (d *EpisodeDownload) Key() TaskKey {
	return NewCartoonKey(d.CartoonID, d.ChapterID)
}

// VideoFilename returns the destination filename of the episode
func (d *EpisodeDownload) VideoFilename() string {
	return d.ChapterName + ".mp4"
}

// ChapterResult is returned by a manga chapter download
type ChapterResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ChapterPath string `json:"chapter_path"`
	Downloaded  int    `json:"downloaded"`
	Total       int    `json:"total"`
	Paused      bool   `json:"paused"`
}

// EpisodeResult is returned by a cartoon episode download
type EpisodeResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}
