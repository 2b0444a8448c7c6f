package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

var chapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Download and inspect manga chapters",
}

var chapterDownloadCmd = &cobra.Command{
	Use:   "download [request.json]",
	Short: "Download a manga chapter described by a JSON request (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req domain.ChapterDownload
		if err := readRequestFile(args[0], &req); err != nil {
			return err
		}
		ensureServer()

		var result domain.ChapterResult
		if err := call(http.MethodPost, "/api/v1/manga/chapters/download", &req, &result); err != nil {
			return err
		}

		switch {
		case result.Paused:
			fmt.Printf("Chapter paused: %d/%d images\n", result.Downloaded, result.Total)
		case result.Success:
			fmt.Printf("Chapter downloaded: %d/%d images\n", result.Downloaded, result.Total)
		default:
			fmt.Printf("Chapter incomplete: %d/%d images\n", result.Downloaded, result.Total)
		}
		fmt.Printf("  Path: %s\n", result.ChapterPath)
		return nil
	},
}

var chapterPauseCmd = &cobra.Command{
	Use:   "pause [manga] [group] [chapter]",
	Short: "Pause a running chapter download",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		if err := call(http.MethodPost, "/api/v1/manga/chapters/pause", chapterRef(args), nil); err != nil {
			return err
		}
		fmt.Println("Pause requested")
		return nil
	},
}

var chapterResumeCmd = &cobra.Command{
	Use:   "resume [manga] [group] [chapter]",
	Short: "Clear the pause flag of a chapter",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		var resp struct {
			Resumed bool `json:"resumed"`
		}
		if err := call(http.MethodPost, "/api/v1/manga/chapters/resume", chapterRef(args), &resp); err != nil {
			return err
		}
		if !resp.Resumed {
			fmt.Println("Chapter was not paused")
			return nil
		}
		fmt.Println("Chapter resumed; start the download again to continue")
		return nil
	},
}

var chapterStatusCmd = &cobra.Command{
	Use:   "status [manga] [group] [chapter]",
	Short: "Show how much of a chapter is on disk and in flight",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		expected, _ := cmd.Flags().GetInt("expected")
		base := "/api/v1/manga" + pathEscape(args...)
		query := "?expected=" + strconv.Itoa(expected)

		var detail domain.ChapterDownloadDetail
		if err := call(http.MethodGet, base+"/detail"+query, nil, &detail); err != nil {
			return err
		}
		var progress domain.ChapterProgress
		if err := call(http.MethodGet, base+"/progress"+query, nil, &progress); err != nil {
			return err
		}
		var incomplete domain.IncompleteChapter
		if err := call(http.MethodGet, base+"/incomplete", nil, &incomplete); err != nil {
			return err
		}

		fmt.Println("Chapter Status:")
		fmt.Printf("  On disk:  %s (%d/%d images, %.1f%%)\n",
			detail.Status, detail.DownloadedImages, detail.TotalImages, detail.Progress)
		fmt.Printf("  Progress: %s (%d/%d, %.1f%%)\n",
			progress.Status, progress.Completed, progress.Total, progress.Percent)
		if progress.CurrentImage != "" {
			fmt.Printf("  Current:  %s\n", progress.CurrentImage)
		}
		if incomplete.HasIncomplete {
			fmt.Printf("  Interrupted run left %d images without a journal; download again to resume\n", incomplete.Completed)
		}
		return nil
	},
}

var episodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "Download and inspect cartoon episodes",
}

var episodeDownloadCmd = &cobra.Command{
	Use:   "download [request.json]",
	Short: "Download a cartoon episode described by a JSON request (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req domain.EpisodeDownload
		if err := readRequestFile(args[0], &req); err != nil {
			return err
		}
		ensureServer()

		var result domain.EpisodeResult
		if err := call(http.MethodPost, "/api/v1/cartoons/episodes/download", &req, &result); err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Printf("  File: %s\n", result.FilePath)
		return nil
	},
}

var episodeProgressCmd = &cobra.Command{
	Use:   "progress [cartoon] [chapter]",
	Short: "Show the progress of an episode download",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		var progress domain.EpisodeProgress
		if err := call(http.MethodGet, "/api/v1/cartoons"+pathEscape(args...)+"/progress", nil, &progress); err != nil {
			return err
		}

		fmt.Printf("Status:   %s\n", progress.Status)
		fmt.Printf("Progress: %.1f%%\n", progress.Percent)
		if progress.TotalSize > 0 {
			fmt.Printf("Size:     %s / %s\n",
				humanize.Bytes(progress.DownloadedSize), humanize.Bytes(progress.TotalSize))
		} else if progress.DownloadedSize > 0 {
			fmt.Printf("Size:     %s\n", humanize.Bytes(progress.DownloadedSize))
		}
		return nil
	},
}

func chapterRef(args []string) map[string]string {
	return map[string]string{
		"manga_uuid":      args[0],
		"group_path_word": args[1],
		"chapter_uuid":    args[2],
	}
}

func init() {
	chapterStatusCmd.Flags().IntP("expected", "e", 0, "Expected number of images in the chapter")

	chapterCmd.AddCommand(chapterDownloadCmd, chapterPauseCmd, chapterResumeCmd, chapterStatusCmd)
	episodeCmd.AddCommand(episodeDownloadCmd, episodeProgressCmd)
}
