package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

var libraryCmd = &cobra.Command{
	Use:       "library [manga|cartoon]",
	Short:     "List downloaded media",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.KindManga), string(domain.KindCartoon)},
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		var media []domain.LocalMedia
		if err := call(http.MethodGet, "/api/v1/library"+pathEscape(args[0]), nil, &media); err != nil {
			return err
		}
		if len(media) == 0 {
			fmt.Println("Nothing downloaded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCHAPTERS\tLATEST\tCOVER")
		for _, m := range media {
			cover := "-"
			if m.CoverPath != "" {
				cover = "yes"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
				truncate(m.ID, 36), m.ChapterCount, relativeTime(m.LatestDownloadTime), cover)
		}
		return w.Flush()
	},
}

var libraryChaptersCmd = &cobra.Command{
	Use:   "chapters [manga|cartoon] [media]",
	Short: "List the downloaded chapters of one media item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		var chapters []domain.LocalChapter
		if err := call(http.MethodGet, "/api/v1/library"+pathEscape(args...)+"/chapters", nil, &chapters); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tCHAPTER\tNAME\tCONTENT\tDOWNLOADED")
		for _, ch := range chapters {
			content := fmt.Sprintf("%d/%d images", ch.ImageCount, ch.TotalImages)
			if ch.VideoFile != "" {
				content = humanize.Bytes(ch.FileSize)
			}
			group := ch.GroupID
			if group == "" {
				group = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				group, truncate(ch.ChapterID, 12), truncate(ch.ChapterName, 30), content, relativeTime(ch.DownloadTime))
		}
		return w.Flush()
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete [manga|cartoon] [media] [chapter]",
	Short: "Delete a downloaded chapter from disk",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		path := "/api/v1/library" + pathEscape(args[0], args[1]) + "/chapters" + pathEscape(args[2])
		if group, _ := cmd.Flags().GetString("group"); group != "" {
			path += "?group=" + url.QueryEscape(group)
		}
		if err := call(http.MethodDelete, path, nil, nil); err != nil {
			return err
		}
		fmt.Println("Chapter deleted")
		return nil
	},
}

// relativeTime renders a stored timestamp as "3 hours ago"
func relativeTime(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return s
	}
	return humanize.Time(t)
}

func init() {
	libraryDeleteCmd.Flags().StringP("group", "g", "", "Chapter group (manga only)")
	libraryCmd.AddCommand(libraryChaptersCmd, libraryDeleteCmd)
}
