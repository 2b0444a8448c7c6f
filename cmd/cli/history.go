package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/pkg/logger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished download invocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		limit, _ := cmd.Flags().GetInt("limit")
		key, _ := cmd.Flags().GetString("task")

		query := url.Values{}
		query.Set("limit", strconv.Itoa(limit))
		if key != "" {
			query.Set("task_key", key)
		}

		var records []domain.DownloadRecord
		if err := call(http.MethodGet, "/api/v1/history?"+query.Encode(), nil, &records); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TASK\tOUTCOME\tASSETS\tSIZE\tFINISHED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\n",
				truncate(r.TaskKey, 48),
				r.Outcome,
				r.Assets, r.TotalAssets,
				humanize.Bytes(r.Bytes),
				humanize.Time(r.FinishedAt))
		}
		return w.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download outcome statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		var stats domain.HistoryStats
		if err := call(http.MethodGet, "/api/v1/history/stats", nil, &stats); err != nil {
			return err
		}

		fmt.Println("Download Statistics:")
		fmt.Printf("  Total:     %s\n", humanize.Comma(stats.Total))
		fmt.Printf("  Completed: %s\n", humanize.Comma(stats.Completed))
		fmt.Printf("  Partial:   %s\n", humanize.Comma(stats.Partial))
		fmt.Printf("  Paused:    %s\n", humanize.Comma(stats.Paused))
		fmt.Printf("  Failed:    %s\n", humanize.Comma(stats.Failed))
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:       "logs [download|task|error]",
	Short:     "View category event logs",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(logger.CategoryDownload), string(logger.CategoryTask), string(logger.CategoryError)},
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		date, _ := cmd.Flags().GetString("date")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		query := url.Values{}
		query.Set("limit", strconv.Itoa(limit))
		if date != "" {
			query.Set("date", date)
		}
		path := "/api/v1/logs" + pathEscape(args[0])
		if search != "" {
			path += "/search"
			query.Set("q", search)
		}

		var resp struct {
			Count   int               `json:"count"`
			Entries []logger.LogEntry `json:"entries"`
		}
		if err := call(http.MethodGet, path+"?"+query.Encode(), nil, &resp); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(resp.Entries)
		}
		for _, e := range resp.Entries {
			fmt.Printf("%s %-5s %s", e.Timestamp, e.Level, e.Message)
			for k, v := range e.Fields {
				fmt.Printf(" %s=%v", k, v)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of records to show")
	historyCmd.Flags().StringP("task", "t", "", "Only show invocations of this task key")
	historyCmd.AddCommand(historyStatsCmd)

	logsCmd.Flags().StringP("date", "d", "", "Log date (YYYY-MM-DD, default today)")
	logsCmd.Flags().StringP("search", "s", "", "Only show entries containing this text")
	logsCmd.Flags().IntP("limit", "n", 100, "Number of entries to show")
	logsCmd.Flags().BoolP("json", "j", false, "Output in JSON format")
}
