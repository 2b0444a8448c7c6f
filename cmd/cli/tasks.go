package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List registered episode tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		active, _ := cmd.Flags().GetBool("active")

		path := "/api/v1/tasks"
		if active {
			path += "?active=true"
		}

		var tasks []domain.RegisteredTask
		if err := call(http.MethodGet, path, nil, &tasks); err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CARTOON\tCHAPTER\tNAME\tSTATUS\tPROGRESS\tUPDATED")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
				truncate(t.CartoonUUID, 12),
				truncate(t.ChapterUUID, 12),
				truncate(t.ChapterName, 30),
				t.Status,
				t.Progress,
				t.UpdatedAt)
		}
		return w.Flush()
	},
}

var taskCancelCmd = &cobra.Command{
	Use:   "cancel [cartoon] [chapter]",
	Short: "Cancel and remove a registered task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		if err := call(http.MethodPost, "/api/v1/tasks"+pathEscape(args...)+"/cancel", nil, nil); err != nil {
			return err
		}
		fmt.Println("Task cancelled")
		return nil
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "set-status [cartoon] [chapter] [status]",
	Short: "Change the status of a registered task (downloading, paused, completed, error, cancelled)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		body := map[string]string{"status": args[2]}
		if err := call(http.MethodPut, "/api/v1/tasks"+pathEscape(args[0], args[1])+"/status", body, nil); err != nil {
			return err
		}
		fmt.Printf("Task marked %s\n", args[2])
		return nil
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:   "remove [cartoon] [chapter]",
	Short: "Remove a registered task without cancelling it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		if err := call(http.MethodDelete, "/api/v1/tasks"+pathEscape(args...), nil, nil); err != nil {
			return err
		}
		fmt.Println("Task removed")
		return nil
	},
}

func init() {
	tasksCmd.Flags().BoolP("active", "a", false, "Only list downloading and paused tasks")
	tasksCmd.AddCommand(taskCancelCmd, taskStatusCmd, taskRemoveCmd)
}
