package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL    string
	noAutoStart  bool
	serverBin    string
	serverConfig string
	rootCmd      = &cobra.Command{
		Use:           "mediafetch",
		Short:         "mediafetch CLI - chaptered manga and cartoon downloads",
		Long:          `A command-line interface for downloading manga chapters and cartoon episodes through a mediafetch server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5001", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")
	rootCmd.PersistentFlags().StringVar(&serverBin, "server-bin", "", "Server binary name or path to auto-start (default $"+serverBinaryEnv+" or "+defaultServerBinary+")")
	rootCmd.PersistentFlags().StringVar(&serverConfig, "server-config", "", "Config file passed to an auto-started server")

	rootCmd.AddCommand(chapterCmd)
	rootCmd.AddCommand(episodeCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(configCmd)
}

// ensureServer checks if server is running and starts it if needed (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := newLauncher(serverURL, serverBin, serverConfig).ensure(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
