package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(recordMatchCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(importCSVCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(metricsCmd)

	addPlayerCmd.Flags().StringVar(&playerName, "name", "", "Player name")
	addPlayerCmd.Flags().StringVar(&playerEmail, "email", "", "Player email")
	_ = addPlayerCmd.MarkFlagRequired("name")

	recordMatchCmd.Flags().StringVar(&matchPlayer1, "player1", "", "First player ID")
	recordMatchCmd.Flags().StringVar(&matchPlayer2, "player2", "", "Second player ID")
	recordMatchCmd.Flags().StringVar(&matchResult, "result", "", "Result: player1, player2 or draw")
	recordMatchCmd.Flags().StringVar(&matchDate, "date", "", "Match date (YYYY-MM-DD)")
	recordMatchCmd.Flags().StringVar(&matchNotes, "notes", "", "Optional notes")
	_ = recordMatchCmd.MarkFlagRequired("player1")
	_ = recordMatchCmd.MarkFlagRequired("player2")
	_ = recordMatchCmd.MarkFlagRequired("result")
	_ = recordMatchCmd.MarkFlagRequired("date")
}

var (
	playerName   string
	playerEmail  string
	matchPlayer1 string
	matchPlayer2 string
	matchResult  string
	matchDate    string
	matchNotes   string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player",
	Short: "Register a new player",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"name":%q,"email":%q}`, playerName, playerEmail)
		return performPostRequest("/players", "application/json", strings.NewReader(body))
	},
}

var recordMatchCmd = &cobra.Command{
	Use:   "record-match",
	Short: "Record a match between two players",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"player1Id":%q,"player2Id":%q,"result":%q,"date":%q,"notes":%q}`,
			matchPlayer1, matchPlayer2, matchResult, matchDate, matchNotes)
		return performPostRequest("/matches", "application/json", strings.NewReader(body))
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the current ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ranking")
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show tournament report statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/report")
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a full JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/export/backup")
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Restore the store from a JSON backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer f.Close()
		return performPostRequest("/import/backup", "application/json", f)
	},
}

var importCSVCmd = &cobra.Command{
	Use:   "import-csv [file]",
	Short: "Import players from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return performPostRequest("/import/players.csv", "text/csv", f)
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify-leaderboard",
	Short: "Post the current ranking to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/notify/leaderboard", "application/json", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, contentType string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, contentType, body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
