package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/degenindex/ingest-demo/config"
	"github.com/degenindex/ingest-demo/internal/clients"
	"github.com/degenindex/ingest-demo/internal/demo"
	"github.com/degenindex/ingest-demo/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	submissionID := flag.String("submission-id", "", "Reddit submission ID (the alphanumeric string from the URL)")
	limit := flag.Int("limit", 5, "Number of top-level comments to fetch")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if *submissionID == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --submission-id is required")
		flag.Usage()
		return 1
	}

	clientID := os.Getenv("REDDIT_CLIENT_ID")
	clientSecret := os.Getenv("REDDIT_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		fmt.Fprintln(os.Stderr, "ERROR: Missing Reddit API credentials.")
		fmt.Fprintln(os.Stderr, "Please set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET environment variables.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "To get credentials, create an app at: https://www.reddit.com/prefs/apps")
		return 1
	}

	client, err := clients.NewRedditClient(clientID, clientSecret, os.Getenv("REDDIT_USER_AGENT"))
	if err != nil {
		slog.Error("Failed to build Reddit client", slog.String("error", err.Error()))
		return 1
	}

	if err := demo.Run(context.Background(), os.Stdout, client, *submissionID, *limit); err != nil {
		slog.Error("Demo run failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
