// Package demo drives the two demo stages: fetch a bounded set of top-level
// comments from one submission, then print a mock classification per comment
// followed by a run summary.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/degenindex/ingest-demo/internal/classifier"
	"github.com/degenindex/ingest-demo/internal/models"
)

// Comment bodies are truncated at this many runes in the printed report.
const maxBodyRunes = 300

// SubmissionFetcher is the read surface of the Reddit client used by the run.
type SubmissionFetcher interface {
	FetchSubmissionComments(ctx context.Context, submissionID string, limit int) (models.Submission, []models.Comment, error)
}

// Run executes the demo against one submission and writes the report to w.
// Any fetch error is returned before a single classification block is
// emitted.
func Run(ctx context.Context, w io.Writer, fetcher SubmissionFetcher, submissionID string, limit int) error {
	banner(w, "STAGE 1: INGESTION", "Fetching comments from Reddit...")

	sub, comments, err := fetcher.FetchSubmissionComments(ctx, submissionID, limit)
	if err != nil {
		return fmt.Errorf("[Demo] could not fetch submission %q: %w", submissionID, err)
	}

	fmt.Fprintf(w, "\nThread: %s\n", sub.Title)
	fmt.Fprintf(w, "URL: https://reddit.com%s\n", sub.Permalink)
	fmt.Fprintf(w, "Subreddit: r/%s\n", sub.Subreddit)
	fmt.Fprintf(w, "Upvotes: %d\n", sub.Upvotes)
	fmt.Fprintf(w, "\nFetched %d top-level comments\n", len(comments))

	banner(w, "STAGE 2: CLASSIFICATION (mocked)", "Analyzing sentiment, tickers, and mood...")

	records := make([]models.ClassificationRecord, 0, len(comments))
	for i, comment := range comments {
		record := classifier.MockClassify(comment.Text)
		records = append(records, record)
		if err := printClassification(w, i+1, comment, record); err != nil {
			return err
		}
	}

	printSummary(w, records)
	return nil
}

func printClassification(w io.Writer, index int, comment models.Comment, record models.ClassificationRecord) error {
	author := comment.Author
	if author == "" {
		author = "[deleted]"
	}

	fmt.Fprintf(w, "\n%s\n", divider("="))
	fmt.Fprintf(w, "Comment #%d\n", index)
	fmt.Fprintf(w, "%s\n", divider("="))
	fmt.Fprintf(w, "Author: u/%s\n", author)
	fmt.Fprintf(w, "Upvotes: %d\n", comment.Upvotes)
	fmt.Fprintf(w, "Permalink: https://reddit.com%s\n", comment.Permalink)
	fmt.Fprintf(w, "\nText (truncated):\n")
	fmt.Fprintf(w, "  \"%s\"\n", truncate(comment.Text, maxBodyRunes))
	fmt.Fprintf(w, "\nClassification:\n")

	pretty, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("[Demo] failed to render classification: %w", err)
	}
	fmt.Fprintf(w, "%s\n", pretty)
	return nil
}

func printSummary(w io.Writer, records []models.ClassificationRecord) {
	banner(w, "SUMMARY")

	seen := make(map[string]struct{})
	var unique []string
	var bullish, bearish, degenTotal int
	for _, r := range records {
		for _, t := range r.Tickers {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				unique = append(unique, t)
			}
		}
		switch r.Sentiment.TradeDirection {
		case models.DirectionBullish:
			bullish++
		case models.DirectionBearish:
			bearish++
		}
		degenTotal += r.DegenScore
	}
	neutral := len(records) - bullish - bearish

	fmt.Fprintf(w, "\nComments analyzed: %d\n", len(records))
	if len(unique) == 0 {
		fmt.Fprintf(w, "Unique tickers mentioned: None\n")
	} else {
		fmt.Fprintf(w, "Unique tickers mentioned: %s\n", strings.Join(unique, ", "))
	}
	fmt.Fprintf(w, "Sentiment breakdown: %d bullish, %d bearish, %d neutral\n", bullish, bearish, neutral)
	if len(records) > 0 {
		fmt.Fprintf(w, "Average degen score: %.1f/10\n", float64(degenTotal)/float64(len(records)))
	}

	fmt.Fprintf(w, "\n%s\n", divider("-"))
	fmt.Fprintf(w, "NOTE: This demo uses mock classification. In production,\n")
	fmt.Fprintf(w, "an LLM analyzes each comment for more accurate results.\n")
	fmt.Fprintf(w, "%s\n", divider("-"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func divider(ch string) string {
	return strings.Repeat(ch, 60)
}

func banner(w io.Writer, lines ...string) {
	fmt.Fprintf(w, "\n%s\n", divider("="))
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%s\n", divider("="))
}
