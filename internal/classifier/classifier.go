// Package classifier holds the mock per-comment classifier. It exists to
// illustrate the output schema of the production classifier, which analyzes
// each comment with an LLM and is not part of this repository. The values
// produced here come from simple keyword heuristics plus a VADER tiebreak
// and should not be read as real analysis.
package classifier

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/degenindex/ingest-demo/internal/models"
)

// Common WSB tickers scanned for by the mock. The production extractor is
// considerably more sophisticated and private.
var commonTickers = []string{"SPY", "QQQ", "NVDA", "TSLA", "AAPL", "AMD", "AMZN", "META", "GOOGL", "MSFT"}

var (
	bullishWords    = []string{"moon", "calls", "buy", "long", "rocket", "tendies", "print"}
	bearishWords    = []string{"puts", "short", "drill", "crash", "dump", "rug"}
	tradeIndicators = []string{"bought", "buying", "sold", "selling", "holding", "position", "calls", "puts"}
	memeIndicators  = []string{"lmao", "lol", "ape", "smooth brain", "wife's boyfriend", "wendy's"}
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// MockClassify returns a deterministic classification record for one comment
// body. Running it twice over the same body yields identical records.
func MockClassify(body string) models.ClassificationRecord {
	lower := strings.ToLower(body)
	upper := strings.ToUpper(body)

	tickers := []string{}
	for _, t := range commonTickers {
		if strings.Contains(upper, t) {
			tickers = append(tickers, t)
		}
	}

	bullish := countHits(lower, bullishWords)
	bearish := countHits(lower, bearishWords)

	direction := models.DirectionNeutral
	switch {
	case bullish > bearish:
		direction = models.DirectionBullish
	case bearish > bullish:
		direction = models.DirectionBearish
	case bullish > 0:
		direction = models.DirectionMixed
	}

	isTrade := countHits(lower, tradeIndicators) > 0
	memeCount := countHits(lower, memeIndicators)

	return models.ClassificationRecord{
		IsTradePlan:  isTrade,
		IsMeme:       memeCount >= 2,
		IsCommentary: !isTrade || len(tickers) > 0,
		Tickers:      tickers,
		PrimaryMood:  primaryMood(body, direction, bullish+bearish, memeCount),
		TopicType:    topicType(tickers),
		Sentiment: models.Sentiment{
			TradeDirection:      direction,
			SentimentConfidence: clamp(bullish+bearish+3, 1, 10),
			IsSarcastic:         strings.Contains(body, "/s") || memeCount >= 2,
		},
		DegenScore: min(10, 3+memeCount+boolToInt(isTrade)*2),
		MemeScore:  min(10, memeCount*3),
	}
}

// primaryMood picks the dominant tone. Keyword signals win; with none, the
// VADER compound score of the flattened body breaks the tie.
func primaryMood(body, direction string, hits, memeCount int) string {
	if memeCount >= 2 {
		return "euphoria"
	}
	if hits > 0 {
		switch direction {
		case models.DirectionBullish:
			return "euphoria"
		case models.DirectionBearish:
			return "fear"
		default:
			return "confusion"
		}
	}

	score := analyzer.PolarityScores(plainText(body)).Compound
	switch {
	case score >= 0.2:
		return "smug"
	case score <= -0.2:
		return "despair"
	default:
		return "neutral"
	}
}

func topicType(tickers []string) string {
	switch {
	case len(tickers) == 1:
		return models.TopicSingleStock
	case len(tickers) > 1:
		return models.TopicIndexMacro
	default:
		return models.TopicOther
	}
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// plainText flattens Reddit markdown for VADER: link labels are kept, bare
// URLs dropped, rendered tags stripped, whitespace collapsed.
func plainText(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	input = urlPattern.ReplaceAllString(input, "")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := htmlTagPattern.ReplaceAllString(string(rendered), " ")

	return strings.Join(strings.Fields(stripped), " ")
}

func countHits(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
