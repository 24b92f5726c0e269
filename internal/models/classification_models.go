package models

// ClassificationRecord is the schema the production classifier emits per
// comment. The demo fills it with mock values; the shape is the contract.
type ClassificationRecord struct {
	IsTradePlan  bool      `json:"is_trade_plan"`
	IsMeme       bool      `json:"is_meme"`
	IsCommentary bool      `json:"is_commentary"`
	Tickers      []string  `json:"tickers"`
	PrimaryMood  string    `json:"primary_mood"`
	TopicType    string    `json:"topic_type"`
	Sentiment    Sentiment `json:"sentiment"`
	DegenScore   int       `json:"degen_score"`
	MemeScore    int       `json:"meme_score"`
}

type Sentiment struct {
	TradeDirection      string `json:"trade_direction"`
	SentimentConfidence int    `json:"sentiment_confidence"`
	IsSarcastic         bool   `json:"is_sarcastic"`
}

// Trade directions emitted by the classifier.
const (
	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
	DirectionNeutral = "neutral"
	DirectionMixed   = "mixed"
)

// Topic types emitted by the classifier.
const (
	TopicSingleStock = "single_stock"
	TopicIndexMacro  = "index_macro"
	TopicOther       = "other"
)
