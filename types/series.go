// Package types
package types

const (
	SourceGeckoTerminal = "geckoterminal"
	SourceDexPaprika    = "dexpaprika"
	SourceDexScreener   = "dexscreener"
	SourceNone          = "none"
)

// MarketCapPoint is one sample of a market-cap series. Timestamp is in
// milliseconds since epoch. Within a series timestamps are non-decreasing;
// duplicates are kept as-is.
type MarketCapPoint struct {
	Timestamp int64   `json:"timestamp" bson:"timestamp"`
	Value     float64 `json:"value" bson:"value"`
}

// MarketCapSeries is the canonical result shape every provider normalizes
// into. It is constructed fresh per request and never mutated after return.
type MarketCapSeries struct {
	Token `bson:",inline"`

	Points           []MarketCapPoint `json:"points" bson:"points"`
	CurrentMarketCap float64          `json:"currentMarketCap" bson:"currentMarketCap"`
	CurrentPrice     float64          `json:"currentPrice" bson:"currentPrice"`
	Source           string           `json:"source" bson:"source"`
	LastUpdated      int64            `json:"lastUpdated" bson:"lastUpdated"`
	Error            bool             `json:"error,omitempty" bson:"error,omitempty"`
}
