// Package external
package external

import (
	"math"
	"sort"

	"github.com/tokenfolio/marketcap-backend/types"
)

// FallbackSupply approximates circulating supply when a provider exposes no
// FDV or market-cap signal at all. The figure is inherited from the original
// chart feed and has no documented justification; override it per deployment
// if a better estimate exists.
var FallbackSupply = 1e9

// Candle is one OHLCV sample. Timestamp is in milliseconds since epoch.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// impliedSupply derives a circulating-equivalent supply from a valuation
// (market cap or FDV) and its reference price. 0 means unknown.
func impliedSupply(valuation, refPrice float64) float64 {
	if refPrice > 0 && valuation > 0 {
		return valuation / refPrice
	}
	return 0
}

// deriveSeries converts OHLCV candles into market-cap points: close price
// times implied supply, or close times FallbackSupply when supply is unknown.
// Points with non-positive or non-finite values are dropped, the rest sorted
// ascending by timestamp. Every historical provider runs this same algorithm
// so series stay comparable across sources.
func deriveSeries(candles []Candle, refPrice, valuation float64) []types.MarketCapPoint {
	supply := impliedSupply(valuation, refPrice)
	points := make([]types.MarketCapPoint, 0, len(candles))
	for _, c := range candles {
		value := c.Close * FallbackSupply
		if supply > 0 {
			value = c.Close * supply
		}
		value = math.Round(value)
		if c.Timestamp <= 0 || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
			continue
		}
		points = append(points, types.MarketCapPoint{Timestamp: c.Timestamp, Value: value})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points
}
