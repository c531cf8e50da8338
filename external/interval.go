// Package external
package external

import (
	"time"
)

type sampling struct {
	interval time.Duration
	limit    int
}

// samplingFor picks candle granularity for a requested day window. Shorter
// windows use finer candles; limit never exceeds the provider's maximum
// sample count.
func samplingFor(days, maxSamples int) sampling {
	var s sampling
	switch {
	case days <= 1:
		s = sampling{interval: 5 * time.Minute, limit: 288}
	case days <= 7:
		s = sampling{interval: time.Hour, limit: 168}
	case days <= 30:
		s = sampling{interval: 4 * time.Hour, limit: 180}
	default:
		s = sampling{interval: 24 * time.Hour, limit: 365}
	}
	if s.limit > maxSamples {
		s.limit = maxSamples
	}
	return s
}
