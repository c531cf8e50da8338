// Package utils
package utils

import (
	"time"
)

// DaysAgo return ISO format: YYYY-MM-DD, n days before now
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

// NowMillis return current time in milliseconds since epoch
func NowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
