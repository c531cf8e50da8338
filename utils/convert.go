// Package utils
package utils

import (
	"strconv"
)

// StrToFloat64 parses upstream numeric strings, 0 on anything malformed.
func StrToFloat64(data string) float64 {
	f, _ := strconv.ParseFloat(data, 64)
	return f
}
