// Package types
package types

import (
	"errors"
)

var ErrNoData = errors.New("provider has no data")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExist = errors.New("token exist")
var ErrInvalidDayRange = errors.New("invalid day range")
var ErrInvalidToken = errors.New("invalid token")
