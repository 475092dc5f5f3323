package utils

import (
	"strconv"
)

// ParseID parses a route parameter as a positive integer id, returning 0
// when it is missing, non-numeric or not positive.
func ParseID(s string) uint {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return 0
	}
	return uint(i)
}
