package utils

import (
	"fmt"
)

// HashIP reduces a client address to a fixed-width hex token via a rolling
// hash (h = h*31 + byte, 32-bit wraparound). Anonymization only: comments
// never store the raw address, and the token is used solely to bucket
// rate-limit counts. Not a cryptographic hash.
func HashIP(ip string) string {
	var h uint32
	for i := 0; i < len(ip); i++ {
		h = h*31 + uint32(ip[i])
	}
	return fmt.Sprintf("%08x", h)
}
