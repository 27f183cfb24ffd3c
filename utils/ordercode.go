package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode produces a human-readable order code such as
// ORD483920XK7. The trailing random suffix keeps codes unique when two
// orders are created within the same millisecond.
func GenerateOrderCode() string {
	ts := time.Now().UnixMilli()
	timestamp := fmt.Sprintf("%d", ts)
	if len(timestamp) > 6 {
		timestamp = timestamp[len(timestamp)-6:]
	}

	var suffix strings.Builder
	for i := 0; i < 3; i++ {
		suffix.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}

	return "ORD" + timestamp + suffix.String()
}
