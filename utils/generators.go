package utils

import (
	"math/rand"
	"time"
)

// GenerateReceiptNumber generates a random numeric receipt number
func GenerateReceiptNumber() string {
	return generateRandomString(ReceiptCharset, ReceiptLength)
}

// generateRandomString generates a random string with given charset and length
func generateRandomString(charset string, length int) string {
	rand.Seed(time.Now().UnixNano())

	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
