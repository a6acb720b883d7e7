package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// NewOrderID generates an order identifier. The storefront client
// normally generates this before submission; the server falls back to
// this when the request arrives without one.
func NewOrderID() string {
	return uuid.NewString()
}

// NewLineItemID generates a line-item identifier with a readable prefix.
func NewLineItemID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("li_%d_%06d", timestamp, randomNum.Int64())
}
