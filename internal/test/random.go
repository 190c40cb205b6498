package test

import (
	"math/rand"
	"sync"
	"time"
)

const digits = "0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomDigits returns a pseudo-random string of n decimal digits.
func RandomDigits(n int) string {
	if n <= 0 {
		n = 1
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = digits[randomIntn(len(digits))]
	}
	return string(buf)
}

// RandomProductCode returns a well-formed 11 digit product code.
func RandomProductCode() string {
	return RandomDigits(11)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
