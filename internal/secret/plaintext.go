package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultLength gives ~190 bits of entropy with Chars.
	DefaultLength = 32

	// maxBufLen caps the temporary buffer for random bytes.
	maxBufLen = 2048
	// minRegenBufLen is the smallest refill after the first read fell short.
	minRegenBufLen = 16

	maxByteValue = 255
	byteRange    = 256
)

// Chars is the alphabet of generated plaintexts.
var Chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// ErrInvalidLength is returned for a non-positive plaintext length.
var ErrInvalidLength = errors.New("secret length must be positive")

// NewPlaintext returns a random plaintext of length characters drawn from Chars.
func NewPlaintext(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	out, err := randomChars(length, Chars)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// estimatedBufLen returns the number of random bytes to request when byte
// values above maxByte are rejected.
func estimatedBufLen(need, maxByte int) int {
	return int(math.Ceil(float64(need) * (maxByteValue / float64(maxByte))))
}

// randomChars draws length characters from chars using rejection sampling so
// that every character is equally likely.
func randomChars(length int, chars []byte) ([]byte, error) {
	clen := len(chars)
	if clen < 2 || clen > byteRange {
		return nil, fmt.Errorf("secret: charset length %d out of range", clen)
	}

	maxRb := maxByteValue - (byteRange % clen)
	bufLen := min(max(estimatedBufLen(length, maxRb), length), maxBufLen)

	buf := make([]byte, bufLen)
	out := make([]byte, length)

	var i int
	for {
		if _, err := rand.Read(buf[:bufLen]); err != nil {
			return nil, fmt.Errorf("secret: reading random bytes: %w", err)
		}

		for _, rb := range buf[:bufLen] {
			c := int(rb)
			if c > maxRb {
				continue
			}
			out[i] = chars[c%clen]
			i++
			if i == length {
				return out, nil
			}
		}

		bufLen = estimatedBufLen(length-i, maxRb)
		if bufLen < minRegenBufLen && minRegenBufLen < cap(buf) {
			bufLen = minRegenBufLen
		}
		bufLen = min(bufLen, maxBufLen, cap(buf))
	}
}
