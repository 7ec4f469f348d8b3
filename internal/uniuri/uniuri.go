package uniuri

import (
	"crypto/rand"
	"errors"
)

// TokenLen is the length of the random prefix of site image names.
const TokenLen = 11

// Base36 is the lowercase alphanumeric alphabet of object name tokens.
var Base36 = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// ErrCharset is returned when the alphabet cannot be sampled without bias.
var ErrCharset = errors.New("uniuri: charset must hold between 2 and 256 characters")

const (
	byteRange = 256
	// minBufLen is the smallest refill requested from rand.Read.
	minBufLen = 16
)

// Token returns a random base36 token of TokenLen characters.
func Token() string {
	s, err := NewLenChars(TokenLen, Base36)
	if err != nil {
		// Base36 is a valid charset, only the random source can fail here.
		panic(err)
	}

	return s
}

// NewLenChars returns a random string of length characters drawn from chars.
// Bytes that would bias the modulo are rejected and redrawn.
func NewLenChars(length int, chars []byte) (string, error) {
	clen := len(chars)
	if clen < 2 || clen > byteRange {
		return "", ErrCharset
	}
	if length <= 0 {
		return "", nil
	}

	maxRb := byteRange - 1 - (byteRange % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, max(length*2, minBufLen))

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}
			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
