package random

import (
	"errors"

	"github.com/gorilla/securecookie"
)

const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// bytes at or above this would favour the start of letters
const maxByte = 256 - 256%len(letters)

var ErrNoRandom = errors.New("random: could not read random bytes")

// String returns n characters picked uniformly from [0-9A-Za-z].
func String(n int) (string, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		bytes, err := Bytes(n - len(out))
		if err != nil {
			return "", err
		}
		out = appendLetters(out, bytes)
	}
	return string(out), nil
}

func appendLetters(dst, src []byte) []byte {
	for _, b := range src {
		if int(b) < maxByte {
			dst = append(dst, letters[int(b)%len(letters)])
		}
	}
	return dst
}

// Bytes returns n random bytes, suitable for use as a signing key.
func Bytes(n int) ([]byte, error) {
	bytes := securecookie.GenerateRandomKey(n)
	if bytes == nil {
		return nil, ErrNoRandom
	}
	return bytes, nil
}
