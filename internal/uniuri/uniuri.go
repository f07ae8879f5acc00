package uniuri

import (
	"crypto/rand"
)

const (
	// TokenLen gives ~190 bits of entropy, used for anti-forgery tokens.
	TokenLen = 32
	// SessionLen gives ~380 bits of entropy, used for session ids.
	SessionLen = 64

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// bytes above maxByte are rejected so every symbol is equally likely.
	maxByte = 255 - (256 % len(alphabet))
)

// Token returns a new anti-forgery token.
func Token() string {
	return New(TokenLen)
}

// SessionID returns a new session id.
func SessionID() string {
	return New(SessionLen)
}

// New returns a random alphanumeric string of length n.
// It panics if the system random source fails.
func New(n int) string {
	if n <= 0 {
		return ""
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4) //nolint:mnd

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) > maxByte {
				continue
			}

			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out)
}
