// Package password generates temporary passwords for newly provisioned
// admin accounts. A generated password starts from a short recognizable
// prefix taken from the account email, is filled from a fixed charset using
// crypto/rand, and is then permuted in place.
package password

import (
	"crypto/rand"
	"fmt"
	"io"
)

// charset is every character a generated password may contain, beyond the
// alphanumeric prefix derived from the email.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"

// MinLength is the floor applied to every generated password.
const MinLength = 8

// maxPrefixLen caps how many characters of the email local part are used.
const maxPrefixLen = 2

// Generate returns a fresh temporary password of max(minLength, MinLength)
// characters. The first characters (at most two, alphanumeric) come from the
// local part of email; the rest are drawn from charset via crypto/rand.
// The final permutation draws its own random bytes; the selection buffer is
// never reused as a shuffle source, so the character distribution and the
// permutation stay independent.
func Generate(email string, minLength int) (string, error) {
	length := minLength
	if length < MinLength {
		length = MinLength
	}

	out := append(make([]byte, 0, length), prefixFrom(email)...)

	fill := make([]byte, length-len(out))
	if _, err := io.ReadFull(rand.Reader, fill); err != nil {
		return "", fmt.Errorf("password: read random bytes: %w", err)
	}
	for _, b := range fill {
		out = append(out, charset[int(b)%len(charset)])
	}

	if err := shuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

// prefixFrom extracts up to maxPrefixLen alphanumeric characters from the
// local part of email. Non-alphanumeric characters are skipped, so
// "j.doe@x.com" yields "jd".
func prefixFrom(email string) []byte {
	prefix := make([]byte, 0, maxPrefixLen)
	for i := 0; i < len(email) && email[i] != '@' && len(prefix) < maxPrefixLen; i++ {
		c := email[i]
		if isAlnum(c) {
			prefix = append(prefix, c)
		}
	}
	return prefix
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// shuffle is a Fisher-Yates permutation over p, one fresh random byte per
// swap index.
func shuffle(p []byte) error {
	rnd := make([]byte, len(p))
	if _, err := io.ReadFull(rand.Reader, rnd); err != nil {
		return fmt.Errorf("password: read shuffle bytes: %w", err)
	}
	for i := len(p) - 1; i > 0; i-- {
		j := int(rnd[i]) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return nil
}
