package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const slugSuffixLen = 8

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Slugify derives a URL-safe slug from a title: lowercase words joined by
// hyphens plus a fixed-length random alphanumeric suffix, so two posts with
// the same title never collide.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return randomSuffix(slugSuffixLen)
	}
	return slug + "-" + randomSuffix(slugSuffixLen)
}

func randomSuffix(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken; fall back to 'a'
			out[i] = 'a'
			continue
		}
		out[i] = slugAlphabet[idx.Int64()]
	}
	return string(out)
}
