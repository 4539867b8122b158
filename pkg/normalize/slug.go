package normalize

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// tokenLength random chars give 36^5 (~60M) variants, two articles with the same title
// get the same slug with probability ~1.7e-8. Slug column is unique, so a collision fails
// the insert of the second article for this run only.
const (
	tokenLength   = 5
	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// MakeSlug makes url-safe slug from the title with a random suffix, i.e. "gia-vang-tang-k3x9a".
// Unicode is transliterated, everything except a-z and 0-9 collapses to a single dash.
func MakeSlug(title string) string {
	base := strings.Trim(nonAlnumRe.ReplaceAllString(slug.Make(title), "-"), "-")
	token := randomToken(tokenLength)
	if base == "" {
		return token
	}
	return base + "-" + token
}

func randomToken(n int) string {
	limit := big.NewInt(int64(len(tokenAlphabet)))
	res := make([]byte, n)
	for i := range res {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			res[i] = tokenAlphabet[mrand.IntN(len(tokenAlphabet))] //nolint:gosec // fallback only
			continue
		}
		res[i] = tokenAlphabet[idx.Int64()]
	}
	return string(res)
}
