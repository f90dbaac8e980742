// Package gtoken generates the verification token ("tk") expected by the
// web translation endpoint, and keeps the hourly rotating secret it is
// derived from.
//
// The token is a function of the secret and the request text only:
//
//	tk := gtoken.Generate("406398.2087938574", "test") // "833972.690890"
//
// Store wraps Generate with a lazily refreshed secret scraped from the
// service's landing page.
package gtoken

import (
	"strconv"
	"strings"
)

const (
	perBytePattern = "+-a^+6"
	finalPattern   = "+-3^+b+-f"
)

// Generate derives the token for text from secret (the "n.value" string).
// A secret without a '.' (including the startup value "0") contributes
// zero to both the base value and the bias. It never fails.
func Generate(secret, text string) string {
	var base, bias int64
	if head, tail, ok := strings.Cut(secret, "."); ok {
		base, _ = strconv.ParseInt(head, 10, 64)
		// only the second component matters, like a split(".")[1]
		if i := strings.IndexByte(tail, '.'); i >= 0 {
			tail = tail[:i]
		}
		bias, _ = strconv.ParseInt(tail, 10, 64)
	}

	acc := base
	for _, b := range LegacyUTF8(CodeUnits(text)) {
		acc += int64(b)
		acc = Mix(acc, perBytePattern)
	}
	acc = Mix(acc, finalPattern)
	acc ^= bias
	if acc < 0 {
		// Not a two's-complement mask; the endpoint expects exactly this.
		acc = (acc & 0x7FFFFFFF) + 0x80000000
	}
	acc %= 1_000_000

	return strconv.FormatInt(acc, 10) + "." + strconv.FormatInt(acc^base, 10)
}
