package md2rich

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccenter strips combining marks so accented headings slug cleanly
// ("Résumé" -> "resume" rather than "r-sum-").
var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// emphasisMarkers are stripped from heading text before slugging.
var emphasisMarkers = strings.NewReplacer("*", "", "_", "", "~", "", "`", "", "=", "")

// Slugify derives a URL/anchor-safe identifier from heading text:
// lowercase, non-alphanumeric runs collapsed to single hyphens,
// leading/trailing hyphens stripped.
func Slugify(text string) string {
	text = emphasisMarkers.Replace(text)
	if folded, _, err := transform.String(deaccenter, text); err == nil {
		text = folded
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
