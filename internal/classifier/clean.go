package classifier

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`http\S+|www\S+`)
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw text before vectorization: lowercase, URLs removed,
// punctuation stripped, whitespace collapsed. The models were trained on
// text cleaned exactly this way.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = punctRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
