package note

import (
	"strings"
	"unicode"
)

const (
	// DefaultTitleLength is the longest derived title, in runes, before the
	// ellipsis.
	DefaultTitleLength = 50
	// TitleWords is how many words of the content a derived title uses.
	TitleWords = 10
	Ellipsis   = "..."
)

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_'
}

// TitleFromContent derives a title from the first words of content. Anything
// that is neither a word character nor whitespace is dropped, the first
// TitleWords words are joined with single spaces, and a result longer than
// maxLength runes is cut back to the last word boundary that fits and marked
// with an ellipsis. A single word longer than maxLength is cut at maxLength.
func TitleFromContent(content st, maxLength no) (title st) {
	if maxLength <= 0 {
		maxLength = DefaultTitleLength
	}
	clean := strings.Map(func(r rune) rune {
		if isWord(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, content)
	words := strings.Fields(clean)
	if len(words) > TitleWords {
		words = words[:TitleWords]
	}
	title = strings.Join(words, " ")
	runes := []rune(title)
	if len(runes) <= maxLength {
		return
	}
	cut := runes[:maxLength]
	if runes[maxLength] != ' ' {
		for i := len(cut) - 1; i > 0; i-- {
			if cut[i] == ' ' {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimSpace(st(cut)) + Ellipsis
}
