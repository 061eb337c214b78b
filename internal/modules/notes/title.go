package notes

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// refineFailedSuffix marks a fallback title built from the first input title.
const refineFailedSuffix = " (Refined Title Failed)"

// ErrEmptyTitle is returned when refinement leaves nothing and there is no
// input title to fall back on.
var ErrEmptyTitle = errors.New("generated title is empty")

// questionPrefixes are checked in order; only the first match is removed.
var questionPrefixes = []string{
	"how do you sum up",
	"what is",
	"can you summarize",
	"what are",
	"how",
}

// RefineTitle turns a raw model reply into a presentable title: it drops
// one leading question phrase, trims, and uppercases the first character.
// Trailing punctuation is kept as is.
func RefineTitle(raw string, titles []string) (string, error) {
	title := strings.TrimSpace(raw)
	title = stripQuestionPrefix(title)
	title = strings.TrimSpace(title)
	title = upperFirst(title)

	if title != "" {
		return title, nil
	}
	if len(titles) > 0 {
		return titles[0] + refineFailedSuffix, nil
	}
	return "", ErrEmptyTitle
}

// stripQuestionPrefix removes the first matching prefix, compared without
// case, by cutting the same number of characters from the original text.
func stripQuestionPrefix(s string) string {
	runes := []rune(s)
	for _, prefix := range questionPrefixes {
		n := utf8.RuneCountInString(prefix)
		if len(runes) < n {
			continue
		}
		if strings.EqualFold(string(runes[:n]), prefix) {
			return string(runes[n:])
		}
	}
	return s
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
