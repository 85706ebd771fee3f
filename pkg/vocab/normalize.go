// Package vocab manages the words a user is learning: normalization,
// submission, deletion, listing and the cards sent back to the user.
package vocab

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxWordRunes = 64

var (
	ErrEmptyWord   = errors.New("word is empty")
	ErrWordTooLong = errors.New("word is too long")
	ErrNotFound    = errors.New("word not found")
)

// Normalize trims the input, collapses inner whitespace and lower-cases it.
// The result is the key words are deduplicated and deleted by.
func Normalize(input string) (string, error) {
	word := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if word == "" {
		return "", ErrEmptyWord
	}
	if utf8.RuneCountInString(word) > MaxWordRunes {
		return "", ErrWordTooLong
	}
	return word, nil
}
