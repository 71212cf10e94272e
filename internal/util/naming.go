package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var identifierRegexp = regexp.MustCompile("[^A-Za-z0-9_-]+")

// PascalCase converts a dash delimited name into PascalCase, e.g. "getting-started" -> "GettingStarted".
func PascalCase(name string) string {
	return mapWords(name, "", func(word string) string {
		r, size := utf8.DecodeRuneInString(word)
		return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	})
}

// KebabCase lowercases every dash delimited word, e.g. "Getting-Started" -> "getting-started".
func KebabCase(name string) string {
	return mapWords(name, "-", strings.ToLower)
}

// Identifier replaces every run of characters that cannot appear in a TypeScript
// identifier with a dash, so the result can be fed to PascalCase.
func Identifier(name string) string {
	return strings.Trim(identifierRegexp.ReplaceAllString(name, "-"), "-")
}

func mapWords(name, sep string, fn func(string) string) string {
	words := strings.Split(name, "-")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, fn(w))
	}
	return strings.Join(out, sep)
}
