package render

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tagRegexp         = regexp.MustCompile(`<[^>]*>`)
	spacesRegexp      = regexp.MustCompile(` +`)
	spaceSymbolRegexp = regexp.MustCompile(`\s[^a-zA-Z0-9]`)
	separatorRegexp   = regexp.MustCompile(`[\\/.,\s(]`)
	invalidRegexp     = regexp.MustCompile(`[^a-zA-Z0-9-]`)

	fragmentReplacer = strings.NewReplacer(", ", ",", " (", "(", " )", ")", "()", "")
)

// Fragment derives the anchor id of a heading, e.g. "Configuração (avançada)" -> "configuracao-avancada".
func Fragment(title string) string {
	s := tagRegexp.ReplaceAllString(title, "")
	s = fragmentReplacer.Replace(s)
	s = spacesRegexp.ReplaceAllString(s, " ")
	s = spaceSymbolRegexp.ReplaceAllString(s, "")
	s = separatorRegexp.ReplaceAllString(s, "-")
	s = stripMarks(s)
	s = invalidRegexp.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
