package search

import (
	"regexp"
	"strings"
)

// Terms shorter than this many bytes are matched literally only.
const minFuzzyLength = 3

var specialChars = regexp.MustCompile(`[^\pL\s\d]`)

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func exact(term string) string {
	return `+("` + escapeDoubleQuotes(term) + `") `
}

// BuildQuery turns what a visitor typed into the search box into a query
// expression for the search index. Every term is required; longer terms also
// match as prefix (special characters become single char wildcards) and
// fuzzily (special characters removed). Terms are separated by single spaces,
// so consecutive spaces yield an empty required term.
func BuildQuery(query string) string {
	if len(query) < minFuzzyLength {
		return exact(query)
	}
	var b strings.Builder
	for _, term := range strings.Split(query, " ") {
		if len(term) < minFuzzyLength {
			b.WriteString(exact(term))
			continue
		}
		b.WriteString(`+("`)
		b.WriteString(escapeDoubleQuotes(term))
		b.WriteString(`" OR "`)
		b.WriteString(specialChars.ReplaceAllString(term, "?"))
		b.WriteString(`*" OR "`)
		b.WriteString(specialChars.ReplaceAllString(term, ""))
		b.WriteString(`~") `)
	}
	return b.String()
}

// Terms splits a raw query into the terms a match is required for.
func Terms(query string) []string {
	return strings.Fields(query)
}
