package providers

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	spacesRE     = regexp.MustCompile(`[ \t\f\v]{2,}`)
	attributedRE = regexp.MustCompile(`(?i)\s*[\[(](written by|source:)[^\])]*[\])]\s*$`)
)

// breaks are the elements that start a new line in plain text.
var breaks = map[atom.Atom]bool{
	atom.P:   true,
	atom.Div: true,
	atom.Br:  true,
	atom.Li:  true,
	atom.H1:  true,
	atom.H2:  true,
	atom.H3:  true,
	atom.H4:  true,
}

// CleanText turns a provider blurb into plain text. Block elements become
// line breaks, other markup is dropped, entities are decoded and a trailing
// attribution like "[Written by MAL Rewrite]" is removed.
func CleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(strings.ReplaceAll(s, "\r\n", "\n")))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			b.WriteString(tok.Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if breaks[tok.DataAtom] && (tt != html.StartTagToken || tok.DataAtom == atom.Br) {
				b.WriteString("\n")
			}
		}
	}

	text := strings.ReplaceAll(b.String(), "\u00a0", " ")
	text = attributedRE.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(spacesRE.ReplaceAllString(line, " "))
		if line == "" {
			// Keep paragraph breaks, but only one.
			blank = len(kept) > 0
			continue
		}
		if blank {
			kept = append(kept, "")
			blank = false
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// OptionalText is CleanText that returns nil for an empty result.
func OptionalText(s string) *string {
	return OptionalString(CleanText(s))
}
