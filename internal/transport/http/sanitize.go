package http

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var strictPolicy = bluemonday.StrictPolicy()

// stripMarkup removes HTML tags pasted along with the news text (browser selections
// often carry them). Text that holds no HTML elements is returned untouched, so a
// stray "a<b" or a literal "&amp;" in plain prose survives as typed.
func stripMarkup(s string) string {
	if !hasMarkup(s) {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// hasMarkup reports whether s contains a known HTML element that is either
// self-closing or closed by a matching end tag.
func hasMarkup(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}
	open := map[atom.Atom]bool{}
	z := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return false
		case xhtml.SelfClosingTagToken:
			if tok := z.Token(); tok.DataAtom != 0 {
				return true
			}
		case xhtml.StartTagToken:
			if tok := z.Token(); tok.DataAtom != 0 {
				open[tok.DataAtom] = true
			}
		case xhtml.EndTagToken:
			if tok := z.Token(); tok.DataAtom != 0 && open[tok.DataAtom] {
				return true
			}
		}
	}
}
