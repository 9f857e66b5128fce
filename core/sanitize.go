package core

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var richTextPolicy = newRichTextPolicy()

// newRichTextPolicy allows the small formatting subset used by product
// descriptions and recipe bodies. Links keep href and title and may be
// relative or use http, https and mailto.
func newRichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "strong", "em", "u", "h2", "h3", "ul", "ol", "li", "blockquote")
	policy.AllowAttrs("href", "title").OnElements("a")
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	return policy
}

// SanitizeRichText strips html down to the rich text policy. Every
// surviving link opens in a new tab with rel=noopener.
func SanitizeRichText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.TrimSpace(newTabLinks(richTextPolicy.Sanitize(input)))
}

// newTabLinks rewrites each <a> start tag in already sanitized html to carry
// target=_blank and rel=noopener. bluemonday only does this for links with a
// host, which leaves relative and mailto links out.
func newTabLinks(fragment string) string {
	if !strings.Contains(fragment, "<a") {
		return fragment
	}
	var out strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out.String()
		}
		raw := string(z.Raw())
		if tt != html.StartTagToken {
			out.WriteString(raw)
			continue
		}
		tok := z.Token()
		if tok.DataAtom != atom.A {
			out.WriteString(raw)
			continue
		}
		attrs := make([]html.Attribute, 0, len(tok.Attr)+2)
		for _, attr := range tok.Attr {
			if attr.Key != "target" && attr.Key != "rel" {
				attrs = append(attrs, attr)
			}
		}
		tok.Attr = append(attrs,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener"},
		)
		out.WriteString(tok.String())
	}
}
