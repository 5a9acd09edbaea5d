// Package markdown converts crawled HTML into cleaned markdown suitable for
// LLM prompts. Boilerplate elements are stripped with CSS selectors before
// conversion; image and javascript: links are removed afterwards so prompts
// carry only navigable article links.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
)

// Options controls which elements are removed before conversion, in addition
// to the default boilerplate set.
type Options struct {
	ExcludeTags      []string
	ExcludeSelectors []string
}

var defaultExcludedTags = []string{
	"script", "style", "noscript", "iframe", "svg", "form",
	"nav", "footer", "aside", "button",
}

// CleanAndFormat strips excluded elements from html and converts the result
// to markdown. Relative links are resolved against baseURL.
func CleanAndFormat(html, baseURL string, opts Options) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, tag := range defaultExcludedTags {
		doc.Find(tag).Remove()
	}
	for _, tag := range opts.ExcludeTags {
		doc.Find(tag).Remove()
	}
	for _, sel := range opts.ExcludeSelectors {
		doc.Find(sel).Remove()
	}

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize cleaned HTML: %w", err)
	}

	var convertOpts []converter.ConvertOptionFunc
	if baseURL != "" {
		convertOpts = append(convertOpts, converter.WithDomain(baseURL))
	}
	md, err := htmltomarkdown.ConvertString(cleaned, convertOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return strings.TrimSpace(md), nil
}

var (
	imageLinkRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	jsLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\(\s*(?i:javascript):[^)]*\)`)
	blankLineRe = regexp.MustCompile(`\n{3,}`)
)

// StripImageLinks removes markdown image embeds.
func StripImageLinks(md string) string {
	md = imageLinkRe.ReplaceAllString(md, "")
	return blankLineRe.ReplaceAllString(md, "\n\n")
}

// StripJavaScriptLinks replaces javascript: pseudo-links with their text.
func StripJavaScriptLinks(md string) string {
	return jsLinkRe.ReplaceAllString(md, "$1")
}
