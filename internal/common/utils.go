// Package common holds small URL helpers shared by the CLI commands.
package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// markdownLinkPattern extracts the target from "[text](url)".
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste
// issues: surrounding whitespace, trailing punctuation and markdown link
// syntax.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ValidateSourceURL sanitizes a user-supplied source URL and rejects
// anything that is not a plausible http(s) URL.
func ValidateSourceURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", fmt.Errorf("empty URL")
	}
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("URL %q contains spaces (encode them as %%20)", rawURL)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL %q must use http or https", rawURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL %q has no host", rawURL)
	}
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return "", fmt.Errorf("URL %q has a malformed host", rawURL)
	}

	return cleaned, nil
}
