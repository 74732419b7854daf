// Package extract pulls candidate links out of raw Slack message text and
// normalizes them down to bare domains.
package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// Slack wraps links as <https://example.com|label> or <https://example.com>.
	bracketedURL = regexp.MustCompile(`<(https?://[^|>]+)(?:\|[^>]*)?>`)
	bareURL      = regexp.MustCompile(`https?://[^\s<>]+`)
)

// Trailing prose punctuation, not part of the link itself.
const trailingPunct = ".,;:!?)"

// URLs extracts every link from the message text, handling both Slack's
// bracketed markup and bare URLs. Results are deduplicated; a bracketed
// link is never also counted by the bare pattern. An empty result just
// means the message carried no links.
func URLs(text string) []string {
	seen := make(map[string]struct{})
	var urls []string
	add := func(raw string) {
		u := strings.TrimRight(raw, trailingPunct)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	// Consume bracketed links first, blanking them out so the bare-URL
	// scan cannot match the same span again.
	rest := bracketedURL.ReplaceAllStringFunc(text, func(m string) string {
		sub := bracketedURL.FindStringSubmatch(m)
		add(sub[1])
		return " "
	})

	for _, m := range bareURL.FindAllString(rest, -1) {
		add(m)
	}

	return urls
}

// Domain reduces a URL to its bare registrable host: lowercase, leading
// "www." stripped. A URL that cannot be parsed yields an empty string;
// later stages treat that as the unknown-company path, never as an error.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}
