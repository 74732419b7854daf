// Package resolve decides which company a shared link is about.
package resolve

import (
	"strings"
	"unicode"

	"CompetitionBot/internal/directory"
	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/extract"
)

// Resolver maps (url, message text) to a company. Links from source
// domains (news, social) carry no signal about the subject in the URL
// itself, so the resolver falls back to scanning the surrounding text;
// anything failing both paths is tagged unknown rather than guessed.
type Resolver struct {
	dir *directory.Directory
}

// New wires a resolver to an immutable company directory.
func New(dir *directory.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Company resolves the competitor behind a link.
//
// Source-domain links are resolved from the message text; the first
// directory company mentioned wins. With no mention the result is an
// unresolved marker carrying the source site's display name. All other
// links resolve directly from the domain.
func (r *Resolver) Company(rawURL, messageText string) (domain.Company, domain.Provenance) {
	host := extract.Domain(rawURL)

	if r.dir.IsSource(host) {
		if name, ok := r.companyFromText(messageText); ok {
			return domain.ResolvedCompany(name), domain.ProvenanceInferred
		}
		return domain.UnresolvedCompany(r.displayName(host)), domain.ProvenanceUnknown
	}

	return domain.ResolvedCompany(r.displayName(host)), domain.ProvenanceDirect
}

// companyFromText scans the message for any directory company mentioned
// as a case-insensitive substring, in directory order.
func (r *Resolver) companyFromText(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, e := range r.dir.Entries() {
		if strings.Contains(lower, strings.ToLower(e.Company)) {
			return e.Company, true
		}
	}
	return "", false
}

// displayName converts a domain to a company display name: exact
// directory match, then the last two labels (blog.stripe.com resolves as
// stripe.com), then a title-cased first label as a best guess.
func (r *Resolver) displayName(host string) string {
	if name, ok := r.dir.CompanyForDomain(host); ok {
		return name
	}

	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		base := strings.Join(parts[len(parts)-2:], ".")
		if name, ok := r.dir.CompanyForDomain(base); ok {
			return name
		}
	}

	if parts[0] == "" {
		// Unparseable URL degraded to an empty domain; the record still
		// needs a non-empty competitor.
		return domain.CompetitorUnknown
	}
	return titleCase(parts[0])
}

// titleCase capitalizes the first letter of every letter run and lowers
// the rest, e.g. "techcrunch" -> "Techcrunch", "m-pesa" -> "M-Pesa".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
