package directory

import "strings"

// Entry maps a registrable domain to the company's display name.
type Entry struct {
	Domain  string
	Company string
}

// Directory is the static domain-to-company table plus the set of source
// domains (news, social and video sites that are never competitors
// themselves). It is built once at startup and never mutated afterwards.
type Directory struct {
	entries    []Entry
	byDomain   map[string]string
	sources    map[string]struct{}
	sourceList []string
}

// New builds a directory from ordered company entries and source domains.
// Entry order is significant: text inference scans companies in this order
// and the first mention wins.
func New(entries []Entry, sources []string) *Directory {
	d := &Directory{
		byDomain: make(map[string]string, len(entries)),
		sources:  make(map[string]struct{}, len(sources)),
	}
	for _, e := range entries {
		dom := strings.ToLower(strings.TrimSpace(e.Domain))
		if dom == "" || e.Company == "" {
			continue
		}
		if _, ok := d.byDomain[dom]; ok {
			continue
		}
		d.byDomain[dom] = e.Company
		d.entries = append(d.entries, Entry{Domain: dom, Company: e.Company})
	}
	for _, s := range sources {
		src := strings.ToLower(strings.TrimSpace(s))
		if src == "" {
			continue
		}
		if _, ok := d.sources[src]; ok {
			continue
		}
		d.sources[src] = struct{}{}
		d.sourceList = append(d.sourceList, src)
	}
	return d
}

// CompanyForDomain returns the display name mapped to an exact domain.
func (d *Directory) CompanyForDomain(domain string) (string, bool) {
	name, ok := d.byDomain[domain]
	return name, ok
}

// IsSource reports whether the domain is a known news/social source,
// matched exactly or as a subdomain (blog.x.com matches x.com).
func (d *Directory) IsSource(domain string) bool {
	if _, ok := d.sources[domain]; ok {
		return true
	}
	for _, src := range d.sourceList {
		if strings.HasSuffix(domain, "."+src) {
			return true
		}
	}
	return false
}

// Entries returns the ordered company table for text inference.
func (d *Directory) Entries() []Entry {
	return d.entries
}

// Len reports the number of company entries.
func (d *Directory) Len() int {
	return len(d.entries)
}
