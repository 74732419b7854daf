package domain

import "time"

// Provenance records how the competitor behind a link was determined.
type Provenance string

const (
	// ProvenanceDirect means the link's own domain identified the company.
	ProvenanceDirect Provenance = "direct"
	// ProvenanceInferred means the link came from a news/social site and the
	// company was found in the surrounding message text.
	ProvenanceInferred Provenance = "inferred"
	// ProvenanceUnknown means neither the domain nor the text identified a
	// company; the record carries a review marker instead of a name.
	ProvenanceUnknown Provenance = "unknown"
)

// CompetitorUnknown is the sentinel a human sets when no company could be
// determined even after manual review.
const CompetitorUnknown = "Unknown"

// Company is the outcome of resolution: a concrete company name, or an
// unresolved marker carrying the display name of the source site the link
// was shared from.
type Company struct {
	Name       string
	SourceName string
}

// ResolvedCompany wraps a concrete company name.
func ResolvedCompany(name string) Company {
	return Company{Name: name}
}

// UnresolvedCompany marks a link whose subject could not be determined.
func UnresolvedCompany(sourceName string) Company {
	return Company{SourceName: sourceName}
}

// Resolved reports whether resolution produced an actual company name.
func (c Company) Resolved() bool {
	return c.Name != ""
}

// Display renders the stored form: the plain name, or the bracketed
// needs-review marker for unresolved links.
func (c Company) Display() string {
	if c.Resolved() {
		return c.Name
	}
	return "[Source: " + c.SourceName + "]"
}

// Message is one inbound chat message handed to the pipeline. When is the
// calendar date the record should carry: ingestion time for live events,
// the original message timestamp for historical imports.
type Message struct {
	Text      string
	Author    string
	ChannelID string
	Timestamp string
	When      time.Time
}

// IntelRecord is the persisted unit of competitor knowledge, one row per
// captured (URL, company, category).
type IntelRecord struct {
	ID         int64     `db:"id" json:"id"`
	Competitor string    `db:"competitor" json:"competitor"`
	URL        string    `db:"url" json:"url"`
	Category   string    `db:"category" json:"category"`
	Summary    string    `db:"summary" json:"summary"`
	SharedBy   string    `db:"shared_by" json:"shared_by"`
	DateAdded  time.Time `db:"date_added" json:"date_added"`
	SlackLink  string    `db:"slack_link" json:"slack_link"`
}

// NeedsReview reports whether the record still carries an unresolved
// source marker rather than a company name.
func (r IntelRecord) NeedsReview() bool {
	return len(r.Competitor) > 0 && r.Competitor[0] == '['
}

// IntelUpdate carries the fields the correction tooling may change on an
// existing record; nil fields are left untouched.
type IntelUpdate struct {
	Competitor *string
	Category   *string
	URL        *string
	Summary    *string
}

// Capture reports one record persisted during a single pipeline pass.
type Capture struct {
	Competitor string
	Category   string
	Provenance Provenance
}
