package domain

import "testing"

func TestCompanyDisplay(t *testing.T) {
	t.Parallel()

	resolved := ResolvedCompany("Stripe")
	if !resolved.Resolved() || resolved.Display() != "Stripe" {
		t.Fatalf("resolved = %+v, Display() = %q", resolved, resolved.Display())
	}

	unresolved := UnresolvedCompany("Techcrunch")
	if unresolved.Resolved() {
		t.Fatal("unresolved company reported as resolved")
	}
	if got := unresolved.Display(); got != "[Source: Techcrunch]" {
		t.Fatalf("Display() = %q", got)
	}
}

func TestNeedsReview(t *testing.T) {
	t.Parallel()

	if (IntelRecord{Competitor: "Stripe"}).NeedsReview() {
		t.Fatal("plain competitor flagged for review")
	}
	if !(IntelRecord{Competitor: "[Source: Techcrunch]"}).NeedsReview() {
		t.Fatal("source marker not flagged for review")
	}
	if (IntelRecord{Competitor: CompetitorUnknown}).NeedsReview() {
		t.Fatal("sentinel is excluded from stats elsewhere, not a review marker")
	}
}
