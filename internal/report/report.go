// Package report composes the monthly competitor-intel summary posted to
// the channel (and pasted into docs from there).
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/ports"
)

// Competitor values excluded from stats: review markers and the sentinels
// humans assign when an entry is not about a single company.
var excludedCompetitors = map[string]struct{}{
	domain.CompetitorUnknown: {},
	"Market Overview":        {},
}

var categoryEmojis = map[string]string{
	"Product Launch": "rocket",
	"Funding":        "moneybag",
	"Feature":        "sparkles",
	"Acquisition":    "handshake",
	"Partnership":    "link",
	"Pricing":        "chart_with_upwards_trend",
	"News":           "newspaper",
	"Other":          "file_folder",
}

// Categories in order of importance for the breakdown section.
var categoryOrder = []string{"Funding", "Acquisition", "Product Launch", "Partnership", "Feature", "Pricing", "News", "Other"}

// Builder renders monthly summaries from the persisted store. It is a
// pure reader; nothing here writes.
type Builder struct {
	reader ports.IntelReader
}

// NewBuilder wires the store's read side.
func NewBuilder(reader ports.IntelReader) *Builder {
	return &Builder{reader: reader}
}

// PreviousMonth returns the default reporting period: the month before t.
func PreviousMonth(t time.Time) (int, time.Month) {
	prev := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return prev.Year(), prev.Month()
}

// Monthly builds the report for the given month.
func (b *Builder) Monthly(ctx context.Context, year int, month time.Month) (string, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	monthName := start.Format("January 2006")

	all, err := b.reader.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch all entries: %w", err)
	}
	monthEntries, err := b.reader.ListRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("fetch month entries: %w", err)
	}
	if len(monthEntries) == 0 {
		return "No competitor intel captured for " + monthName, nil
	}

	tracked := map[string]struct{}{}
	previous := map[string]struct{}{}
	for _, e := range all {
		if countable(e) {
			tracked[e.Competitor] = struct{}{}
		}
		if e.DateAdded.Before(start) {
			previous[e.Competitor] = struct{}{}
		}
	}

	var newCompetitors []string
	seenNew := map[string]struct{}{}
	for _, e := range monthEntries {
		if !countable(e) {
			continue
		}
		if _, old := previous[e.Competitor]; old {
			continue
		}
		if _, dup := seenNew[e.Competitor]; dup {
			continue
		}
		seenNew[e.Competitor] = struct{}{}
		newCompetitors = append(newCompetitors, e.Competitor)
	}

	competitorCounts := map[string]int{}
	categoryCounts := map[string]int{}
	byCategory := map[string][]domain.IntelRecord{}
	for _, e := range monthEntries {
		if countable(e) {
			competitorCounts[e.Competitor]++
		}
		categoryCounts[e.Category]++
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}
	topCompetitors := sortedCounts(competitorCounts)

	lines := []string{
		"*Competitor Intelligence Report - " + monthName + "*",
		strings.Repeat("=", 50),
		"",
		"*Overview*",
		fmt.Sprintf("• *Total competitors tracked (all time):* %d", len(tracked)),
		fmt.Sprintf("• *Total updates (all time):* %d", len(all)),
		fmt.Sprintf("• *Updates this month:* %d", len(monthEntries)),
		"",
	}

	if len(newCompetitors) > 0 {
		lines = append(lines, fmt.Sprintf("*:new: New Competitors This Month* (%d)", len(newCompetitors)))
		for i, comp := range newCompetitors {
			if i == 10 {
				lines = append(lines, fmt.Sprintf("  _...and %d more_", len(newCompetitors)-10))
				break
			}
			lines = append(lines, "  • "+comp)
		}
		lines = append(lines, "")
	}

	if len(topCompetitors) > 0 {
		lines = append(lines, "*:fire: Most Active Competitors This Month*")
		for i, cc := range topCompetitors {
			if i == 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  • %s: %d updates", cc.name, cc.count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "*Updates By Category*")
	for _, cc := range sortedCategories(categoryCounts) {
		emoji := categoryEmojis[cc.name]
		if emoji == "" {
			emoji = "file_folder"
		}
		lines = append(lines, fmt.Sprintf("\n:%s: *%s* (%d)", emoji, cc.name, cc.count))

		entries := byCategory[cc.name]
		shown := 0
		for _, e := range entries {
			if shown == 5 {
				break
			}
			if !countable(e) {
				continue
			}
			lines = append(lines, fmt.Sprintf("  • %s: <%s|Link>", e.Competitor, e.URL))
			shown++
		}
		if len(entries) > 5 {
			lines = append(lines, fmt.Sprintf("  _...and %d more_", len(entries)-5))
		}
	}

	lines = append(lines, "", strings.Repeat("─", 40), "*Executive Summary*")
	lines = append(lines, fmt.Sprintf("This month we tracked *%d updates* across *%d competitors*.", len(monthEntries), len(competitorCounts)))

	if len(newCompetitors) > 0 {
		sample := newCompetitors
		suffix := "."
		if len(sample) > 5 {
			sample = sample[:5]
			suffix = "..."
		}
		lines = append(lines, fmt.Sprintf("*%d new competitors* appeared on our radar: %s%s", len(newCompetitors), strings.Join(sample, ", "), suffix))
	}

	if len(topCompetitors) > 0 {
		top := topCompetitors
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, cc := range top {
			names[i] = cc.name
		}
		lines = append(lines, fmt.Sprintf("Most active: *%s*.", strings.Join(names, ", ")))
	}

	var highlights []string
	for _, h := range []struct{ label, noun string }{
		{"Funding", "funding announcements"},
		{"Acquisition", "acquisitions"},
		{"Product Launch", "product launches"},
		{"Partnership", "partnerships"},
	} {
		if n := categoryCounts[h.label]; n > 0 {
			highlights = append(highlights, fmt.Sprintf("%d %s", n, h.noun))
		}
	}
	if len(highlights) > 0 {
		lines = append(lines, "Key activity: "+strings.Join(highlights, ", ")+".")
	}

	lines = append(lines, "", "_Generated by CompetitionBot_")
	return strings.Join(lines, "\n"), nil
}

// countable filters out review markers and non-company sentinels.
func countable(e domain.IntelRecord) bool {
	if e.NeedsReview() {
		return false
	}
	_, excluded := excludedCompetitors[e.Competitor]
	return !excluded
}

type namedCount struct {
	name  string
	count int
}

func sortedCounts(counts map[string]int) []namedCount {
	out := make([]namedCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, namedCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

// sortedCategories orders by the fixed importance list first, then by
// descending count for anything off-list.
func sortedCategories(counts map[string]int) []namedCount {
	rank := func(name string) int {
		for i, c := range categoryOrder {
			if c == name {
				return i
			}
		}
		return len(categoryOrder)
	}
	out := make([]namedCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, namedCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i].name), rank(out[j].name)
		if ri != rj {
			return ri < rj
		}
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
