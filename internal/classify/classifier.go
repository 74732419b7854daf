// Package classify assigns a topical category to message text by ordered
// keyword matching.
package classify

import "strings"

// DefaultLabel is the fallback category when no phrase matches.
const DefaultLabel = "Other"

// Rule binds a category label to the phrases that trigger it.
type Rule struct {
	Label   string
	Phrases []string
}

// Classifier scans rules in order and returns the first label with a
// phrase hit. The order is a deliberate tie-break: text matching several
// categories is classified by whichever rule comes first, not by hit
// count. Known limitation, kept for behavioral compatibility.
type Classifier struct {
	rules []Rule
}

// New builds a classifier from ordered rules. Phrases are matched as
// case-insensitive substrings; they are lowercased once here.
func New(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if r.Label == "" || len(r.Phrases) == 0 {
			continue
		}
		phrases := make([]string, 0, len(r.Phrases))
		for _, p := range r.Phrases {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				phrases = append(phrases, p)
			}
		}
		c.rules = append(c.rules, Rule{Label: r.Label, Phrases: phrases})
	}
	return c
}

// Classify returns the first matching category label, or DefaultLabel.
func (c *Classifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, phrase := range rule.Phrases {
			if strings.Contains(lower, phrase) {
				return rule.Label
			}
		}
	}
	return DefaultLabel
}

// Labels returns every label the classifier can produce, in rule order,
// with DefaultLabel last.
func (c *Classifier) Labels() []string {
	labels := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		labels = append(labels, r.Label)
	}
	return append(labels, DefaultLabel)
}

// Default returns the built-in rule set. Order matters and must not be
// rearranged: Product Launch outranks Funding for text matching both.
func Default() *Classifier {
	return New([]Rule{
		{Label: "Product Launch", Phrases: []string{
			"launch", "launching", "announcing", "introducing",
			"new product", "release", "releasing", "now available", "just shipped",
			"we're excited to announce",
		}},
		{Label: "Funding", Phrases: []string{
			"funding", "raised", "series a", "series b", "series c", "series d",
			"investment", "valuation", "investor", "funding round", "capital",
		}},
		{Label: "Feature", Phrases: []string{
			"feature", "update", "improvement", "added", "now supports",
			"new capability", "enhancement", "upgraded",
		}},
		{Label: "Acquisition", Phrases: []string{
			"acquire", "acquisition", "acquired", "merger", "merge", "buying",
		}},
		{Label: "Partnership", Phrases: []string{
			"partnership", "partnering", "partner", "collaboration", "integrate",
			"integration",
		}},
		{Label: "Pricing", Phrases: []string{
			"pricing", "price", "cost", "free tier", "subscription", "plan",
		}},
		{Label: "News", Phrases: []string{
			"news", "report", "article", "interview", "coverage", "press",
		}},
	})
}
