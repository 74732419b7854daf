package slackbot

import (
	"fmt"
	"strings"

	"CompetitionBot/internal/domain"
)

// MessageLink builds the deep link back to a message from its channel id
// and timestamp, e.g. ("C123", "1726000000.000100") ->
// https://slack.com/archives/C123/p1726000000000100.
func MessageLink(channelID, ts string) string {
	return "https://slack.com/archives/" + channelID + "/p" + strings.ReplaceAll(ts, ".", "")
}

// captureReply composes the threaded confirmation for a pipeline pass.
// Unresolved captures get the needs-review wording so a human follows up.
func captureReply(captures []domain.Capture) string {
	if len(captures) == 0 {
		return ""
	}

	if len(captures) == 1 {
		c := captures[0]
		if c.Provenance == domain.ProvenanceUnknown {
			return fmt.Sprintf("Captured: *%s* (%s)\n_Could not identify company - please review_", c.Competitor, c.Category)
		}
		return fmt.Sprintf("Captured: *%s* (%s)\n_Saved to competitor database_", c.Competitor, c.Category)
	}

	lines := []string{fmt.Sprintf("Captured %d competitor updates:", len(captures))}
	for _, c := range captures {
		if c.Provenance == domain.ProvenanceUnknown {
			lines = append(lines, fmt.Sprintf("  *%s* (%s) - needs review", c.Competitor, c.Category))
		} else {
			lines = append(lines, fmt.Sprintf("  *%s* (%s)", c.Competitor, c.Category))
		}
	}
	lines = append(lines, "_Saved to competitor database_")
	return strings.Join(lines, "\n")
}

// helpText answers an @-mention of the bot.
func helpText(channelName string) string {
	return "Hi! I'm CompetitionBot. I automatically track competitor links " +
		"posted in #" + channelName + " and save them to our database.\n\n" +
		"Just post a link to any competitor news, product launch, or update " +
		"and I'll capture it for you!"
}
