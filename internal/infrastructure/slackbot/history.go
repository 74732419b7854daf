package slackbot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/ports"
)

const historyPageSize = 200

// HistorySource fetches channel history for the historical import,
// paginating with the API cursor and pausing between pages to respect
// rate limits.
type HistorySource struct {
	client    *Client
	channel   string // channel name
	pageDelay time.Duration
	logger    *slog.Logger
}

var _ ports.MessageSource = (*HistorySource)(nil)

// NewHistorySource builds a source for the named channel.
func NewHistorySource(client *Client, channelName string, pageDelay time.Duration, logger *slog.Logger) *HistorySource {
	if pageDelay <= 0 {
		pageDelay = time.Second
	}
	return &HistorySource{
		client:    client,
		channel:   channelName,
		pageDelay: pageDelay,
		logger:    logger,
	}
}

// Fetch returns all human messages containing a link since oldest,
// oldest first, with authors resolved to display names.
func (h *HistorySource) Fetch(ctx context.Context, oldest time.Time) ([]domain.Message, error) {
	channelID, err := h.client.ChannelIDByName(ctx, h.channel)
	if err != nil {
		return nil, err
	}
	h.logger.Info("channel found", "channel", h.channel, "id", channelID)

	params := &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    fmt.Sprintf("%d.000000", oldest.Unix()),
		Limit:     historyPageSize,
	}

	var messages []domain.Message
	for {
		resp, err := h.client.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("conversation history: %w", err)
		}

		for _, m := range resp.Messages {
			if m.BotID != "" || m.SubType == "bot_message" {
				continue
			}
			if !strings.Contains(strings.ToLower(m.Text), "http") {
				continue
			}
			messages = append(messages, domain.Message{
				Text:      m.Text,
				Author:    h.client.UserName(ctx, m.User),
				ChannelID: channelID,
				Timestamp: m.Timestamp,
				When:      tsTime(m.Timestamp),
			})
		}
		h.logger.Info("history page fetched", "page_messages", len(resp.Messages), "kept", len(messages))

		if !resp.HasMore {
			break
		}
		params.Cursor = resp.ResponseMetaData.NextCursor

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(h.pageDelay):
		}
	}

	// History arrives newest first; imports run oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// tsTime converts a Slack "seconds.micros" timestamp to wall time,
// falling back to now when it does not parse.
func tsTime(ts string) time.Time {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil || f <= 0 {
		return time.Now()
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9))
}
