// Package slackbot holds the Slack-facing adapters: the socket-mode
// listener, the history source for backfill, and message formatting. The
// classification pipeline itself knows nothing about Slack beyond the
// deep-link format.
package slackbot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slack-go/slack"

	"CompetitionBot/internal/ports"
)

// Client wraps the Slack Web API with small identity caches so the
// listener and the importer do not re-fetch the same user or channel on
// every message.
type Client struct {
	api    *slack.Client
	logger *slog.Logger

	mu       sync.Mutex
	users    map[string]string // user id -> real name
	channels map[string]string // channel id -> name
}

var _ ports.Replier = (*Client)(nil)

// NewClient builds a Web API client. appToken may be empty for callers
// that never open a socket-mode connection (backfill, report).
func NewClient(botToken, appToken string, logger *slog.Logger) *Client {
	opts := []slack.Option{}
	if appToken != "" {
		opts = append(opts, slack.OptionAppLevelToken(appToken))
	}
	return &Client{
		api:      slack.New(botToken, opts...),
		logger:   logger,
		users:    map[string]string{},
		channels: map[string]string{},
	}
}

// UserName resolves a user id to a display name, falling back to the
// <@ID> mention form when the profile cannot be fetched.
func (c *Client) UserName(ctx context.Context, userID string) string {
	if userID == "" {
		return "Unknown"
	}
	c.mu.Lock()
	if name, ok := c.users[userID]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	name := fmt.Sprintf("<@%s>", userID)
	if user, err := c.api.GetUserInfoContext(ctx, userID); err == nil && user.RealName != "" {
		name = user.RealName
	}

	c.mu.Lock()
	c.users[userID] = name
	c.mu.Unlock()
	return name
}

// ChannelName resolves a channel id to its name.
func (c *Client) ChannelName(ctx context.Context, channelID string) (string, error) {
	c.mu.Lock()
	if name, ok := c.channels[channelID]; ok {
		c.mu.Unlock()
		return name, nil
	}
	c.mu.Unlock()

	info, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: channelID})
	if err != nil {
		return "", fmt.Errorf("conversation info %s: %w", channelID, err)
	}

	c.mu.Lock()
	c.channels[channelID] = info.Name
	c.mu.Unlock()
	return info.Name, nil
}

// ChannelIDByName finds a channel id by name across public and private
// channels, paginating the conversation list.
func (c *Client) ChannelIDByName(ctx context.Context, name string) (string, error) {
	params := &slack.GetConversationsParameters{
		Types: []string{"public_channel", "private_channel"},
		Limit: 200,
	}
	for {
		channels, cursor, err := c.api.GetConversationsContext(ctx, params)
		if err != nil {
			return "", fmt.Errorf("list conversations: %w", err)
		}
		for _, ch := range channels {
			if ch.Name == name {
				return ch.ID, nil
			}
		}
		if cursor == "" {
			return "", fmt.Errorf("channel %q not found", name)
		}
		params.Cursor = cursor
	}
}

// Reply posts text into a thread; an empty threadTS posts to the channel.
func (c *Client) Reply(ctx context.Context, channelID, threadTS, text string) error {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false), slack.MsgOptionDisableLinkUnfurl()}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}
	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}
