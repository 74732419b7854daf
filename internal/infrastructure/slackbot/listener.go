package slackbot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/usecase"
)

// Listener consumes live channel events over socket mode and feeds
// messages with links into the pipeline, replying in-thread with what was
// captured.
type Listener struct {
	client   *Client
	socket   *socketmode.Client
	channel  string // monitored channel name
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// NewListener wires the socket-mode event loop to the pipeline.
func NewListener(client *Client, channelName string, pipeline *usecase.Pipeline, logger *slog.Logger) *Listener {
	return &Listener{
		client:   client,
		socket:   socketmode.New(client.api),
		channel:  channelName,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Run blocks, processing events until the context is canceled.
func (l *Listener) Run(ctx context.Context) error {
	go l.consume(ctx)
	l.logger.Info("listener started", "channel", l.channel)
	return l.socket.RunContext(ctx)
}

func (l *Listener) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-l.socket.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					l.socket.Ack(*evt.Request)
				}
				l.dispatch(ctx, apiEvent)
			case socketmode.EventTypeConnectionError:
				l.logger.Warn("socket connection error", "data", evt.Data)
			}
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, evt slackevents.EventsAPIEvent) {
	switch ev := evt.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		l.handleMessage(ctx, ev)
	case *slackevents.AppMentionEvent:
		l.handleMention(ctx, ev)
	}
}

func (l *Listener) handleMessage(ctx context.Context, ev *slackevents.MessageEvent) {
	if ev.BotID != "" || ev.SubType == "bot_message" {
		return
	}
	if !strings.Contains(strings.ToLower(ev.Text), "http") {
		return
	}

	name, err := l.client.ChannelName(ctx, ev.Channel)
	if err != nil {
		l.logger.Error("channel lookup failed", "channel", ev.Channel, "error", err)
		return
	}
	if name != l.channel {
		return
	}

	msg := domain.Message{
		Text:      ev.Text,
		Author:    l.client.UserName(ctx, ev.User),
		ChannelID: ev.Channel,
		Timestamp: ev.TimeStamp,
		When:      time.Now(),
	}

	captures := l.pipeline.ProcessMessage(ctx, msg)
	if len(captures) == 0 {
		return
	}

	if err := l.client.Reply(ctx, ev.Channel, ev.TimeStamp, captureReply(captures)); err != nil {
		l.logger.Error("confirmation reply failed", "error", err)
	}
}

func (l *Listener) handleMention(ctx context.Context, ev *slackevents.AppMentionEvent) {
	if err := l.client.Reply(ctx, ev.Channel, ev.TimeStamp, helpText(l.channel)); err != nil {
		l.logger.Error("mention reply failed", "error", err)
	}
}
