package services

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"eventregistration/internal/domain"
)

// whatsAppBaseURL is the fixed external channel address; only the channel id
// and the message vary.
const whatsAppBaseURL = "https://wa.me/"

// HandoffLinkBuilder builds deep links into the organizers' WhatsApp conversation.
type HandoffLinkBuilder struct {
	channelID string
}

// NewHandoffLinkBuilder returns a builder for the given channel id (a deploy-time
// constant, never user input).
func NewHandoffLinkBuilder(channelID string) *HandoffLinkBuilder {
	return &HandoffLinkBuilder{channelID: strings.TrimSpace(channelID)}
}

// Link returns the deep link carrying message as the pre-filled text.
func (b *HandoffLinkBuilder) Link(message string) string {
	return whatsAppBaseURL + url.PathEscape(b.channelID) + "?text=" + EncodeMessage(message)
}

// EncodeMessage percent-encodes message for use as a query value. Spaces become
// %20 rather than "+", which some messaging clients show literally.
func EncodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

type logDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher returns a Dispatcher for hosts that open the link themselves
// (the HTTP API hands the link to the browser). It records the handoff in the log.
func NewLogDispatcher(logger *slog.Logger) domain.Dispatcher {
	return &logDispatcher{logger: logger}
}

func (d *logDispatcher) Open(ctx context.Context, target string) {
	d.logger.InfoContext(ctx, "handoff dispatched", "target_host", hostOf(target), "length", len(target))
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Host
}
