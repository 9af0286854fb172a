// Package discord posts wheel activity to a host's Discord channel.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

var ErrInvalidChannelID = errors.New(ErrMsgInvalidChannelID)

// Config holds the announcer configuration
type Config struct {
	Token     string
	ChannelID string
}

// Announcer turns bus events into channel messages. Sending happens on the
// worker pool so a slow Discord API never holds up a draw.
type Announcer struct {
	Session   *discordgo.Session
	ChannelID string
	pool      *worker.Pool
}

// New creates an announcer. Only the REST API is used, so no gateway
// connection is opened.
func New(cfg Config, pool *worker.Pool) (*Announcer, error) {
	// channel IDs are numeric snowflakes
	if _, err := strconv.ParseUint(cfg.ChannelID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannelID, cfg.ChannelID)
	}
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &Announcer{
		Session:   s,
		ChannelID: cfg.ChannelID,
		pool:      pool,
	}, nil
}

// Register subscribes the announcer to the events it posts.
func (a *Announcer) Register(bus event.Bus) {
	event.SubscribeAll(bus, a.handle, event.SpinResolved, event.ProofSubmitted, event.ClaimStatusChanged)
}

func (a *Announcer) handle(ctx context.Context, e event.Event) error {
	embed, err := buildEmbed(e)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUndecodableEvent, "event_type", e.Type, "error", err)
		return nil
	}
	if embed == nil {
		return nil
	}

	job := worker.JobFunc(func(ctx context.Context) error {
		return a.send(ctx, embed)
	})
	if !a.pool.TryEnqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgQueueFull, "event_type", e.Type)
	}
	return nil
}

func (a *Announcer) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := a.Session.ChannelMessageSendEmbed(a.ChannelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSendFailed, err)
	}
	return nil
}

func buildEmbed(e event.Event) (*discordgo.MessageEmbed, error) {
	switch e.Type {
	case event.SpinResolved:
		p, err := event.DecodePayload[event.SpinResolvedPayloadV1](e.Payload)
		if err != nil {
			return nil, err
		}
		return &discordgo.MessageEmbed{
			Title:       "🎉 New Winner",
			Description: fmt.Sprintf("**%s** won **%s**", displayName(p.ParticipantName, p.ParticipantKey), p.PrizeLabel),
			Color:       ColorWin,
			Footer:      &discordgo.MessageEmbedFooter{Text: "Wheel " + p.WheelCode},
		}, nil

	case event.ProofSubmitted:
		p, err := event.DecodePayload[event.ProofSubmittedPayloadV1](e.Payload)
		if err != nil {
			return nil, err
		}
		return &discordgo.MessageEmbed{
			Title:       "📸 Proof Submitted",
			Description: fmt.Sprintf("**%s** sent proof for **%s**", displayName(p.ParticipantName, p.ParticipantKey), p.PrizeLabel),
			Color:       ColorProof,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Spin", Value: p.SpinID, Inline: false},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "Wheel " + p.WheelCode},
		}, nil

	case event.ClaimStatusChanged:
		p, err := event.DecodePayload[event.ClaimStatusChangedPayloadV1](e.Payload)
		if err != nil {
			return nil, err
		}
		return &discordgo.MessageEmbed{
			Title:       "📦 Claim Updated",
			Description: fmt.Sprintf("Spin `%s`: %s → %s", p.SpinID, p.From, p.To),
			Color:       ColorStatus,
			Footer:      &discordgo.MessageEmbedFooter{Text: "Wheel " + p.WheelCode},
		}, nil
	}
	return nil, nil
}

func displayName(name, key string) string {
	if name != "" {
		return name
	}
	return key
}
