// internal/app/system/notify/discord.go
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// DiscordNotifier sends through the Discord REST API using a bot token.
// No gateway connection is opened; plain REST calls only.
type DiscordNotifier struct {
	session *discordgo.Session
	timeout time.Duration
	log     *zap.Logger
}

// NewDiscordNotifier builds a notifier. timeout bounds each REST call; a
// DM is two calls (open channel, then post) and each gets the full budget.
func NewDiscordNotifier(botToken string, timeout time.Duration, logger *zap.Logger) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DiscordNotifier{session: s, timeout: timeout, log: logger}, nil
}

// SendDM resolves the DM channel for the user, then posts. The two steps
// are checked independently; a failed channel-open short-circuits without
// attempting the post.
func (n *DiscordNotifier) SendDM(ctx context.Context, discordID string, msg Message) Result {
	if discordID == "" {
		return Result{Err: fmt.Errorf("notify: no discord id for recipient")}
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	ch, err := n.session.UserChannelCreate(discordID, discordgo.WithContext(ctx))
	if err != nil {
		n.log.Warn("DM channel open failed",
			zap.String("discord_id", discordID),
			zap.Error(err))
		return Result{Err: fmt.Errorf("notify: open DM channel: %w", err)}
	}

	return n.post(ctx, ch.ID, msg)
}

// SendChannel posts to an ordinary channel.
func (n *DiscordNotifier) SendChannel(ctx context.Context, channelID string, msg Message) Result {
	if channelID == "" {
		return Result{Err: fmt.Errorf("notify: no channel id")}
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.post(ctx, channelID, msg)
}

func (n *DiscordNotifier) post(ctx context.Context, channelID string, msg Message) Result {
	send := &discordgo.MessageSend{Content: msg.Content}

	if msg.ImageURL != "" {
		send.Embeds = []*discordgo.MessageEmbed{{
			Image: &discordgo.MessageEmbedImage{URL: msg.ImageURL},
		}}
	}

	if len(msg.Buttons) > 0 {
		row := discordgo.ActionsRow{}
		for _, b := range msg.Buttons {
			style := discordgo.PrimaryButton
			if b.Danger {
				style = discordgo.DangerButton
			}
			row.Components = append(row.Components, discordgo.Button{
				Label:    b.Label,
				Style:    style,
				CustomID: b.CustomID,
			})
		}
		send.Components = []discordgo.MessageComponent{row}
	}

	if _, err := n.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		n.log.Warn("message post failed",
			zap.String("channel_id", channelID),
			zap.Error(err))
		return Result{Err: fmt.Errorf("notify: post message: %w", err)}
	}
	return Result{Sent: true}
}
