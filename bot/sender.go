package bot

import (
	"context"
	"fmt"

	"handin/model"
	"handin/utils"

	"github.com/bwmarrin/discordgo"
)

// messenger is the part of *discordgo.Session the sender needs.
type messenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sender delivers notifications over a Discord session.
type Sender struct {
	api messenger
}

// NewSender wraps a session.
func NewSender(s *discordgo.Session) *Sender {
	return &Sender{api: s}
}

// Send renders one notification as a Discord message.
func (s *Sender) Send(ctx context.Context, n model.Notification) error {
	chatID, err := s.resolve(ctx, n)
	if err != nil {
		return err
	}

	var data *discordgo.MessageSend
	switch m := n.(type) {
	case model.PlainMessage:
		data = &discordgo.MessageSend{
			Content:    utils.Truncate(m.Text, maxMessageLength),
			Components: components(m.Buttons),
		}
	case model.SummaryMessage:
		data = &discordgo.MessageSend{
			// 投稿编号已经在摘要第一行
			Embeds: []*discordgo.MessageEmbed{{
				Description: utils.Truncate(m.Text, 4096),
				Color:       summaryColor,
			}},
			Components: components(m.Actions),
		}
	case model.MediaDelivery:
		data = &discordgo.MessageSend{Content: m.MediaRef}
	default:
		return fmt.Errorf("unsupported notification %T", n)
	}

	if _, err := s.api.ChannelMessageSendComplex(chatID, data, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send to %s: %w", chatID, err)
	}
	return nil
}

// resolve 返回目标频道, 只有用户 ID 时打开私信频道
func (s *Sender) resolve(ctx context.Context, n model.Notification) (string, error) {
	chatID, userID := n.Target()
	if chatID != "" {
		return chatID, nil
	}
	if userID == "" {
		return "", fmt.Errorf("notification %T has no target", n)
	}
	ch, err := s.api.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("open dm with %s: %w", userID, err)
	}
	return ch.ID, nil
}
