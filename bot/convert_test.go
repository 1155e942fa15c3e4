package bot

import (
	"testing"

	"handin/model"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsArchive(t *testing.T) {
	tests := []struct {
		name string
		a    discordgo.MessageAttachment
		want bool
	}{
		{"zip extension", discordgo.MessageAttachment{Filename: "pack.ZIP"}, true},
		{"zip content type", discordgo.MessageAttachment{Filename: "pack", ContentType: "application/zip"}, true},
		{"windows zip type", discordgo.MessageAttachment{Filename: "pack.bin", ContentType: "application/x-zip-compressed"}, true},
		{"image", discordgo.MessageAttachment{Filename: "a.png", ContentType: "image/png"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isArchive(&tt.a))
		})
	}
}

func TestTranslateMessage(t *testing.T) {
	author := &discordgo.User{ID: "u1"}

	t.Run("text only", func(t *testing.T) {
		in := translateMessage(&discordgo.Message{Author: author, ChannelID: "dm", Content: " Ada "})
		require.NotNil(t, in.text)
		assert.Equal(t, model.TextEvent{UserID: "u1", ChatID: "dm", Text: " Ada "}, *in.text)
		assert.Empty(t, in.media)
	})

	t.Run("attachments win over caption", func(t *testing.T) {
		in := translateMessage(&discordgo.Message{
			Author:    author,
			ChannelID: "dm",
			Content:   "here you go",
			Attachments: []*discordgo.MessageAttachment{
				{URL: "https://cdn/a.png", Filename: "a.png"},
				{URL: "https://cdn/b.zip", Filename: "b.zip"},
			},
		})
		assert.Nil(t, in.text)
		require.Len(t, in.media, 2)
		assert.Equal(t, "https://cdn/a.png", in.media[0].MediaRef)
		assert.False(t, in.media[0].IsArchive)
		assert.True(t, in.media[1].IsArchive)
	})

	t.Run("stickers", func(t *testing.T) {
		in := translateMessage(&discordgo.Message{
			Author:       author,
			ChannelID:    "dm",
			StickerItems: []*discordgo.StickerItem{{ID: "42"}},
		})
		require.Len(t, in.media, 1)
		assert.Equal(t, "https://media.discordapp.net/stickers/42.png", in.media[0].MediaRef)
	})

	t.Run("empty", func(t *testing.T) {
		in := translateMessage(&discordgo.Message{Author: author, ChannelID: "dm", Content: "   "})
		assert.Nil(t, in.text)
		assert.Empty(t, in.media)
	})
}

func TestClassify(t *testing.T) {
	human := &discordgo.User{ID: "u1"}
	tests := []struct {
		name    string
		m       discordgo.Message
		channel string
		want    messageSource
	}{
		{"dm", discordgo.Message{Author: human}, "rc", sourceDirect},
		{"review channel", discordgo.Message{Author: human, GuildID: "g", ChannelID: "rc"}, "rc", sourceReviewChannel},
		{"other channel", discordgo.Message{Author: human, GuildID: "g", ChannelID: "x"}, "rc", sourceIgnored},
		{"unconfigured channel", discordgo.Message{Author: human, GuildID: "g", ChannelID: ""}, "", sourceIgnored},
		{"self", discordgo.Message{Author: &discordgo.User{ID: "me"}}, "rc", sourceIgnored},
		{"other bot", discordgo.Message{Author: &discordgo.User{ID: "b", Bot: true}}, "rc", sourceIgnored},
		{"no author", discordgo.Message{}, "rc", sourceIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(&tt.m, "me", tt.channel))
		})
	}
}

func TestComponents(t *testing.T) {
	var buttons []model.Button
	for i := 0; i < 7; i++ {
		buttons = append(buttons, model.Button{Label: "b", Action: "a", Style: model.ButtonDanger})
	}

	rows := components(buttons)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].(discordgo.ActionsRow).Components, 5)
	assert.Len(t, rows[1].(discordgo.ActionsRow).Components, 2)
	btn := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.Equal(t, discordgo.DangerButton, btn.Style)
	assert.Equal(t, "a", btn.CustomID)

	assert.Nil(t, components(nil))
}

func TestButtonStyle(t *testing.T) {
	assert.Equal(t, discordgo.PrimaryButton, buttonStyle(model.ButtonPrimary))
	assert.Equal(t, discordgo.SuccessButton, buttonStyle(model.ButtonSuccess))
	assert.Equal(t, discordgo.SecondaryButton, buttonStyle(model.ButtonSecondary))
}

func TestInteractionUser(t *testing.T) {
	member := &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m"}}}
	direct := &discordgo.Interaction{User: &discordgo.User{ID: "d"}}

	assert.Equal(t, "m", interactionUser(member).ID)
	assert.Equal(t, "d", interactionUser(direct).ID)
	assert.Nil(t, interactionUser(&discordgo.Interaction{}))
}
