package bot

import (
	"fmt"
	"path"
	"strings"

	"handin/model"

	"github.com/bwmarrin/discordgo"
)

const (
	// Discord 单条消息的字数上限
	maxMessageLength = 2000
	// 每个 ActionsRow 最多五个按钮
	maxButtonsPerRow = 5

	summaryColor = 0xFFFF00
)

var archiveContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// isArchive 判断附件是否为压缩包
func isArchive(a *discordgo.MessageAttachment) bool {
	if archiveContentTypes[strings.ToLower(a.ContentType)] {
		return true
	}
	return strings.EqualFold(path.Ext(a.Filename), ".zip")
}

// stickerURL 返回贴纸图片地址
func stickerURL(st *discordgo.StickerItem) string {
	return fmt.Sprintf("https://media.discordapp.net/stickers/%s.png", st.ID)
}

// inbound 是一条消息翻译后的事件
type inbound struct {
	media []model.MediaEvent
	text  *model.TextEvent
}

// translateMessage 把一条消息拆成事件: 每个附件和贴纸各算一个媒体事件,
// 没有媒体时才把文字当作回答.
func translateMessage(m *discordgo.Message) inbound {
	var in inbound
	for _, a := range m.Attachments {
		in.media = append(in.media, model.MediaEvent{
			UserID:    m.Author.ID,
			ChatID:    m.ChannelID,
			MediaRef:  a.URL,
			IsArchive: isArchive(a),
		})
	}
	for _, st := range m.StickerItems {
		in.media = append(in.media, model.MediaEvent{
			UserID:   m.Author.ID,
			ChatID:   m.ChannelID,
			MediaRef: stickerURL(st),
		})
	}
	if len(in.media) == 0 && strings.TrimSpace(m.Content) != "" {
		in.text = &model.TextEvent{UserID: m.Author.ID, ChatID: m.ChannelID, Text: m.Content}
	}
	return in
}

// messageSource 描述消息来自哪里
type messageSource int

const (
	sourceIgnored messageSource = iota
	sourceDirect
	sourceReviewChannel
)

// classify 只接受私信和审核频道里的人类消息
func classify(m *discordgo.Message, botID, reviewChannel string) messageSource {
	if m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return sourceIgnored
	}
	if m.GuildID == "" {
		return sourceDirect
	}
	if reviewChannel != "" && m.ChannelID == reviewChannel {
		return sourceReviewChannel
	}
	return sourceIgnored
}

func buttonStyle(s model.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case model.ButtonSuccess:
		return discordgo.SuccessButton
	case model.ButtonDanger:
		return discordgo.DangerButton
	case model.ButtonSecondary:
		return discordgo.SecondaryButton
	default:
		return discordgo.PrimaryButton
	}
}

// components 把按钮按每行五个排成 ActionsRow
func components(buttons []model.Button) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				CustomID: b.Action,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// interactionUser 返回触发交互的用户, 服务器内是 Member.User, 私信里是 User
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
