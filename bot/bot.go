// Package bot connects the dispatcher to a Discord gateway session.
package bot

import (
	"context"
	"errors"
	"fmt"

	"handin/command"
	"handin/config"
	"handin/handler"
	"handin/model"
	"handin/review"
	"handin/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

// NewSession 使用机器人令牌创建一个新的 Discord 会话
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	// 设置必要的intents
	s.Identify.Intents = discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuilds
	return s, nil
}

// Bot 把网关事件翻译成事件并按用户排队交给 Dispatcher
type Bot struct {
	session       *discordgo.Session
	disp          *handler.Dispatcher
	queue         *handler.Queue
	router        *handler.Router
	reviewChannel string
	guilds        []string
}

// New creates a Bot. Events are queued per user so that each user's events
// are handled in arrival order while the gateway goroutine never blocks.
func New(s *discordgo.Session, cfg model.Config, disp *handler.Dispatcher, queue *handler.Queue) *Bot {
	b := &Bot{
		session: s,
		disp:    disp,
		queue:   queue,
		router:  handler.NewRouter(),
		guilds:  cfg.Commands.AllowGuilds,
	}
	if config.ReviewChannelConfigured(cfg.Review) {
		b.reviewChannel = cfg.Review.ChannelID
	}

	b.router.AddCommandHandler("start", b.onStart)
	b.router.AddCommandHandler("submit", b.onSubmit)
	b.router.AddCommandHandler("requirements", b.onRequirements)
	b.router.AddCommandHandler("myid", b.onMyID)
	b.router.AddCommandHandler("chatid", b.onChatID)

	for _, action := range []string{
		model.ActionBeginSubmission,
		model.ActionAdvanceToPhotoset,
		model.ActionRequirements,
		model.ActionHelp,
		review.TokenPrefix,
	} {
		b.router.AddComponentHandler(action, b.onButton)
	}
	return b
}

// Open connects to the gateway and registers the slash commands.
func (b *Bot) Open() error {
	b.session.AddHandler(b.router.OnInteractionCreate)
	b.session.AddHandler(b.onMessageCreate)

	appID := func() string { return b.session.State.User.ID }
	if err := connect(b.session, appID, b.guilds); err != nil {
		return err
	}
	logx.Infow("bot is now running", logx.Field("user", appID()), logx.Field("guilds", len(b.guilds)))
	return nil
}

// gateway is the part of *discordgo.Session used to connect.
type gateway interface {
	Open() error
	Close() error
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// connect 打开网关并注册命令, 注册失败时关闭连接. appID 只有在连接后才可用.
func connect(gw gateway, appID func() string, guilds []string) error {
	if err := gw.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	if len(guilds) == 0 {
		// 没有配置服务器时注册为全局命令
		guilds = []string{""}
	}
	for _, guildID := range guilds {
		for _, cmd := range command.AllCommands {
			if _, err := gw.ApplicationCommandCreate(appID(), guildID, cmd); err != nil {
				if cerr := gw.Close(); cerr != nil {
					logx.Errorw("close session failed", logx.Field("err", cerr))
				}
				return fmt.Errorf("cannot create '%v' command: %w", cmd.Name, err)
			}
		}
	}
	return nil
}

// Close disconnects the session. Queued events keep running until the queue
// itself is closed.
func (b *Bot) Close() error {
	return b.session.Close()
}

func eventContext(userID string) context.Context {
	return logx.ContextWithFields(context.Background(),
		logx.Field("event", uuid.NewString()), logx.Field("user", userID))
}

func (b *Bot) enqueue(userID string, job func(ctx context.Context)) {
	ctx := eventContext(userID)
	if !b.queue.Submit(userID, func() { job(ctx) }) {
		logx.WithContext(ctx).Infow("event dropped, shutting down")
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// 忽略机器人自己的消息
	source := classify(m.Message, s.State.User.ID, b.reviewChannel)
	if source == sourceIgnored {
		return
	}
	in := translateMessage(m.Message)
	b.enqueue(m.Author.ID, func(ctx context.Context) {
		b.route(ctx, source, in)
	})
}

// route 把翻译后的消息交给 Dispatcher. 审核频道里只处理文字.
func (b *Bot) route(ctx context.Context, source messageSource, in inbound) {
	switch source {
	case sourceDirect:
		for _, ev := range in.media {
			b.disp.HandleMedia(ctx, ev)
		}
		if in.text != nil {
			b.disp.HandleText(ctx, *in.text)
		}
	case sourceReviewChannel:
		if in.text != nil {
			b.disp.HandleChannelText(ctx, *in.text)
		}
	}
}

// chatFor 返回回复用户的频道. 服务器里的交互改为私信回复, 提交流程只在私信里进行.
func (b *Bot) chatFor(ctx context.Context, i *discordgo.Interaction, userID string) (string, error) {
	if i.GuildID == "" {
		return i.ChannelID, nil
	}
	ch, err := b.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (b *Bot) onButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i.Interaction)
	if user == nil {
		return
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		logx.Errorw("ack button failed", logx.Field("err", err), logx.Field("user", user.ID))
	}

	action := i.MessageComponentData().CustomID
	b.enqueue(user.ID, func(ctx context.Context) {
		ev := model.ButtonEvent{UserID: user.ID, ChatID: i.ChannelID, Action: action}
		if !review.IsToken(action) {
			chatID, err := b.chatFor(ctx, i.Interaction, user.ID)
			if err != nil {
				logx.WithContext(ctx).Errorw("open dm failed", logx.Field("err", err))
				return
			}
			ev.ChatID = chatID
		}

		err := b.disp.HandleButton(ctx, ev)
		switch {
		case errors.Is(err, review.ErrUnauthorized):
			b.ephemeralFollowup(ctx, i.Interaction, b.disp.NoAccess())
		case err != nil:
			logx.WithContext(ctx).Errorw("button failed", logx.Field("err", err), logx.Field("action", action))
		}
	})
}

func (b *Bot) ephemeralFollowup(ctx context.Context, i *discordgo.Interaction, text string) {
	_, err := b.session.FollowupMessageCreate(i, false, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logx.WithContext(ctx).Errorw("followup failed", logx.Field("err", err))
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, msg model.PlainMessage, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Content:    utils.Truncate(msg.Text, maxMessageLength),
		Components: components(msg.Buttons),
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logx.Errorw("interaction respond failed", logx.Field("err", err))
	}
}

func (b *Bot) onStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, b.disp.Menu(i.ChannelID), i.GuildID != "")
}

func (b *Bot) onRequirements(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, b.disp.Requirements(i.ChannelID), i.GuildID != "")
}

func (b *Bot) onMyID(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i.Interaction)
	if user == nil {
		return
	}
	b.respond(s, i, b.disp.WhoAmI(user.ID, i.ChannelID), true)
}

func (b *Bot) onChatID(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, b.disp.ChatInfo(i.ChannelID), true)
}

func (b *Bot) onSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i.Interaction)
	if user == nil {
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		logx.Errorw("defer submit failed", logx.Field("err", err), logx.Field("user", user.ID))
	}

	b.enqueue(user.ID, func(ctx context.Context) {
		chatID, err := b.chatFor(ctx, i.Interaction, user.ID)
		if err != nil {
			logx.WithContext(ctx).Errorw("open dm failed", logx.Field("err", err))
			return
		}
		if err := b.disp.HandleButton(ctx, model.ButtonEvent{
			UserID: user.ID, ChatID: chatID, Action: model.ActionBeginSubmission,
		}); err != nil {
			logx.WithContext(ctx).Errorw("begin submission failed", logx.Field("err", err))
		}

		if i.GuildID == "" {
			err = s.InteractionResponseDelete(i.Interaction, discordgo.WithContext(ctx))
		} else {
			_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: utils.StringPtr(fmt.Sprintf("<#%s>", chatID)),
			}, discordgo.WithContext(ctx))
		}
		if err != nil {
			logx.WithContext(ctx).Errorw("finish submit response failed", logx.Field("err", err))
		}
	})
}
