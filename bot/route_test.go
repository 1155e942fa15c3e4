package bot

import (
	"context"
	"sync"
	"testing"

	"handin/assembler"
	"handin/flow"
	"handin/handler"
	"handin/messages"
	"handin/model"
	"handin/review"
	"handin/store"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testReviewer = "rev"
	testChannel  = "review-chan"
	testBot      = "bot"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (r *recordingSender) Send(_ context.Context, n model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func newRouteBot(t *testing.T) (*Bot, *store.Memory, *recordingSender) {
	t.Helper()
	st := store.NewMemory()
	msgs := messages.Default()
	cfg := model.Review{ChannelID: testChannel, ReviewerID: testReviewer}
	protocol := review.NewProtocol(st, cfg.ReviewerID, msgs)
	engine := flow.New(st, assembler.New(st, msgs, cfg, protocol), msgs)
	sender := &recordingSender{}
	disp := handler.NewDispatcher(engine, protocol, msgs, sender)
	return &Bot{disp: disp, reviewChannel: testChannel}, st, sender
}

// deliverMessage runs a gateway message through the same steps onMessageCreate uses.
func deliverMessage(b *Bot, m *discordgo.Message) {
	source := classify(m, testBot, b.reviewChannel)
	if source == sourceIgnored {
		return
	}
	b.route(context.Background(), source, translateMessage(m))
}

func TestRoute_ReviewerTextInReviewChannelReachesOwnFlow(t *testing.T) {
	b, st, sender := newRouteBot(t)

	deliverMessage(b, &discordgo.Message{
		Author:    &discordgo.User{ID: testReviewer},
		GuildID:   "g",
		ChannelID: testChannel,
		Content:   "Rita Reviewer",
	})

	got := st.GetOrCreate(testReviewer)
	assert.Equal(t, model.StepAwaitingHandle, got.Step)
	assert.Equal(t, "Rita Reviewer", got.Answers[model.AnswerName])
	assert.NotEmpty(t, sender.sent)
}

func TestRoute_ReviewerCommentConsumedByRework(t *testing.T) {
	b, st, sender := newRouteBot(t)
	token := review.Action{Kind: review.KindRework, SubmitterID: "u1", SubmissionID: 3}.Encode()
	require.NoError(t, b.disp.HandleButton(context.Background(), model.ButtonEvent{UserID: testReviewer, ChatID: testChannel, Action: token}))
	sender.sent = nil

	deliverMessage(b, &discordgo.Message{
		Author:    &discordgo.User{ID: testReviewer},
		GuildID:   "g",
		ChannelID: testChannel,
		Content:   "sharper lines",
	})

	assert.Nil(t, st.PendingComment())
	assert.Empty(t, st.GetOrCreate(testReviewer).Answers)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "u1", sender.sent[0].(model.PlainMessage).UserID)
}

func TestRoute_OtherMembersInReviewChannelIgnored(t *testing.T) {
	b, st, sender := newRouteBot(t)

	deliverMessage(b, &discordgo.Message{
		Author:    &discordgo.User{ID: "member"},
		GuildID:   "g",
		ChannelID: testChannel,
		Content:   "nice work",
	})

	assert.Empty(t, sender.sent)
	assert.Empty(t, st.GetOrCreate("member").Answers)
}

func TestRoute_DirectMessageText(t *testing.T) {
	b, st, _ := newRouteBot(t)

	deliverMessage(b, &discordgo.Message{
		Author:    &discordgo.User{ID: "u1"},
		ChannelID: "dm-u1",
		Content:   "Ada",
	})

	assert.Equal(t, "Ada", st.GetOrCreate("u1").Answers[model.AnswerName])
}
