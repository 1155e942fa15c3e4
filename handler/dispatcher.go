package handler

import (
	"context"
	"errors"
	"fmt"

	"handin/db"
	"handin/flow"
	"handin/messages"
	"handin/model"
	"handin/review"
	"handin/store"

	"github.com/zeromicro/go-zero/core/logx"
)

// ErrUnknownAction is returned for button payloads nobody handles.
var ErrUnknownAction = errors.New("unknown action")

// Sender delivers notifications through the transport.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// Archive persists completed submissions and reviewer decisions.
type Archive interface {
	SaveSubmission(ctx context.Context, sub model.Submission) error
	RecordDecision(ctx context.Context, d db.Decision) error
}

// Dispatcher routes inbound events to the review protocol and the step
// engine. Events from the same user are handled one at a time; state is
// committed before anything is sent, and failed sends never undo it.
type Dispatcher struct {
	engine  *flow.Engine
	review  *review.Protocol
	msgs    *messages.Catalog
	sender  Sender
	archive Archive
	users   *store.KeyedMutex
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithArchive stores every completed submission and reviewer decision.
func WithArchive(a Archive) Option {
	return func(d *Dispatcher) {
		d.archive = a
	}
}

// NewDispatcher wires the core components to a transport.
func NewDispatcher(engine *flow.Engine, protocol *review.Protocol, msgs *messages.Catalog, sender Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine: engine,
		review: protocol,
		msgs:   msgs,
		sender: sender,
		users:  store.NewKeyedMutex(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleText gives a pending rework request the first look at the text; if
// the request does not claim it, it goes to the sender's own submission flow.
func (d *Dispatcher) HandleText(ctx context.Context, ev model.TextEvent) {
	if out, ok := d.review.ConsumeComment(ev); ok {
		d.recordDecision(ctx, out)
		d.deliver(ctx, out.Notifications)
		return
	}

	unlock := d.users.Lock(ev.UserID)
	defer unlock()
	d.finish(ctx, ev.UserID, d.engine.HandleText(ev))
}

// HandleChannelText handles text posted in the shared review channel. A
// pending rework request gets it first. Otherwise the reviewer's text goes to
// the reviewer's own submission flow like any other text, while chatter from
// other members is ignored. It reports whether the text was used.
func (d *Dispatcher) HandleChannelText(ctx context.Context, ev model.TextEvent) bool {
	if out, ok := d.review.ConsumeComment(ev); ok {
		d.recordDecision(ctx, out)
		d.deliver(ctx, out.Notifications)
		return true
	}
	if !d.review.Authorized(ev.UserID) {
		return false
	}

	unlock := d.users.Lock(ev.UserID)
	defer unlock()
	d.finish(ctx, ev.UserID, d.engine.HandleText(ev))
	return true
}

// HandleMedia feeds one attachment to the sender's submission flow.
func (d *Dispatcher) HandleMedia(ctx context.Context, ev model.MediaEvent) {
	unlock := d.users.Lock(ev.UserID)
	defer unlock()
	d.finish(ctx, ev.UserID, d.engine.HandleMedia(ev))
}

// HandleButton resolves a button press. Reviewer actions from anyone but the
// reviewer return review.ErrUnauthorized without sending anything.
func (d *Dispatcher) HandleButton(ctx context.Context, ev model.ButtonEvent) error {
	if review.IsToken(ev.Action) {
		out, err := d.review.Handle(ev)
		if err != nil {
			return err
		}
		if out.Action.Kind != review.KindRework {
			d.recordDecision(ctx, out)
		}
		d.deliver(ctx, out.Notifications)
		return nil
	}

	switch ev.Action {
	case model.ActionBeginSubmission:
		unlock := d.users.Lock(ev.UserID)
		defer unlock()
		d.finish(ctx, ev.UserID, d.engine.Begin(ev.UserID, ev.ChatID))
	case model.ActionAdvanceToPhotoset:
		unlock := d.users.Lock(ev.UserID)
		defer unlock()
		d.finish(ctx, ev.UserID, d.engine.Advance(ev.UserID, ev.ChatID))
	case model.ActionRequirements:
		d.deliver(ctx, []model.Notification{d.Requirements(ev.ChatID)})
	case model.ActionHelp:
		d.deliver(ctx, []model.Notification{model.PlainMessage{ChatID: ev.ChatID, Text: d.msgs.Help}})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}

// Menu is the greeting with the three entry actions.
func (d *Dispatcher) Menu(chatID string) model.PlainMessage {
	return model.PlainMessage{
		ChatID: chatID,
		Text:   d.msgs.Welcome,
		Buttons: []model.Button{
			{Label: d.msgs.Menu.Submit, Action: model.ActionBeginSubmission, Style: model.ButtonPrimary},
			{Label: d.msgs.Menu.Requirements, Action: model.ActionRequirements, Style: model.ButtonSecondary},
			{Label: d.msgs.Menu.Help, Action: model.ActionHelp, Style: model.ButtonSecondary},
		},
	}
}

// Requirements is the requirements list.
func (d *Dispatcher) Requirements(chatID string) model.PlainMessage {
	return model.PlainMessage{ChatID: chatID, Text: d.msgs.Requirements}
}

// WhoAmI reports the caller's user id and the current chat id.
func (d *Dispatcher) WhoAmI(userID, chatID string) model.PlainMessage {
	return model.PlainMessage{ChatID: chatID, Text: fmt.Sprintf(d.msgs.IDs.User, userID, chatID)}
}

// ChatInfo reports the current chat id.
func (d *Dispatcher) ChatInfo(chatID string) model.PlainMessage {
	return model.PlainMessage{ChatID: chatID, Text: fmt.Sprintf(d.msgs.IDs.Chat, chatID)}
}

// NoAccess is shown to someone pressing a reviewer button they may not use.
func (d *Dispatcher) NoAccess() string {
	return d.msgs.Review.NoAccess
}

func (d *Dispatcher) finish(ctx context.Context, userID string, res flow.Result) {
	if res.Submission != nil {
		logx.WithContext(ctx).Infow("submission assembled",
			logx.Field("submission", res.Submission.ID), logx.Field("submitter", userID))
		if d.archive != nil {
			if err := d.archive.SaveSubmission(ctx, *res.Submission); err != nil {
				logx.WithContext(ctx).Errorw("archive submission failed",
					logx.Field("err", err), logx.Field("submission", res.Submission.ID))
			}
		}
	}
	d.deliver(ctx, res.Notifications)
}

func (d *Dispatcher) recordDecision(ctx context.Context, out review.Outcome) {
	logx.WithContext(ctx).Infow("reviewer decision",
		logx.Field("kind", string(out.Action.Kind)),
		logx.Field("submission", out.Action.SubmissionID),
		logx.Field("submitter", out.Action.SubmitterID),
		logx.Field("correlation", out.CorrelationID))
	if d.archive == nil {
		return
	}
	err := d.archive.RecordDecision(ctx, db.Decision{
		SubmissionID:  out.Action.SubmissionID,
		SubmitterID:   out.Action.SubmitterID,
		Kind:          string(out.Action.Kind),
		ReviewerID:    out.ReviewerID,
		CorrelationID: out.CorrelationID,
		Comment:       out.Comment,
	})
	if err != nil {
		logx.WithContext(ctx).Errorw("archive decision failed",
			logx.Field("err", err), logx.Field("submission", out.Action.SubmissionID))
	}
}

// deliver sends in order. A failed send is logged and the rest still go out.
func (d *Dispatcher) deliver(ctx context.Context, out []model.Notification) {
	for _, n := range out {
		if err := d.sender.Send(ctx, n); err != nil {
			chatID, userID := n.Target()
			logx.WithContext(ctx).Errorw("delivery failed",
				logx.Field("err", err), logx.Field("chat", chatID), logx.Field("user", userID),
				logx.Field("type", fmt.Sprintf("%T", n)))
		}
	}
}
