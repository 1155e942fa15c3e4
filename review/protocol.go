// Package review resolves reviewer decisions on assembled submissions and
// routes them back to the submitter.
package review

import (
	"fmt"
	"strings"
	"time"

	"handin/messages"
	"handin/model"
	"handin/store"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

// Outcome is what a resolved reviewer action produced.
type Outcome struct {
	Action        Action
	ReviewerID    string
	CorrelationID string
	Comment       string
	Notifications []model.Notification
}

// Protocol handles accept, certify and the two-phase rework request.
type Protocol struct {
	store      store.Store
	reviewerID string
	msgs       *messages.Catalog
	now        func() time.Time
}

// NewProtocol builds a Protocol authorizing only reviewerID.
func NewProtocol(st store.Store, reviewerID string, msgs *messages.Catalog) *Protocol {
	return &Protocol{store: st, reviewerID: reviewerID, msgs: msgs, now: time.Now}
}

// Authorized reports whether userID is the designated reviewer.
func (p *Protocol) Authorized(userID string) bool {
	return CheckAuth(p.reviewerID, userID)
}

// Buttons returns the reviewer actions attached to a submission summary.
func (p *Protocol) Buttons(submitterID string, submissionID int64) []model.Button {
	action := func(k Kind) string {
		return Action{Kind: k, SubmitterID: submitterID, SubmissionID: submissionID}.Encode()
	}
	return []model.Button{
		{Label: p.msgs.Review.AcceptButton, Action: action(KindAccept), Style: model.ButtonSuccess},
		{Label: p.msgs.Review.ReworkButton, Action: action(KindRework), Style: model.ButtonSecondary},
		{Label: p.msgs.Review.CertifyButton, Action: action(KindCertify), Style: model.ButtonPrimary},
	}
}

// Handle resolves a reviewer button press. Unauthorized callers get
// ErrUnauthorized and nothing is changed or sent.
func (p *Protocol) Handle(ev model.ButtonEvent) (Outcome, error) {
	action, err := ParseAction(ev.Action)
	if err != nil {
		return Outcome{}, err
	}
	if !p.Authorized(ev.UserID) {
		logx.Infow("rejected reviewer action",
			logx.Field("user", ev.UserID), logx.Field("kind", string(action.Kind)),
			logx.Field("submission", action.SubmissionID))
		return Outcome{}, ErrUnauthorized
	}

	out := Outcome{Action: action, ReviewerID: ev.UserID}
	switch action.Kind {
	case KindAccept:
		out.Notifications = []model.Notification{
			model.PlainMessage{UserID: action.SubmitterID, Text: fmt.Sprintf(p.msgs.Review.Accepted, action.SubmissionID)},
			model.PlainMessage{ChatID: ev.ChatID, Text: fmt.Sprintf(p.msgs.Review.AcceptedAck, action.SubmissionID)},
		}
	case KindCertify:
		out.Notifications = []model.Notification{
			model.PlainMessage{UserID: action.SubmitterID, Text: fmt.Sprintf(p.msgs.Review.Certified, action.SubmissionID)},
			model.PlainMessage{ChatID: ev.ChatID, Text: fmt.Sprintf(p.msgs.Review.CertifiedAck, action.SubmissionID)},
		}
	case KindRework:
		out.CorrelationID = p.requestRework(action, ev)
		out.Notifications = []model.Notification{
			model.PlainMessage{ChatID: ev.ChatID, Text: p.msgs.Review.ReworkPrompt},
		}
	default:
		return Outcome{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedToken, action.Kind)
	}
	return out, nil
}

// requestRework is phase one: remember who the next comment from this channel
// is for. Only one request can be outstanding; a newer one replaces it.
func (p *Protocol) requestRework(action Action, ev model.ButtonEvent) string {
	if prev := p.store.PendingComment(); prev != nil {
		logx.Infow("replacing unconsumed rework request",
			logx.Field("correlation", prev.CorrelationID),
			logx.Field("submission", prev.SubmissionID),
			logx.Field("submitter", prev.SubmitterID))
	}

	pc := model.PendingComment{
		CorrelationID: uuid.NewString(),
		SubmitterID:   action.SubmitterID,
		SubmissionID:  action.SubmissionID,
		OriginChannel: ev.ChatID,
		ReviewerID:    ev.UserID,
		RequestedAt:   p.now(),
	}
	p.store.SetPendingComment(&pc)
	return pc.CorrelationID
}

// ConsumeComment is phase two. It takes the text as the rework comment only
// when a request is pending, the text comes from the channel the request was
// raised in, and the sender is the reviewer. Otherwise it reports false and the
// text belongs to the regular submission flow.
func (p *Protocol) ConsumeComment(ev model.TextEvent) (Outcome, bool) {
	pc, ok := p.store.TakePendingComment(func(pc model.PendingComment) bool {
		return pc.OriginChannel == ev.ChatID && p.Authorized(ev.UserID)
	})
	if !ok {
		return Outcome{}, false
	}

	comment := strings.TrimSpace(ev.Text)
	return Outcome{
		Action:        Action{Kind: KindRework, SubmitterID: pc.SubmitterID, SubmissionID: pc.SubmissionID},
		ReviewerID:    ev.UserID,
		CorrelationID: pc.CorrelationID,
		Comment:       comment,
		Notifications: []model.Notification{
			model.PlainMessage{UserID: pc.SubmitterID, Text: fmt.Sprintf(p.msgs.Review.Rework, pc.SubmissionID, comment)},
			model.PlainMessage{ChatID: ev.ChatID, Text: p.msgs.Review.ReworkAck},
		},
	}, true
}
