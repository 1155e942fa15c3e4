// Package assembler turns a finished submission state into a record and the
// messages that deliver it for review.
package assembler

import (
	"fmt"
	"strings"
	"time"

	"handin/config"
	"handin/messages"
	"handin/model"
	"handin/store"
)

const timestampLayout = "02.01.2006 15:04"

// ButtonSource supplies the reviewer actions attached to a summary.
type ButtonSource interface {
	Buttons(submitterID string, submissionID int64) []model.Button
}

// Assembler builds submission records. It never fails: missing answers or
// media simply render empty.
type Assembler struct {
	store   store.Store
	msgs    *messages.Catalog
	review  model.Review
	buttons ButtonSource
	now     func() time.Time
}

// New creates an Assembler delivering to the review channel in review.
func New(st store.Store, msgs *messages.Catalog, review model.Review, buttons ButtonSource) *Assembler {
	return &Assembler{store: st, msgs: msgs, review: review, buttons: buttons, now: time.Now}
}

// Assemble copies the collected answers and media into a new record with the
// next submission id.
func (a *Assembler) Assemble(state model.SubmissionState, submitterID, submitterChatID string) model.Submission {
	snapshot := state.Clone()
	media := make(map[model.MediaCategory][]string)
	for _, category := range model.MediaOrder {
		if refs := snapshot.Media[category]; len(refs) > 0 {
			media[category] = refs
		}
	}

	return model.Submission{
		ID:              a.store.NextSubmissionID(),
		SubmitterID:     submitterID,
		SubmitterChatID: submitterChatID,
		CreatedAt:       a.now(),
		Answers:         snapshot.Answers,
		Media:           media,
	}
}

// Summary renders the reviewer-facing text in fixed field order.
func (a *Assembler) Summary(sub model.Submission) string {
	s := a.msgs.Summary
	var b strings.Builder
	fmt.Fprintf(&b, s.Title+"\n", sub.ID)
	fmt.Fprintf(&b, "🕒 %s\n\n", sub.CreatedAt.Format(timestampLayout))
	fmt.Fprintf(&b, "**%s:** %s\n", s.Name, sub.Answers[model.AnswerName])
	fmt.Fprintf(&b, "**%s:** %s\n\n", s.Handle, sub.Answers[model.AnswerUsername])
	fmt.Fprintf(&b, "**%s:**\n%s\n\n", s.Prompt, sub.Answers[model.AnswerPrompt])
	fmt.Fprintf(&b, "**%s:**\n%s\n\n", s.Hardest, sub.Answers[model.AnswerHardest])
	fmt.Fprintf(&b, "**%s:**\n%s\n", s.Review, sub.Answers[model.AnswerReview])
	return b.String()
}

// MediaSequence lists every media reference in delivery order: source photos,
// photoset, caricature, stickers, stickers archive.
func MediaSequence(sub model.Submission) []string {
	var refs []string
	for _, category := range model.MediaOrder {
		refs = append(refs, sub.Media[category]...)
	}
	return refs
}

// Deliveries returns the messages that route a submission: the summary and
// each media item to the review channel, then the submitter's receipt. When
// the review channel is not configured the submission is held and the
// submitter is told so instead.
func (a *Assembler) Deliveries(sub model.Submission) []model.Notification {
	var out []model.Notification

	if config.ReviewChannelConfigured(a.review) {
		channel := a.review.ChannelID
		out = append(out, model.SummaryMessage{
			ChatID:       channel,
			SubmissionID: sub.ID,
			Text:         a.Summary(sub),
			Actions:      a.buttons.Buttons(sub.SubmitterID, sub.ID),
		})
		for _, ref := range MediaSequence(sub) {
			out = append(out, model.MediaDelivery{ChatID: channel, MediaRef: ref})
		}
	} else {
		out = append(out, model.PlainMessage{UserID: sub.SubmitterID, Text: a.msgs.ReviewUnconfigured})
	}

	out = append(out, model.PlainMessage{
		ChatID: sub.SubmitterChatID,
		Text:   fmt.Sprintf(a.msgs.Completed, sub.ID),
	})
	return out
}
