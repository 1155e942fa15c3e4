// Package flow drives a submitter through the nine submission steps.
//
// Every handler loads a copy of the user's state, decides, and commits the
// copy only when the event was accepted. A rejected event therefore never
// leaves a partial change behind.
package flow

import (
	"fmt"
	"strings"

	"handin/assembler"
	"handin/messages"
	"handin/model"
	"handin/store"
)

const (
	photosetRequired = 3
	stickersRequired = 5
)

// Result is the outcome of one event.
type Result struct {
	// Changed is true when the user's state was committed.
	Changed bool
	// Submission is set when the event completed the flow.
	Submission    *model.Submission
	Notifications []model.Notification
}

// Engine is the submission state machine.
type Engine struct {
	store store.Store
	asm   *assembler.Assembler
	msgs  *messages.Catalog
}

// New creates an Engine.
func New(st store.Store, asm *assembler.Assembler, msgs *messages.Catalog) *Engine {
	return &Engine{store: st, asm: asm, msgs: msgs}
}

// State returns a copy of the user's current state.
func (e *Engine) State(userID string) model.SubmissionState {
	return e.store.GetOrCreate(userID)
}

// Begin starts a new submission, discarding anything collected so far. This
// is the only transition that moves a user backwards.
func (e *Engine) Begin(userID, chatID string) Result {
	e.store.Reset(userID)
	return Result{
		Changed:       true,
		Notifications: e.reply(chatID, e.msgs.StepPrompt(model.StepAwaitingName)),
	}
}

// Advance confirms that the user is done attaching source photos. It is only
// meaningful at the source photo step; anywhere else the current step is
// re-prompted and nothing changes.
func (e *Engine) Advance(userID, chatID string) Result {
	st := e.store.GetOrCreate(userID)
	if st.Step != model.StepAwaitingSourcePhotos {
		return e.reprompt(chatID, st, "")
	}

	st.Step = model.StepAwaitingPhotoset
	return e.commit(userID, st, e.reply(chatID, e.msgs.StepPrompt(st.Step)))
}

// HandleText applies a text answer.
func (e *Engine) HandleText(ev model.TextEvent) Result {
	st := e.store.GetOrCreate(ev.UserID)
	text := strings.TrimSpace(ev.Text)

	switch st.Step {
	case model.StepAwaitingName:
		return e.answer(ev, st, model.AnswerName, text, model.StepAwaitingHandle)
	case model.StepAwaitingHandle:
		return e.answer(ev, st, model.AnswerUsername, text, model.StepAwaitingPrompt)
	case model.StepAwaitingPrompt:
		return e.answer(ev, st, model.AnswerPrompt, text, model.StepAwaitingSourcePhotos)
	case model.StepAwaitingDifficultyNote:
		return e.answer(ev, st, model.AnswerHardest, text, model.StepAwaitingReview)
	case model.StepAwaitingReview:
		st.Answers[model.AnswerReview] = text
		return e.complete(ev.UserID, ev.ChatID, st)
	case model.StepAwaitingSourcePhotos, model.StepAwaitingPhotoset,
		model.StepAwaitingCaricature, model.StepAwaitingStickers:
		return e.reprompt(ev.ChatID, st, e.msgs.ExpectingMedia)
	default:
		return Result{Notifications: e.reply(ev.ChatID, e.msgs.UnknownStep)}
	}
}

// HandleMedia applies one attachment.
func (e *Engine) HandleMedia(ev model.MediaEvent) Result {
	st := e.store.GetOrCreate(ev.UserID)

	switch st.Step {
	case model.StepAwaitingSourcePhotos:
		// no limit here, the user confirms with Advance
		st.Media[model.MediaSource] = append(st.Media[model.MediaSource], ev.MediaRef)
		text := fmt.Sprintf(e.msgs.SourceReceived, st.Count(model.MediaSource))
		return e.commit(ev.UserID, st, e.reply(ev.ChatID, text, e.advanceButton()))

	case model.StepAwaitingPhotoset:
		if st.Count(model.MediaPhotoset) >= photosetRequired {
			return Result{Notifications: e.reply(ev.ChatID, e.msgs.PhotosetFull)}
		}
		st.Media[model.MediaPhotoset] = append(st.Media[model.MediaPhotoset], ev.MediaRef)
		n := st.Count(model.MediaPhotoset)
		if n < photosetRequired {
			return e.commit(ev.UserID, st, e.reply(ev.ChatID, fmt.Sprintf(e.msgs.PhotosetProgress, n)))
		}
		st.Step = model.StepAwaitingCaricature
		return e.commit(ev.UserID, st, e.reply(ev.ChatID, e.msgs.StepPrompt(st.Step)))

	case model.StepAwaitingCaricature:
		st.Media[model.MediaCaricature] = []string{ev.MediaRef}
		st.Step = model.StepAwaitingStickers
		return e.commit(ev.UserID, st, e.reply(ev.ChatID, e.msgs.StepPrompt(st.Step)))

	case model.StepAwaitingStickers:
		if ev.IsArchive {
			// an archive replaces the five individual stickers
			st.Media[model.MediaStickersArchive] = append(st.Media[model.MediaStickersArchive], ev.MediaRef)
			st.Step = model.StepAwaitingDifficultyNote
			text := e.msgs.ArchiveReceived + "\n" + e.msgs.StepPrompt(st.Step)
			return e.commit(ev.UserID, st, e.reply(ev.ChatID, text))
		}
		if st.Count(model.MediaStickers) >= stickersRequired {
			return Result{Notifications: e.reply(ev.ChatID, e.msgs.StickersFull)}
		}
		st.Media[model.MediaStickers] = append(st.Media[model.MediaStickers], ev.MediaRef)
		n := st.Count(model.MediaStickers)
		if n < stickersRequired {
			return e.commit(ev.UserID, st, e.reply(ev.ChatID, fmt.Sprintf(e.msgs.StickerProgress, n)))
		}
		st.Step = model.StepAwaitingDifficultyNote
		text := e.msgs.StickersDone + "\n" + e.msgs.StepPrompt(st.Step)
		return e.commit(ev.UserID, st, e.reply(ev.ChatID, text))

	case model.StepAwaitingName, model.StepAwaitingHandle, model.StepAwaitingPrompt,
		model.StepAwaitingDifficultyNote, model.StepAwaitingReview:
		return e.reprompt(ev.ChatID, st, e.msgs.ExpectingText)

	default:
		return Result{Notifications: e.reply(ev.ChatID, e.msgs.UnknownStep)}
	}
}

func (e *Engine) answer(ev model.TextEvent, st model.SubmissionState, key model.AnswerKey, text string, next model.Step) Result {
	st.Answers[key] = text
	st.Step = next
	return e.commit(ev.UserID, st, e.reply(ev.ChatID, e.msgs.StepPrompt(next)))
}

// complete assembles the record and resets the user before anything is sent.
func (e *Engine) complete(userID, chatID string, st model.SubmissionState) Result {
	sub := e.asm.Assemble(st, userID, chatID)
	e.store.Reset(userID)
	return Result{
		Changed:       true,
		Submission:    &sub,
		Notifications: e.asm.Deliveries(sub),
	}
}

func (e *Engine) commit(userID string, st model.SubmissionState, out []model.Notification) Result {
	e.store.Put(userID, st)
	return Result{Changed: true, Notifications: out}
}

// reprompt repeats the current step's instruction without changing state.
func (e *Engine) reprompt(chatID string, st model.SubmissionState, lead string) Result {
	prompt := e.msgs.StepPrompt(st.Step)
	if lead != "" {
		prompt = lead + "\n\n" + prompt
	}
	var buttons []model.Button
	if st.Step == model.StepAwaitingSourcePhotos && st.Count(model.MediaSource) > 0 {
		buttons = append(buttons, e.advanceButton())
	}
	return Result{Notifications: e.reply(chatID, prompt, buttons...)}
}

func (e *Engine) advanceButton() model.Button {
	return model.Button{Label: e.msgs.AdvanceButton, Action: model.ActionAdvanceToPhotoset, Style: model.ButtonSuccess}
}

func (e *Engine) reply(chatID, text string, buttons ...model.Button) []model.Notification {
	return []model.Notification{model.PlainMessage{ChatID: chatID, Text: text, Buttons: buttons}}
}
