package model

// Step is one position in the fixed nine-stage submission sequence.
type Step int

const (
	StepAwaitingName Step = iota + 1
	StepAwaitingHandle
	StepAwaitingPrompt
	StepAwaitingSourcePhotos
	StepAwaitingPhotoset
	StepAwaitingCaricature
	StepAwaitingStickers
	StepAwaitingDifficultyNote
	StepAwaitingReview
)

// TotalSteps is shown to submitters as "Step n/TotalSteps".
const TotalSteps = 9

func (s Step) String() string {
	switch s {
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingHandle:
		return "awaiting_handle"
	case StepAwaitingPrompt:
		return "awaiting_prompt"
	case StepAwaitingSourcePhotos:
		return "awaiting_source_photos"
	case StepAwaitingPhotoset:
		return "awaiting_photoset"
	case StepAwaitingCaricature:
		return "awaiting_caricature"
	case StepAwaitingStickers:
		return "awaiting_stickers"
	case StepAwaitingDifficultyNote:
		return "awaiting_difficulty_note"
	case StepAwaitingReview:
		return "awaiting_review"
	default:
		return "unknown"
	}
}

// ExpectsText reports whether the step is answered with free text.
func (s Step) ExpectsText() bool {
	switch s {
	case StepAwaitingName, StepAwaitingHandle, StepAwaitingPrompt,
		StepAwaitingDifficultyNote, StepAwaitingReview:
		return true
	}
	return false
}

// ExpectsMedia reports whether the step is answered with attachments.
func (s Step) ExpectsMedia() bool {
	switch s {
	case StepAwaitingSourcePhotos, StepAwaitingPhotoset,
		StepAwaitingCaricature, StepAwaitingStickers:
		return true
	}
	return false
}

// AnswerKey names a text answer.
type AnswerKey string

const (
	AnswerName     AnswerKey = "name"
	AnswerUsername AnswerKey = "username"
	AnswerPrompt   AnswerKey = "prompt"
	AnswerHardest  AnswerKey = "hardest"
	AnswerReview   AnswerKey = "review"
)

// MediaCategory names a group of attachments.
type MediaCategory string

const (
	MediaSource          MediaCategory = "source"
	MediaPhotoset        MediaCategory = "photoset"
	MediaCaricature      MediaCategory = "caricature"
	MediaStickers        MediaCategory = "stickers"
	MediaStickersArchive MediaCategory = "stickers_archive"
)

// MediaOrder is the fixed order in which categories are delivered to the reviewer.
var MediaOrder = []MediaCategory{
	MediaSource,
	MediaPhotoset,
	MediaCaricature,
	MediaStickers,
	MediaStickersArchive,
}

// SubmissionState is the in-progress submission of one user.
type SubmissionState struct {
	Step    Step
	Answers map[AnswerKey]string
	Media   map[MediaCategory][]string
}

// NewSubmissionState returns a state positioned at the first step.
func NewSubmissionState() SubmissionState {
	return SubmissionState{
		Step:    StepAwaitingName,
		Answers: make(map[AnswerKey]string),
		Media:   make(map[MediaCategory][]string),
	}
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (s SubmissionState) Clone() SubmissionState {
	c := SubmissionState{
		Step:    s.Step,
		Answers: make(map[AnswerKey]string, len(s.Answers)),
		Media:   make(map[MediaCategory][]string, len(s.Media)),
	}
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	for k, v := range s.Media {
		c.Media[k] = append([]string(nil), v...)
	}
	return c
}

// Count returns how many references are held in a category.
func (s SubmissionState) Count(category MediaCategory) int {
	return len(s.Media[category])
}
