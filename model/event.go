package model

// Button actions raised by submitters.
const (
	ActionBeginSubmission   = "begin-submission"
	ActionAdvanceToPhotoset = "advance-to-photoset"
	ActionRequirements      = "requirements"
	ActionHelp              = "help"
)

// TextEvent is a plain text message.
type TextEvent struct {
	UserID string
	ChatID string
	Text   string
}

// MediaEvent is a single attachment. IsArchive is set by the transport for
// compressed bundles.
type MediaEvent struct {
	UserID    string
	ChatID    string
	MediaRef  string
	IsArchive bool
}

// ButtonEvent is a button press or command carrying an action name or a
// reviewer-action token.
type ButtonEvent struct {
	UserID string
	ChatID string
	Action string
}
