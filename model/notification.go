package model

// Notification is an outbound message handed to the transport.
//
// ChatID addresses a channel directly. When ChatID is empty, UserID names a
// user whose direct-message channel the transport resolves.
type Notification interface {
	Target() (chatID, userID string)
}

// PlainMessage is a text message.
type PlainMessage struct {
	ChatID  string
	UserID  string
	Text    string
	Buttons []Button
}

func (m PlainMessage) Target() (string, string) { return m.ChatID, m.UserID }

// SummaryMessage is the reviewer-facing summary of a submission with the
// accept, rework and certify actions attached.
type SummaryMessage struct {
	ChatID       string
	SubmissionID int64
	Text         string
	Actions      []Button
}

func (m SummaryMessage) Target() (string, string) { return m.ChatID, "" }

// MediaDelivery forwards a single media reference.
type MediaDelivery struct {
	ChatID   string
	MediaRef string
}

func (m MediaDelivery) Target() (string, string) { return m.ChatID, "" }

// Button is an action rendered next to a message.
type Button struct {
	Label  string
	Action string
	Style  ButtonStyle
}

// ButtonStyle hints how the transport should render a button.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSuccess
	ButtonDanger
	ButtonSecondary
)
