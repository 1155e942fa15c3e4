package model

import "time"

// Submission is the immutable record produced when a flow completes.
type Submission struct {
	ID              int64
	SubmitterID     string
	SubmitterChatID string
	CreatedAt       time.Time
	Answers         map[AnswerKey]string
	Media           map[MediaCategory][]string
}

// Status values stored with archived submissions.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRework    = "rework"
	StatusCertified = "certified"
)
