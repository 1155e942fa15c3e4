package model

import "time"

// PendingComment bridges a reviewer's rework request to their next message
// in the channel the request was raised from.
type PendingComment struct {
	CorrelationID string
	SubmitterID   string
	SubmissionID  int64
	OriginChannel string
	ReviewerID    string
	RequestedAt   time.Time
}
