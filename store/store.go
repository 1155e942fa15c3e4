// Package store holds in-progress submissions, the submission id sequence and
// the pending reviewer comment.
package store

import "handin/model"

// Store is the contract the step engine and review protocol depend on. The
// in-memory implementation is process-scoped; a durable implementation can be
// swapped in without changing either caller.
type Store interface {
	// GetOrCreate returns a copy of the user's state, creating it at the first
	// step when absent. Mutations are not visible until Put.
	GetOrCreate(userID string) model.SubmissionState
	// Put commits a state for the user.
	Put(userID string, state model.SubmissionState)
	// Reset forces the user back to the first step with nothing collected.
	Reset(userID string)
	// NextSubmissionID returns a strictly increasing id starting at 1.
	NextSubmissionID() int64

	SetPendingComment(pc *model.PendingComment)
	PendingComment() *model.PendingComment
	// TakePendingComment clears and returns the pending comment if match
	// accepts it. The check and the clear happen atomically.
	TakePendingComment(match func(model.PendingComment) bool) (model.PendingComment, bool)
}

// Sequence is an external id source, such as the sqlite id_counter.
type Sequence interface {
	Next() (int64, error)
	// AtLeast raises the sequence so its last issued value is no lower than id.
	AtLeast(id int64) error
}
