package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"handin/model"
)

// Archive keeps completed submissions and reviewer decisions.
type Archive struct {
	conn *sql.DB
	now  func() time.Time
}

// NewArchive wraps an opened database.
func NewArchive(conn *sql.DB) *Archive {
	return &Archive{conn: conn, now: time.Now}
}

// Decision is one reviewer action recorded against a submission.
type Decision struct {
	SubmissionID  int64
	SubmitterID   string
	Kind          string
	ReviewerID    string
	CorrelationID string
	Comment       string
}

// SaveSubmission stores a completed submission and its media in delivery order.
func (a *Archive) SaveSubmission(ctx context.Context, sub model.Submission) error {
	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	created := sub.CreatedAt.Unix()
	_, err = tx.ExecContext(ctx, `INSERT INTO submissions(
		id, submitter_id, submitter_chat_id, name, username, prompt, hardest, review, status, created_at, updated_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.SubmitterID, sub.SubmitterChatID,
		sub.Answers[model.AnswerName], sub.Answers[model.AnswerUsername], sub.Answers[model.AnswerPrompt],
		sub.Answers[model.AnswerHardest], sub.Answers[model.AnswerReview],
		model.StatusPending, created, created,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO submission_media(submission_id, position, category, media_ref) VALUES(?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	position := 0
	for _, category := range model.MediaOrder {
		for _, ref := range sub.Media[category] {
			if _, err := stmt.ExecContext(ctx, sub.ID, position, string(category), ref); err != nil {
				return err
			}
			position++
		}
	}

	return tx.Commit()
}

// RecordDecision logs a reviewer decision and moves the submission to the
// matching status. Unknown submission ids are recorded but update nothing.
func (a *Archive) RecordDecision(ctx context.Context, d Decision) error {
	now := a.now().Unix()

	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO review_decisions(
		submission_id, submitter_id, kind, reviewer_id, correlation_id, comment, created_at
	) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		d.SubmissionID, d.SubmitterID, d.Kind, d.ReviewerID, d.CorrelationID, d.Comment, now,
	)
	if err != nil {
		return err
	}

	if status := statusFor(d.Kind); status != "" {
		_, err = tx.ExecContext(ctx, "UPDATE submissions SET status = ?, updated_at = ? WHERE id = ?", status, now, d.SubmissionID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func statusFor(kind string) string {
	switch kind {
	case "accept":
		return model.StatusAccepted
	case "rework":
		return model.StatusRework
	case "certify":
		return model.StatusCertified
	default:
		return ""
	}
}

// StoredSubmission is the archived view of a submission.
type StoredSubmission struct {
	model.Submission
	Status string
}

// GetSubmission returns an archived submission, or nil when it does not exist.
func (a *Archive) GetSubmission(ctx context.Context, id int64) (*StoredSubmission, error) {
	var s StoredSubmission
	var created int64
	var name, username, prompt, hardest, review string
	err := a.conn.QueryRowContext(ctx, `SELECT
		id, submitter_id, submitter_chat_id, name, username, prompt, hardest, review, status, created_at
	FROM submissions WHERE id = ?`, id).Scan(
		&s.ID, &s.SubmitterID, &s.SubmitterChatID, &name, &username, &prompt, &hardest, &review, &s.Status, &created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.CreatedAt = time.Unix(created, 0)
	s.Answers = map[model.AnswerKey]string{
		model.AnswerName:     name,
		model.AnswerUsername: username,
		model.AnswerPrompt:   prompt,
		model.AnswerHardest:  hardest,
		model.AnswerReview:   review,
	}
	s.Media = make(map[model.MediaCategory][]string)

	rows, err := a.conn.QueryContext(ctx, "SELECT category, media_ref FROM submission_media WHERE submission_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category, ref string
		if err := rows.Scan(&category, &ref); err != nil {
			return nil, err
		}
		c := model.MediaCategory(category)
		s.Media[c] = append(s.Media[c], ref)
	}
	return &s, rows.Err()
}

// CountDecisions returns how many decisions were recorded for a submission.
func (a *Archive) CountDecisions(ctx context.Context, submissionID int64) (int, error) {
	var n int
	err := a.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM review_decisions WHERE submission_id = ?", submissionID).Scan(&n)
	return n, err
}
