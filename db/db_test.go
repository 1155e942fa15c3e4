package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"handin/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "handin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCounter_Next(t *testing.T) {
	c := NewCounter(openTestDB(t))

	for want := int64(1); want <= 3; want++ {
		got, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCounter_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handin.db")

	conn, err := Open(path)
	require.NoError(t, err)
	_, err = NewCounter(conn).Next()
	require.NoError(t, err)
	_, err = NewCounter(conn).Next()
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()

	got, err := NewCounter(conn).Next()
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestCounter_AtLeast(t *testing.T) {
	c := NewCounter(openTestDB(t))

	_, err := c.Next()
	require.NoError(t, err)
	require.NoError(t, c.AtLeast(7))
	// lower values never move the counter back
	require.NoError(t, c.AtLeast(3))

	got, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(8), got)
}

func sampleSubmission() model.Submission {
	return model.Submission{
		ID:              7,
		SubmitterID:     "u1",
		SubmitterChatID: "dm1",
		CreatedAt:       time.Unix(1700000000, 0),
		Answers: map[model.AnswerKey]string{
			model.AnswerName:     "Jane Doe",
			model.AnswerUsername: "@jane",
			model.AnswerPrompt:   "a castle at dusk",
			model.AnswerHardest:  "the deadline",
			model.AnswerReview:   "loved it",
		},
		Media: map[model.MediaCategory][]string{
			model.MediaStickers:   {"k1", "k2"},
			model.MediaSource:     {"s1"},
			model.MediaPhotoset:   {"p1", "p2", "p3"},
			model.MediaCaricature: {"c1"},
		},
	}
}

func TestArchive_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(openTestDB(t))

	require.NoError(t, a.SaveSubmission(ctx, sampleSubmission()))

	got, err := a.GetSubmission(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "u1", got.SubmitterID)
	assert.Equal(t, "dm1", got.SubmitterChatID)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, "a castle at dusk", got.Answers[model.AnswerPrompt])
	assert.Equal(t, []string{"p1", "p2", "p3"}, got.Media[model.MediaPhotoset])
	assert.Equal(t, []string{"k1", "k2"}, got.Media[model.MediaStickers])
	assert.Empty(t, got.Media[model.MediaStickersArchive])
	assert.Equal(t, int64(1700000000), got.CreatedAt.Unix())
}

func TestArchive_GetMissing(t *testing.T) {
	a := NewArchive(openTestDB(t))

	got, err := a.GetSubmission(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArchive_RecordDecision(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(openTestDB(t))
	require.NoError(t, a.SaveSubmission(ctx, sampleSubmission()))

	require.NoError(t, a.RecordDecision(ctx, Decision{SubmissionID: 7, SubmitterID: "u1", Kind: "rework", ReviewerID: "r1", Comment: "fix colors"}))
	got, err := a.GetSubmission(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRework, got.Status)

	require.NoError(t, a.RecordDecision(ctx, Decision{SubmissionID: 7, SubmitterID: "u1", Kind: "certify", ReviewerID: "r1"}))
	got, err = a.GetSubmission(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCertified, got.Status)

	n, err := a.CountDecisions(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestArchive_RecordDecisionUnknownSubmission(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(openTestDB(t))

	require.NoError(t, a.RecordDecision(ctx, Decision{SubmissionID: 999, SubmitterID: "ghost", Kind: "accept", ReviewerID: "r1"}))

	n, err := a.CountDecisions(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
