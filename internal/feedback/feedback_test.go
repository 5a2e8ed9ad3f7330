package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
	"faqbot/internal/sessions"
)

// quietLogs silencia o logger padrão durante o teste.
func quietLogs(t *testing.T) {
	t.Helper()
	old := logging.Default
	logging.Default = logging.Nop()
	t.Cleanup(func() { logging.Default = old })
}

func sampleRecord(id string) domain.FeedbackRecord {
	return domain.FeedbackRecord{
		ID:        id,
		SessionID: "session-1",
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Feedback:  "yes",
		Rating:    RatingHelpful,
		Conversation: []domain.Turn{
			{Role: domain.RoleUser, Content: "bye", Timestamp: time.Date(2024, 5, 1, 9, 59, 0, 0, time.UTC)},
		},
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindFile, k)

	k, err = ParseKind("postgres")
	require.NoError(t, err)
	assert.Equal(t, KindPostgres, k)

	_, err = ParseKind("s3")
	assert.Error(t, err)
}

func TestFileSink_AppendsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	sink := NewFileSink(path)
	ctx := context.Background()

	require.NoError(t, sink.Save(ctx, sampleRecord("a")))
	require.NoError(t, sink.Save(ctx, sampleRecord("b")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	for _, key := range []string{"timestamp", "feedback", "rating", "conversation"} {
		assert.Contains(t, first, key)
	}

	recent, err := sink.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].ID)
}

func TestFileSink_RecentSkipsBadLinesAndMissingFile(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()

	recent, err := NewFileSink(filepath.Join(dir, "none.json")).Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	path := filepath.Join(dir, "feedback.json")
	line, _ := json.Marshal(sampleRecord("ok"))
	require.NoError(t, os.WriteFile(path, append(append([]byte("not json\n"), line...), '\n'), 0o644))

	recent, err = NewFileSink(path).Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "ok", recent[0].ID)
}

func TestFileSink_WriteFailure(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing-dir", "feedback.json"))
	err := sink.Save(context.Background(), sampleRecord("a"))
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestPostgresSink_Save(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord("7d1f7a3e-1111-4c3b-9f51-2a7f3f9d0c11")
	mock.ExpectExec(`INSERT INTO feedback_entries`).
		WithArgs(rec.ID, rec.SessionID, sqlmock.AnyArg(), rec.Rating, sqlmock.AnyArg(), rec.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewPostgresSink(db).Save(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSink_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO feedback_entries`).WillReturnError(errors.New("connection reset"))

	err = NewPostgresSink(db).Save(context.Background(), sampleRecord("x"))
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestPostgresSink_Recent(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	conv, _ := json.Marshal(sampleRecord("x").Conversation)
	rows := sqlmock.NewRows([]string{"id", "session_id", "feedback", "rating", "conversation", "timestamp"}).
		AddRow("r2", "s", "no", 0, conv, ts).
		AddRow("r1", "s", nil, 1, []byte("{broken"), ts)
	mock.ExpectQuery(`SELECT .* FROM feedback_entries`).WithArgs(2).WillReturnRows(rows)

	recs, err := NewPostgresSink(db).Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "no", recs[0].Feedback)
	assert.Len(t, recs[0].Conversation, 1)
	assert.Equal(t, "", recs[1].Feedback)
	assert.Empty(t, recs[1].Conversation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingSink struct{}

func (failingSink) Save(context.Context, domain.FeedbackRecord) error {
	return errors.Join(ErrPersistence, errors.New("disk full"))
}

type captureSink struct {
	got []domain.FeedbackRecord
}

func (c *captureSink) Save(_ context.Context, rec domain.FeedbackRecord) error {
	c.got = append(c.got, rec)
	return nil
}

func TestCollector_SnapshotsLastFiveTurns(t *testing.T) {
	h := sessions.NewHistory(sessions.WithID("abc"))
	for _, c := range []string{"1", "2", "3", "4", "5", "6"} {
		h.Record(domain.RoleUser, c)
	}
	sink := &captureSink{}

	msg := NewCollector(sink, h).Collect(context.Background(), "great bot", 1)
	assert.Equal(t, ThanksMessage, msg)
	require.Len(t, sink.got, 1)
	rec := sink.got[0]
	assert.Equal(t, "abc", rec.SessionID)
	assert.Equal(t, "great bot", rec.Feedback)
	assert.Equal(t, 1, rec.Rating)
	require.Len(t, rec.Conversation, 5)
	assert.Equal(t, "2", rec.Conversation[0].Content)
	assert.NotEmpty(t, rec.ID)
}

func TestCollector_SoftFailure(t *testing.T) {
	quietLogs(t)
	msg := NewCollector(failingSink{}, sessions.NewHistory()).Collect(context.Background(), "meh", 0)
	assert.Equal(t, SoftErrorMessage, msg)
}

func TestNopSink(t *testing.T) {
	assert.NoError(t, NopSink{}.Save(context.Background(), sampleRecord("x")))
}
