package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuestions = []types.Question{
	{ID: 1, Text: "What is Go?"},
	{ID: 2, Text: "What is a goroutine?"},
	{ID: 3, Text: "What is a channel?"},
}

func newFileMachine(t *testing.T, opts ...Option) (*Machine, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	m := NewMachine(store, opts...)
	t.Cleanup(m.Close)
	return m, store
}

func answerCurrent(t *testing.T, m *Machine, answer string, score int) {
	t.Helper()
	_, err := m.Present()
	require.NoError(t, err)
	require.NoError(t, m.Submit(answer))
	require.NoError(t, m.Scored(types.Evaluation{Score: score, Feedback: "ok"}))
}

func TestMachine_HappyPath(t *testing.T) {
	m, _ := newFileMachine(t)
	assert.Equal(t, StateIdle, m.State())
	assert.NotEmpty(t, m.SessionID())

	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	assert.Equal(t, StateFetchingQuestions, m.State())
	assert.Equal(t, 3, m.Snapshot().Config.QuestionCount)

	require.NoError(t, m.QuestionsReceived(testQuestions))
	assert.Equal(t, StateAsking, m.State())

	q, err := m.Present()
	require.NoError(t, err)
	assert.Equal(t, testQuestions[0], q)
	assert.Equal(t, StateAwaitingAnswer, m.State())

	require.NoError(t, m.Submit("A language"))
	assert.Equal(t, StateEvaluating, m.State())

	require.NoError(t, m.Scored(types.Evaluation{Score: 7, Feedback: "Good."}))
	snap := m.Snapshot()
	assert.Equal(t, StateAsking, snap.State)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, []types.AnswerRecord{{Question: "What is Go?", Answer: "A language", Score: 7, Feedback: "Good."}}, snap.Answers)

	answerCurrent(t, m, "b", 8)
	answerCurrent(t, m, "c", 10)
	snap = m.Snapshot()
	assert.Equal(t, StateGeneratingReport, snap.State)
	assert.True(t, snap.Complete())
	assert.Len(t, snap.Answers, snap.CurrentIndex)

	require.NoError(t, m.ReportReady(types.Report{AverageScore: 8, HTMLBody: "<p>done</p>"}))
	assert.Equal(t, StateComplete, m.State())
	require.NotNil(t, m.Snapshot().Report)

	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 2}), "complete sessions can restart")
	snap = m.Snapshot()
	assert.Empty(t, snap.Answers)
	assert.Nil(t, snap.Report)
}

func TestSnapshot_Complete(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		expected bool
	}{
		{"no questions", Snapshot{}, false},
		{"mid batch", Snapshot{Questions: testQuestions, CurrentIndex: 1}, false},
		{"all answered", Snapshot{Questions: testQuestions, CurrentIndex: len(testQuestions)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.snap.Complete())
		})
	}
}

func TestMachine_EmptyBatchStaysOutOfAsking(t *testing.T) {
	m, _ := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 3}))

	err := m.QuestionsReceived(nil)
	require.ErrorIs(t, err, ErrNoQuestions)
	assert.True(t, interview.IsInputError(err))
	assert.Equal(t, StateIdle, m.State())

	_, err = m.Present()
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
}

func TestMachine_EmptyAnswerRejected(t *testing.T) {
	m, _ := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	_, err := m.Present()
	require.NoError(t, err)

	err = m.Submit("   \n")
	require.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Equal(t, StateAwaitingAnswer, m.State())
}

func TestMachine_InvalidTransitions(t *testing.T) {
	m, _ := newFileMachine(t)

	var te *TransitionError
	assert.ErrorAs(t, m.QuestionsReceived(testQuestions), &te)
	assert.ErrorAs(t, m.Submit("x"), &te)
	assert.ErrorAs(t, m.Scored(types.Evaluation{}), &te)
	assert.ErrorAs(t, m.ReportReady(types.Report{}), &te)

	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	assert.ErrorAs(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}), &te)
	assert.Equal(t, StateFetchingQuestions, te.From)
}

func TestMachine_StartValidatesConfig(t *testing.T) {
	m, _ := newFileMachine(t)

	err := m.Start(types.InterviewConfig{Level: 2})
	assert.True(t, interview.IsInputError(err))
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_ScoreClamped(t *testing.T) {
	m, _ := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	answerCurrent(t, m, "a", 42)

	assert.Equal(t, 10, m.Snapshot().Answers[0].Score)
}

func TestMachine_Abort(t *testing.T) {
	m, _ := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))

	m.Abort(assert.AnError)
	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	_, err := m.Present()
	require.NoError(t, err)
	require.NoError(t, m.Submit("a"))

	m.Abort(assert.AnError)
	snap := m.Snapshot()
	assert.Equal(t, StateAwaitingAnswer, snap.State)
	assert.Empty(t, snap.PendingAnswer)
	assert.Equal(t, 0, snap.CurrentIndex)

	require.NoError(t, m.Submit("a again"))
	require.NoError(t, m.Scored(types.Evaluation{Score: 5}))
	answerCurrent(t, m, "b", 5)
	answerCurrent(t, m, "c", 5)

	m.Abort(assert.AnError)
	assert.Equal(t, StateGeneratingReport, m.State())
}

func TestMachine_RestoreRoundTrip(t *testing.T) {
	m, store := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	answerCurrent(t, m, "first", 6)
	_, err := m.Present()
	require.NoError(t, err)
	require.NoError(t, m.Submit("in flight"))
	m.AppendTranscript("You: in flight")
	before := m.Snapshot()
	m.Close()

	restored := NewMachine(store)
	t.Cleanup(restored.Close)
	ok, err := restored.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	after := restored.Snapshot()
	assert.Equal(t, before.SessionID, after.SessionID)
	assert.Equal(t, before.Questions, after.Questions)
	assert.Equal(t, 1, after.CurrentIndex)
	assert.Equal(t, before.Answers, after.Answers)
	assert.Equal(t, before.Transcript, after.Transcript)
	assert.Equal(t, StateAwaitingAnswer, after.State)

	q, err := restored.Present()
	require.NoError(t, err)
	assert.Equal(t, testQuestions[1], q)
}

func TestMachine_RestoreCompleteAsIs(t *testing.T) {
	m, store := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))
	for i := 0; i < len(testQuestions); i++ {
		answerCurrent(t, m, "a", 8)
	}

	restored := NewMachine(store)
	ok, err := restored.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateGeneratingReport, restored.State())
	assert.Len(t, restored.Snapshot().Answers, 3)
}

func TestMachine_RestoreFetchingFallsBackToIdle(t *testing.T) {
	m, store := newFileMachine(t)
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))

	restored := NewMachine(store)
	ok, err := restored.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateIdle, restored.State())
}

func TestMachine_RestoreDiscardsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	tests := []struct {
		name string
		data string
	}{
		{"not json", "{oops"},
		{"schema violation", `{"session_id":"x","state":"dancing"}`},
		{"index past answers", `{"session_id":"x","config":{"role":"r","level":1,"question_count":3},"questions":[{"id":1,"text":"q"}],"current_index":1,"answers":[],"state":"asking"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, []byte(tt.data)))

			m := NewMachine(store)
			ok, err := m.Restore(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, StateIdle, m.State())

			_, present, err := store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, present, "invalid snapshot is removed")
		})
	}
}

func TestMachine_RestoreEmptyStore(t *testing.T) {
	m, _ := newFileMachine(t)
	ok, err := m.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMachine_Reset(t *testing.T) {
	ctx := context.Background()
	m, store := newFileMachine(t)
	id := m.SessionID()
	require.NoError(t, m.Start(types.InterviewConfig{Role: "SRE", Level: 1}))
	require.NoError(t, m.QuestionsReceived(testQuestions))

	require.NoError(t, m.Reset(ctx))
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, id, m.SessionID())

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMachine_WithSessionID(t *testing.T) {
	m := NewMachine(nil, WithSessionID("fixed"))
	assert.Equal(t, "fixed", m.SessionID())

	ok, err := m.Restore(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}
