package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/parsing"
	"github.com/jonathan/mock-interview/internal/types"
)

// Machine holds one interview session. All methods are safe for concurrent use;
// the countdown goroutine shares the same lock.
type Machine struct {
	mu    sync.Mutex
	snap  Snapshot
	store Store

	tick     time.Duration
	onExpire func()
	timer    chan struct{} // closed to stop the running countdown
}

// Option configures a Machine.
type Option func(*Machine)

// WithSessionID sets the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(m *Machine) {
		if id != "" {
			m.snap.SessionID = id
		}
	}
}

// WithTickInterval sets how often the countdown decrements one second.
func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.tick = d
		}
	}
}

// WithOnExpire registers fn to run when the countdown reaches zero.
func WithOnExpire(fn func()) Option {
	return func(m *Machine) { m.onExpire = fn }
}

// NewMachine creates an idle session persisted through store. A nil store
// keeps the session in memory only.
func NewMachine(store Store, opts ...Option) *Machine {
	m := &Machine{
		store: store,
		tick:  time.Second,
		snap: Snapshot{
			SessionID:  uuid.NewString(),
			State:      StateIdle,
			Questions:  []types.Question{},
			Answers:    []types.AnswerRecord{},
			Transcript: []string{},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SessionID returns the id that keys this session's resume on the server.
func (m *Machine) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.SessionID
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.State
}

// Snapshot returns a copy of the session.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.clone()
}

// SetResumeAvailable records whether a resume was uploaded for this session.
func (m *Machine) SetResumeAvailable(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.ResumeAvailable = ok
	m.saveLocked()
}

// AppendTranscript adds chat lines to the session transcript.
func (m *Machine) AppendTranscript(lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Transcript = append(m.snap.Transcript, lines...)
	m.saveLocked()
}

// Start begins a new interview and moves to FetchingQuestions.
func (m *Machine) Start(cfg types.InterviewConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateIdle && m.snap.State != StateComplete {
		return &TransitionError{From: m.snap.State, Action: "start an interview"}
	}
	if err := cfg.Validate(); err != nil {
		return &interview.InputError{Message: "Invalid interview configuration", Cause: err}
	}
	cfg.QuestionCount = types.QuestionCount(cfg.Level)

	m.stopTimerLocked()
	m.snap = Snapshot{
		SessionID:        m.snap.SessionID,
		Config:           cfg,
		Questions:        []types.Question{},
		Answers:          []types.AnswerRecord{},
		Transcript:       []string{},
		ResumeAvailable:  m.snap.ResumeAvailable,
		RemainingSeconds: cfg.TimeLimitSeconds,
		State:            StateFetchingQuestions,
	}
	m.startTimerLocked()
	m.saveLocked()
	return nil
}

// QuestionsReceived stores the generated batch and moves to Asking. An empty
// batch returns ErrNoQuestions and falls back to Idle.
func (m *Machine) QuestionsReceived(questions []types.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateFetchingQuestions {
		return &TransitionError{From: m.snap.State, Action: "accept questions"}
	}
	if len(questions) == 0 {
		m.stopTimerLocked()
		m.snap.State = StateIdle
		m.saveLocked()
		return ErrNoQuestions
	}

	m.snap.Questions = append([]types.Question{}, questions...)
	m.snap.CurrentIndex = 0
	m.snap.State = StateAsking
	m.saveLocked()
	return nil
}

// Present exposes the current question and waits for an answer.
func (m *Machine) Present() (types.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateAsking && m.snap.State != StateAwaitingAnswer {
		return types.Question{}, &TransitionError{From: m.snap.State, Action: "present a question"}
	}
	m.snap.State = StateAwaitingAnswer
	m.saveLocked()
	return m.snap.Questions[m.snap.CurrentIndex], nil
}

// Submit records the candidate's answer and moves to Evaluating.
func (m *Machine) Submit(answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateAwaitingAnswer {
		return &TransitionError{From: m.snap.State, Action: "submit an answer"}
	}
	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}
	m.snap.PendingAnswer = answer
	m.snap.State = StateEvaluating
	m.saveLocked()
	return nil
}

// Scored appends the evaluated answer and advances to the next question, or
// to GeneratingReport after the last one.
func (m *Machine) Scored(eval types.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateEvaluating {
		return &TransitionError{From: m.snap.State, Action: "record a score"}
	}

	m.snap.Answers = append(m.snap.Answers, types.AnswerRecord{
		Question: m.snap.Questions[m.snap.CurrentIndex].Text,
		Answer:   m.snap.PendingAnswer,
		Score:    parsing.ClampScore(float64(eval.Score)),
		Feedback: eval.Feedback,
	})
	m.snap.PendingAnswer = ""
	m.snap.CurrentIndex++

	if m.snap.Complete() {
		m.stopTimerLocked()
		m.snap.State = StateGeneratingReport
	} else {
		m.snap.State = StateAsking
	}
	m.saveLocked()
	return nil
}

// ReportReady stores the final report and completes the session.
func (m *Machine) ReportReady(report types.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.State != StateGeneratingReport {
		return &TransitionError{From: m.snap.State, Action: "accept a report"}
	}
	m.snap.Report = &report
	m.snap.State = StateComplete
	m.saveLocked()
	return nil
}

// Abort undoes an in-flight request so the user can retry it.
func (m *Machine) Abort(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.snap.State {
	case StateFetchingQuestions:
		m.stopTimerLocked()
		m.snap.State = StateIdle
	case StateEvaluating:
		m.snap.PendingAnswer = ""
		m.snap.State = StateAwaitingAnswer
	default:
		return
	}
	log.Printf("[session] request aborted, back to %s: %v", m.snap.State, cause)
	m.saveLocked()
}

// Restore loads the stored snapshot. An unfinished batch resumes at the stored
// question with the countdown running again if time remained. Invalid
// snapshots are discarded. It reports whether a session was restored.
func (m *Machine) Restore(ctx context.Context) (bool, error) {
	if m.store == nil {
		return false, nil
	}
	data, ok, err := m.store.Load(ctx)
	if err != nil || !ok {
		return false, err
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		log.Printf("[session] discarding invalid snapshot: %v", err)
		return false, m.store.Clear(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	switch {
	case snap.State.inBatch() && !snap.Complete():
		snap.State = StateAwaitingAnswer
		snap.PendingAnswer = ""
		if snap.RemainingSeconds > 0 {
			snap.Paused = false
		}
	case snap.State == StateFetchingQuestions:
		snap.State = StateIdle
	}
	m.snap = snap.clone()
	if m.snap.State.timed() {
		m.startTimerLocked()
	}
	m.saveLocked()
	return true, nil
}

// Reset clears the session and its stored snapshot.
func (m *Machine) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.stopTimerLocked()
	m.snap = Snapshot{
		SessionID:  m.snap.SessionID,
		State:      StateIdle,
		Questions:  []types.Question{},
		Answers:    []types.AnswerRecord{},
		Transcript: []string{},
	}
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	return m.store.Clear(ctx)
}

// Close stops the countdown.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

func (m *Machine) saveLocked() {
	m.snap.UpdatedAt = time.Now().UTC()
	if m.store == nil {
		return
	}
	data, err := encodeSnapshot(m.snap)
	if err != nil {
		log.Printf("[session] failed to encode snapshot: %v", err)
		return
	}
	if err := m.store.Save(context.Background(), data); err != nil {
		log.Printf("[session] failed to save snapshot: %v", err)
	}
}
