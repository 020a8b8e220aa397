package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/mock-interview/internal/schemas"
	"github.com/jonathan/mock-interview/internal/types"
)

// Snapshot is the persisted form of an interview session.
type Snapshot struct {
	SessionID        string                `json:"session_id"`
	Config           types.InterviewConfig `json:"config"`
	Questions        []types.Question      `json:"questions"`
	CurrentIndex     int                   `json:"current_index"`
	Answers          []types.AnswerRecord  `json:"answers"`
	PendingAnswer    string                `json:"pending_answer,omitempty"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	ResumeAvailable  bool                  `json:"resume_available"`
	State            State                 `json:"state"`
	Paused           bool                  `json:"paused"`
	Transcript       []string              `json:"transcript"`
	Report           *types.Report         `json:"report"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// Complete reports whether every question has been answered.
func (s Snapshot) Complete() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)
}

// clone returns a deep copy with non-nil slices.
func (s Snapshot) clone() Snapshot {
	c := s
	c.Questions = append(make([]types.Question, 0, len(s.Questions)), s.Questions...)
	c.Answers = append(make([]types.AnswerRecord, 0, len(s.Answers)), s.Answers...)
	c.Transcript = append(make([]string, 0, len(s.Transcript)), s.Transcript...)
	if s.Report != nil {
		r := *s.Report
		c.Report = &r
	}
	return c
}

// check enforces the index invariants the schema cannot express.
func (s Snapshot) check() error {
	if s.CurrentIndex > len(s.Questions) {
		return fmt.Errorf("current index %d exceeds %d questions", s.CurrentIndex, len(s.Questions))
	}
	if s.State != StateIdle && s.State != StateFetchingQuestions && len(s.Answers) != s.CurrentIndex {
		return fmt.Errorf("%d answers recorded at index %d", len(s.Answers), s.CurrentIndex)
	}
	if s.State.inBatch() && s.CurrentIndex >= len(s.Questions) {
		return fmt.Errorf("state %s has no question at index %d", s.State, s.CurrentIndex)
	}
	return nil
}

// encodeSnapshot serialises a snapshot for a Store.
func encodeSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s.clone(), "", "  ")
}

// decodeSnapshot validates and parses stored bytes.
func decodeSnapshot(data []byte) (Snapshot, error) {
	if err := schemas.ValidateSnapshot(data); err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := s.check(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
