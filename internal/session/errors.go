package session

import (
	"fmt"

	"github.com/jonathan/mock-interview/internal/interview"
)

// MsgEmptyAnswer is shown when a blank answer is submitted.
const MsgEmptyAnswer = "Please type an answer before submitting."

var (
	// ErrNoQuestions is returned when the question batch came back empty.
	ErrNoQuestions = &interview.InputError{Message: interview.MsgEmptyQuestionSet}
	// ErrEmptyAnswer is returned when the submitted answer is blank.
	ErrEmptyAnswer = &interview.InputError{Message: MsgEmptyAnswer}
)

// TransitionError reports an operation attempted from a state that does not allow it.
type TransitionError struct {
	From   State
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}
