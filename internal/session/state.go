// Package session implements the client-side interview state machine, its
// countdown timer and the snapshot stores that let an interview survive a
// restart.
package session

// State is a step of the interview flow.
type State string

const (
	StateIdle              State = "idle"
	StateFetchingQuestions State = "fetching_questions"
	StateAsking            State = "asking"
	StateAwaitingAnswer    State = "awaiting_answer"
	StateEvaluating        State = "evaluating"
	StateGeneratingReport  State = "generating_report"
	StateComplete          State = "complete"
)

// timed reports whether the countdown runs in this state.
func (s State) timed() bool {
	return s == StateAsking || s == StateAwaitingAnswer
}

// inBatch reports whether a question batch is being worked through.
func (s State) inBatch() bool {
	return s == StateAsking || s == StateAwaitingAnswer || s == StateEvaluating
}
