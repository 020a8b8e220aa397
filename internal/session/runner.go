package session

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/mock-interview/internal/types"
)

// API is the server surface an interview needs.
type API interface {
	Questions(ctx context.Context, role string, level int) ([]types.Question, error)
	Evaluate(ctx context.Context, question, answer string) (types.Evaluation, error)
	FollowUps(ctx context.Context, question, answer string) ([]string, error)
	Report(ctx context.Context, role string, level int, answers []types.AnswerRecord) (types.Report, error)
}

// Turn is the outcome of one answered question.
type Turn struct {
	Evaluation types.Evaluation
	FollowUps  []string
	Done       bool // no questions remain
}

// Runner drives a Machine against the API, one request at a time.
type Runner struct {
	machine *Machine
	api     API
}

// NewRunner creates a Runner.
func NewRunner(machine *Machine, api API) *Runner {
	return &Runner{machine: machine, api: api}
}

// Machine returns the driven state machine.
func (r *Runner) Machine() *Machine {
	return r.machine
}

// Begin starts an interview and fetches its question batch.
func (r *Runner) Begin(ctx context.Context, cfg types.InterviewConfig) error {
	if err := r.machine.Start(cfg); err != nil {
		return err
	}
	questions, err := r.api.Questions(ctx, cfg.Role, cfg.Level)
	if err != nil {
		r.machine.Abort(err)
		return fmt.Errorf("failed to fetch questions: %w", err)
	}
	return r.machine.QuestionsReceived(questions)
}

// Ask presents the current question and records it in the transcript.
func (r *Runner) Ask() (types.Question, error) {
	q, err := r.machine.Present()
	if err != nil {
		return types.Question{}, err
	}
	snap := r.machine.Snapshot()
	r.machine.AppendTranscript(
		fmt.Sprintf("Question %d/%d:", snap.CurrentIndex+1, len(snap.Questions)),
		"Interviewer: "+q.Text,
	)
	return q, nil
}

// Answer submits an answer, scores it and fetches follow-up questions.
// Follow-up failures are logged and do not fail the turn.
func (r *Runner) Answer(ctx context.Context, answer string) (Turn, error) {
	snap := r.machine.Snapshot()
	if err := r.machine.Submit(answer); err != nil {
		return Turn{}, err
	}
	question := snap.Questions[snap.CurrentIndex].Text
	r.machine.AppendTranscript("You: " + answer)

	eval, err := r.api.Evaluate(ctx, question, answer)
	if err != nil {
		r.machine.Abort(err)
		return Turn{}, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	if err := r.machine.Scored(eval); err != nil {
		return Turn{}, err
	}
	r.machine.AppendTranscript(
		fmt.Sprintf("Score: %d/10", eval.Score),
		"Feedback: "+eval.Feedback,
	)

	turn := Turn{Evaluation: eval, Done: r.machine.State() == StateGeneratingReport}

	followUps, err := r.api.FollowUps(ctx, question, answer)
	if err != nil {
		log.Printf("[session] follow-ups unavailable: %v", err)
	}
	for _, f := range followUps {
		r.machine.AppendTranscript("Follow-up: " + f)
	}
	turn.FollowUps = followUps

	if turn.Done {
		r.machine.AppendTranscript("Interview Complete")
	}
	return turn, nil
}

// Finish requests the final report and completes the session.
func (r *Runner) Finish(ctx context.Context) (types.Report, error) {
	snap := r.machine.Snapshot()
	if snap.State != StateGeneratingReport {
		return types.Report{}, &TransitionError{From: snap.State, Action: "generate the report"}
	}
	report, err := r.api.Report(ctx, snap.Config.Role, snap.Config.Level, snap.Answers)
	if err != nil {
		r.machine.Abort(err)
		return types.Report{}, fmt.Errorf("failed to generate report: %w", err)
	}
	if err := r.machine.ReportReady(report); err != nil {
		return types.Report{}, err
	}
	return report, nil
}
