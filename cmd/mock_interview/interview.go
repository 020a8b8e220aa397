package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/mock-interview/internal/apiclient"
	"github.com/jonathan/mock-interview/internal/interview"
	"github.com/jonathan/mock-interview/internal/observability"
	"github.com/jonathan/mock-interview/internal/session"
	"github.com/jonathan/mock-interview/internal/types"
	"github.com/spf13/cobra"
)

var (
	interviewRole      string
	interviewLevel     int
	interviewResume    string
	interviewTimeLimit int
	interviewFresh     bool
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview in the terminal",
	Long: `Run a mock interview against the API server. Progress is saved after every
step, so an interrupted interview resumes where it stopped. Type /quit to leave.`,
	RunE: runInterviewCmd,
}

func init() {
	interviewCmd.Flags().StringVar(&interviewRole, "role", "", "Role to interview for")
	interviewCmd.Flags().IntVar(&interviewLevel, "level", 3, "Interview level 1-4 (3, 5, 7 or 10 questions)")
	interviewCmd.Flags().StringVar(&interviewResume, "resume", "", "Resume file to upload before starting")
	interviewCmd.Flags().IntVar(&interviewTimeLimit, "time-limit", -1, "Countdown in seconds (0 disables, default from config)")
	interviewCmd.Flags().BoolVar(&interviewFresh, "fresh", false, "Discard any saved session first")
	rootCmd.AddCommand(interviewCmd)
}

func runInterviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	store, err := session.OpenStore(cfg.StateBackend, cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	machine := session.NewMachine(store, session.WithOnExpire(func() {
		printer.PrintTimeLeft(0, true)
	}))
	defer machine.Close()

	if interviewFresh {
		if err := machine.Reset(ctx); err != nil {
			return err
		}
	} else if restored, err := machine.Restore(ctx); err != nil {
		return err
	} else if restored {
		printer.PrintMessage("Resuming saved interview (%s).", machine.State())
	}

	client := apiclient.New(cfg.ServerURL, machine.SessionID())
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("server at %s is not reachable: %w", cfg.ServerURL, err)
	}

	if interviewResume != "" {
		if err := uploadResume(ctx, client, interviewResume); err != nil {
			return err
		}
		machine.SetResumeAvailable(true)
		printer.PrintMessage("%s", interview.MsgResumeUploaded)
	}

	timeLimit := cfg.TimeLimitSeconds
	if interviewTimeLimit >= 0 {
		timeLimit = interviewTimeLimit
	}

	loop := &interviewLoop{
		runner:  session.NewRunner(machine, client),
		printer: printer,
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     out,
	}
	return loop.run(ctx, interviewRole, interviewLevel, timeLimit)
}

func uploadResume(ctx context.Context, client *apiclient.Client, path string) error {
	f, err := openResume(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := client.UploadResume(ctx, filepath.Base(path), f); err != nil {
		return fmt.Errorf("resume upload failed: %w", err)
	}
	return nil
}

// errQuit ends the loop early; the session stays saved.
var errQuit = errors.New("quit")

// interviewLoop reads answers from in and drives the runner until the report is shown.
type interviewLoop struct {
	runner  *session.Runner
	printer *observability.Printer
	in      *bufio.Scanner
	out     io.Writer
}

func (l *interviewLoop) run(ctx context.Context, role string, level, timeLimit int) error {
	machine := l.runner.Machine()
	presented := false

	for {
		switch machine.State() {
		case session.StateIdle:
			if err := l.begin(ctx, role, level, timeLimit); err != nil {
				return quietQuit(err)
			}

		case session.StateAsking, session.StateAwaitingAnswer:
			if !presented {
				q, err := l.runner.Ask()
				if err != nil {
					return err
				}
				snap := machine.Snapshot()
				l.printer.PrintQuestion(snap.CurrentIndex+1, len(snap.Questions), q)
				presented = true
			}
			answer, err := l.prompt("Your answer")
			if err != nil {
				return quietQuit(err)
			}
			turn, err := l.runner.Answer(ctx, answer)
			if err != nil {
				if interview.IsInputError(err) {
					l.printer.PrintMessage("%s", inputMessage(err))
				} else {
					l.printer.PrintMessage("Could not evaluate your answer (%v). Please try again.", err)
				}
				continue
			}
			presented = false
			l.printer.PrintEvaluation(turn.Evaluation)
			l.printer.PrintFollowUps(turn.FollowUps)
			if snap := machine.Snapshot(); snap.Config.TimeLimitSeconds > 0 && !turn.Done {
				l.printer.PrintTimeLeft(snap.RemainingSeconds, snap.Paused)
			}

		case session.StateGeneratingReport:
			l.printer.PrintMessage("Analyzing your performance...")
			report, err := l.runner.Finish(ctx)
			if err != nil {
				l.printer.PrintMessage("%s Run the command again to retry.", interview.MsgReportFailed)
				return err
			}
			l.printer.PrintReport(report)
			return nil

		case session.StateComplete:
			if snap := machine.Snapshot(); snap.Report != nil {
				l.printer.PrintReport(*snap.Report)
			}
			l.printer.PrintMessage("This interview is complete. Use --fresh or `mock_interview reset` to start another.")
			return nil

		default:
			return fmt.Errorf("unexpected session state %s", machine.State())
		}
	}
}

func (l *interviewLoop) begin(ctx context.Context, role string, level, timeLimit int) error {
	for strings.TrimSpace(role) == "" {
		r, err := l.prompt("Role")
		if err != nil {
			return err
		}
		role = r
	}
	if level < 1 || level > 4 {
		answer, err := l.prompt("Level (1-4)")
		if err != nil {
			return err
		}
		if level, err = strconv.Atoi(strings.TrimSpace(answer)); err != nil {
			level = 0
		}
	}

	cfg := types.NewInterviewConfig(strings.TrimSpace(role), level, timeLimit)
	l.printer.PrintMessage("Generating %d personalized interview questions...", cfg.QuestionCount)
	if err := l.runner.Begin(ctx, cfg); err != nil {
		if interview.IsInputError(err) {
			l.printer.PrintMessage("%s", inputMessage(err))
		}
		return err
	}
	return nil
}

// prompt reads one line. "/quit" and end of input return errQuit.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (l *interviewLoop) prompt(label string) (string, error) {
	fmt.Fprintf(l.out, "%s> ", label)
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := l.in.Text()
	if strings.TrimSpace(line) == "/quit" {
		return "", errQuit
	}
	return line, nil
}

func inputMessage(err error) string {
	var inputErr *interview.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return err.Error()
}

// quietQuit treats a user quit as success; the saved session resumes next time.
func quietQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
