package interview

import (
	"errors"
	"fmt"
)

// InputError reports a problem with what the client sent.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Client-facing messages.
const (
	MsgResumeRequired   = "Please upload your resume before starting the interview."
	MsgNoFile           = "No file uploaded"
	MsgProcessFailed    = "Failed to process resume"
	MsgResumeUploaded   = "Resume uploaded successfully"
	MsgQuestionFailed   = "Failed to generate question."
	MsgServerError      = "Server error."
	MsgReportFailed     = "Could not generate report."
	MsgCritiqueFailed   = "Could not evaluate resume. Please try again."
	MsgUnsupportedFile  = "Unsupported file type. Please upload a PDF, DOCX or TXT file."
	MsgEmptyQuestionSet = "No interview questions were generated."
)

var (
	// ErrResumeRequired is returned when a tailored question is requested
	// before a usable resume was uploaded for the session.
	ErrResumeRequired = &InputError{Message: MsgResumeRequired}
	// ErrNoFile is returned when an upload carries no data.
	ErrNoFile = &InputError{Message: MsgNoFile}
)

// IsInputError reports whether err is caused by client input.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
