package ingestion

import "fmt"

// UnsupportedFormatError is returned for uploads that are not PDF, DOCX or plain text.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (%s)", e.Filename, e.ContentType)
}

// ExtractionError is returned when a supported document cannot be read.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("failed to extract %s text", e.Format)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
