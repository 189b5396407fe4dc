package resume

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the pipeline can report.
type ErrorKind string

const (
	KindUnsupportedFileType ErrorKind = "UnsupportedFileType"
	KindOversize            ErrorKind = "Oversize"
	KindFileNotFound        ErrorKind = "FileNotFound"
	KindDownloadFailed      ErrorKind = "DownloadFailed"
	KindScannedPdfNoText    ErrorKind = "ScannedPdfNoText"
	KindEncryptedPdf        ErrorKind = "EncryptedPdf"
	KindCorruptedPdf        ErrorKind = "CorruptedPdf"
	KindCorruptedDocx       ErrorKind = "CorruptedDocx"
	KindResumeNotFound      ErrorKind = "ResumeNotFound"
	KindUnexpectedError     ErrorKind = "UnexpectedError"
)

// ParseError is a classified pipeline failure. Its Error() text is what
// status-polling clients see, so Cause never leaks into it.
type ParseError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func NewError(kind ErrorKind, detail string, cause error) *ParseError {
	return &ParseError{Kind: kind, Detail: detail, Cause: cause}
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return "ParseError: " + string(e.Kind)
	}
	return fmt.Sprintf("ParseError: %s - %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches any *ParseError of the same kind, so callers can write
// errors.Is(err, resume.ErrOversize).
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether re-running the job may succeed without a new upload.
func (e *ParseError) Retryable() bool {
	return e.Kind == KindFileNotFound || e.Kind == KindDownloadFailed
}

// Sentinels for errors.Is.
var (
	ErrUnsupportedFileType = &ParseError{Kind: KindUnsupportedFileType}
	ErrOversize            = &ParseError{Kind: KindOversize}
	ErrFileNotFound        = &ParseError{Kind: KindFileNotFound}
	ErrDownloadFailed      = &ParseError{Kind: KindDownloadFailed}
	ErrScannedPdfNoText    = &ParseError{Kind: KindScannedPdfNoText}
	ErrEncryptedPdf        = &ParseError{Kind: KindEncryptedPdf}
	ErrCorruptedPdf        = &ParseError{Kind: KindCorruptedPdf}
	ErrCorruptedDocx       = &ParseError{Kind: KindCorruptedDocx}
	ErrResumeNotFound      = &ParseError{Kind: KindResumeNotFound}
	ErrUnexpected          = &ParseError{Kind: KindUnexpectedError}
)

// Classify returns err as a *ParseError, wrapping anything unclassified as
// UnexpectedError. A nil error yields nil.
func Classify(err error) *ParseError {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return NewError(KindUnexpectedError, err.Error(), err)
}
