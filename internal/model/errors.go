package model

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a generation is requested while another one is
// still outstanding.
var ErrBusy = errors.New("generation already in progress")

// ErrEmptyPrompt is the reason carried by a ValidationError for blank prompts.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrItemNotFound is returned by lookups of unknown item ids.
var ErrItemNotFound = errors.New("item not found")

// ErrCancelled is returned to a submitter whose request was abandoned.
var ErrCancelled = errors.New("generation cancelled")

// ValidationError reports input rejected before any request is made.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return "invalid " + e.Field
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GenerationError reports a failed call to the generation service: a non-2xx
// status, a transport failure, an unusable response body or a timeout.
type GenerationError struct {
	Kind       MediaKind
	StatusCode int  // 0 when no response was received
	Timeout    bool // request deadline expired
	Err        error
}

func (e *GenerationError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s generation timed out", e.Kind)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s generation failed: status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s generation failed: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s generation failed", e.Kind)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// DownloadError reports a failed asset fetch or local save.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGeneration reports whether err is or wraps a GenerationError
func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsDownload reports whether err is or wraps a DownloadError
func IsDownload(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}
