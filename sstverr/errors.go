/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error kinds surfaced by the SSTV codec packages,
  distinguishing structural failures that must abort a call from content
  failures that are recovered with a best-effort result.

LICENSE
  See repository root.
*/

// Package sstverr defines the typed error kinds shared across the SSTV
// codec packages.
package sstverr

import "fmt"

// Kind identifies the category of an Error so callers can distinguish
// fatal structural failures from recoverable content failures without
// string-matching error messages.
type Kind int

const (
	// InvalidMode indicates an unknown mode name was supplied at encode
	// time. Fatal: the caller must fix the request.
	InvalidMode Kind = iota

	// UnrecognisedVIS indicates VIS detection failed to match any known
	// mode within the search window. The decoder falls back to Robot 36
	// and continues; this is a non-fatal warning.
	UnrecognisedVIS

	// NoSync indicates no 1200 Hz sync pulse was found anywhere in the
	// input. Fatal: the input is likely not SSTV audio, or timing is too
	// badly skewed to recover.
	NoSync

	// TruncatedInput indicates the sample stream ended before all lines
	// were decoded. Non-fatal: a partial raster is delivered.
	TruncatedInput

	// InvalidSampleRate indicates a non-positive sample rate. Fatal.
	InvalidSampleRate
)

func (k Kind) String() string {
	switch k {
	case InvalidMode:
		return "InvalidMode"
	case UnrecognisedVIS:
		return "UnrecognisedVIS"
	case NoSync:
		return "NoSync"
	case TruncatedInput:
		return "TruncatedInput"
	case InvalidSampleRate:
		return "InvalidSampleRate"
	default:
		return "Unknown"
	}
}

// Fatal reports whether errors of this kind must abort the caller rather
// than being recovered alongside a best-effort result.
func (k Kind) Fatal() bool {
	switch k {
	case InvalidMode, NoSync, InvalidSampleRate:
		return true
	default:
		return false
	}
}

// Error is a typed SSTV codec error carrying a Kind so callers can recover
// content errors (errors.As) while still propagating structural ones.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sstv: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("sstv: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// Wrap constructs an Error of the given kind wrapping a cause.
func Wrap(k Kind, msg string, err error) *Error { return &Error{Kind: k, Message: msg, Err: err} }
