package factcheck

import (
	"fmt"
	"net/http"
)

// TransportError reports a failure reaching the model: connection problems,
// non-2xx responses, or bodies that are not JSON at all.
type TransportError struct {
	StatusCode int // zero when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "transport failure"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// EnvelopeError reports a response body that does not have the expected nesting.
// Step names the navigation step that failed; Raw holds the full response for debugging.
type EnvelopeError struct {
	Step   string
	Reason *Absence
	Raw    string
}

func (e *EnvelopeError) Error() string {
	msg := e.Step
	if e.Reason != nil {
		msg += " (" + e.Reason.Error() + ")"
	}
	return msg + ". Full response: " + e.Raw
}

// parseError is produced while decoding model text. It never leaves the parser.
type parseError struct {
	stage string
	err   error
}

func (e *parseError) Error() string { return e.stage + ": " + e.err.Error() }

func (e *parseError) Unwrap() error { return e.err }
