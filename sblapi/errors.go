package sblapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason classifies why a call to the league API failed
type Reason string

const (
	ReasonTimeout           Reason = "timeout"
	ReasonDNSFailure        Reason = "dns_failure"
	ReasonConnectionRefused Reason = "connection_refused"
	ReasonNonJSONResponse   Reason = "non_json_response"
	ReasonHTTPError         Reason = "http_error"
	ReasonUnknown           Reason = "unknown"
)

// Failure is returned for every unsuccessful call. HTTPStatus is 0 when no
// response was received.
type Failure struct {
	HTTPStatus int
	Reason     Reason
	Message    string
	URL        string
	Err        error
}

func (f *Failure) Error() string {
	if f.HTTPStatus != 0 {
		return fmt.Sprintf("sbl api %s (%d) for %s: %s", f.Reason, f.HTTPStatus, f.URL, f.Message)
	}
	return fmt.Sprintf("sbl api %s for %s: %s", f.Reason, f.URL, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsNotFound reports a 404 from upstream
func (f *Failure) IsNotFound() bool {
	return f.HTTPStatus == http.StatusNotFound
}

// IsServerError reports a 5xx from upstream
func (f *Failure) IsServerError() bool {
	return f.HTTPStatus >= http.StatusInternalServerError
}

// IsTimeout reports a call that ran out of time, locally or upstream
func (f *Failure) IsTimeout() bool {
	return f.Reason == ReasonTimeout || f.HTTPStatus == http.StatusRequestTimeout
}

// UserMessage maps the failure to copy suitable for a Discord reply
func (f *Failure) UserMessage() string {
	switch f.Reason {
	case ReasonTimeout:
		return "The SBL API did not respond in time. Please try again in a moment."
	case ReasonDNSFailure:
		return "The SBL API host could not be resolved."
	case ReasonConnectionRefused:
		return "The SBL API refused the connection. It may be down."
	case ReasonNonJSONResponse:
		return "The SBL API returned an unexpected response."
	case ReasonHTTPError:
		switch {
		case f.IsNotFound():
			return "The requested resource was not found."
		case f.IsServerError():
			return "The SBL API hit an internal error."
		case f.Message != "":
			return f.Message
		}
		return fmt.Sprintf("The SBL API returned HTTP %d.", f.HTTPStatus)
	default:
		return "Could not reach the SBL API."
	}
}

// AsFailure extracts a Failure from an error chain
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
