package rest

import (
	"encoding/json"
)

// UnexpectedErrorMessage is reported for failures that did not come from the transport.
const UnexpectedErrorMessage = "An unexpected error occurred"

// Result is the outcome of a forwarded call: either the remote body, untouched,
// or a failure message.
type Result struct {
	ok      bool
	body    []byte
	message string
}

// Failure is the normalized failure object returned to the browser.
type Failure struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func Ok(body []byte) Result {
	return Result{ok: true, body: body}
}

func Err(message string) Result {
	return Result{message: message}
}

func (r Result) IsOk() bool { return r.ok }

// Body returns the remote response body. It is nil for failures.
func (r Result) Body() []byte { return r.body }

// Message returns the failure message. It is empty for successes.
func (r Result) Message() string { return r.message }

// Failure returns the normalized failure object for an Err result.
func (r Result) Failure() Failure {
	return Failure{Status: false, Message: r.message}
}

// MarshalJSON writes the remote body verbatim on success and the normalized
// failure object otherwise. An empty success body is written as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(r.Failure())
	}
	if len(r.body) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(r.body) {
		return json.Marshal(string(r.body))
	}
	return r.body, nil
}
