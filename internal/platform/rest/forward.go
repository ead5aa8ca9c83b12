package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Call describes one forwarded request.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	// Body is encoded as JSON when non-nil.
	Body  any
	Token string
}

// TransportError reports a failure observed on the wire: either no response at
// all or a non-2xx response.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteMessage returns the message field of a structured error body, if any.
func (e *TransportError) RemoteMessage() string {
	if len(e.Body) == 0 {
		return ""
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	message, ok := payload.Message.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(message)
}

// Send issues the call and returns the raw success body. Transport failures
// come back as *TransportError, everything else as a plain error.
func (c *Client) Send(ctx context.Context, call Call) ([]byte, error) {
	var body io.Reader
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, call.Method, call.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(call.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if len(call.Query) > 0 {
		req.URL.RawQuery = call.Query.Encode()
	}

	res, err := c.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: res.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{StatusCode: res.StatusCode, Body: payload}
	}
	return payload, nil
}

// Forward issues the call and folds every failure into an Err result.
func (c *Client) Forward(ctx context.Context, call Call) Result {
	body, err := c.Send(ctx, call)
	if err != nil {
		return Err(FailureMessage(err))
	}
	return Ok(body)
}

// FailureMessage picks the message reported for err: the remote message when
// the backend sent one, the transport text for other wire failures, and a
// fixed generic text for anything else.
func FailureMessage(err error) string {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return UnexpectedErrorMessage
	}
	if message := transportErr.RemoteMessage(); message != "" {
		return message
	}
	return transportErr.Error()
}
