package signalapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	xhttp "SignalDash/pkg/http"
)

// UpstreamError is a failed call to the strategy engine.
// StatusCode is 0 for transport failures and for 2xx answers with a non-success status marker.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	b.WriteString("signal api ")
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// wrapError turns a transport error into an UpstreamError, lifting the server message out of non-2xx bodies.
func wrapError(op string, err error) *UpstreamError {
	ue := &UpstreamError{Op: op, Err: err}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		ue.StatusCode = se.StatusCode
		ue.Message = messageFromBody(se.Body)
	}
	return ue
}

// messageFromBody extracts a human-readable reason from a JSON error body.
func messageFromBody(body []byte) string {
	var m map[string]interface{}
	if len(body) == 0 || json.Unmarshal(body, &m) != nil {
		return ""
	}
	for _, k := range []string{"message", "detail", "error"} {
		if v, ok := m[k]; ok && v != nil {
			if s := strings.TrimSpace(cast.ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// UserMessage is the server-supplied reason, empty when the engine gave none.
func (e *UpstreamError) UserMessage() string { return e.Message }

// HTTPStatus is the upstream status code, 0 when there was no HTTP answer.
func (e *UpstreamError) HTTPStatus() int { return e.StatusCode }
