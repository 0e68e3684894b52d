package schema

import (
	"net/http"
	"sync"
	"time"
)

type Key string

// CallNameKey carries the logical API call name ("create-booking" etc.)
// through the request context down to the recording transport.
const CallNameKey Key = "callName"

type CallErrorCode string

const (
	TimeoutError    CallErrorCode = "timeout"
	ConnectionError CallErrorCode = "connection"
	StatusError     CallErrorCode = "unexpected-status"
)

// CallError classifies a failed API call. It is an error so it can propagate
// uncaught to fail the enclosing test case.
type CallError struct {
	Code    CallErrorCode `json:"code"`
	Message string        `json:"message"`
}

func (e CallError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewTimeoutError(msg string) CallError {
	return CallError{Code: TimeoutError, Message: msg}
}

func NewConnectionError(msg string) CallError {
	return CallError{Code: ConnectionError, Message: msg}
}

func NewStatusError(msg string) CallError {
	return CallError{Code: StatusError, Message: msg}
}

// CallRecord is one captured request/response pair.
type CallRecord struct {
	Name            string        `json:"name"`
	StartDateTime   time.Time     `json:"startDateTime"`
	Duration        time.Duration `json:"duration"`
	Method          string        `json:"method"`
	URL             string        `json:"url"`
	RequestBody     string        `json:"requestBody"`
	RequestHeaders  http.Header   `json:"requestHeaders"`
	StatusCode      int           `json:"statusCode"`
	ResponseBody    string        `json:"responseBody"`
	ResponseHeaders http.Header   `json:"responseHeaders"`
}

// Recording accumulates every request/response a client issued so that a
// failing scenario can be reconstructed without re-running it. Single writer
// per client instance, guarded anyway for parallel subtests sharing a client.
type Recording struct {
	records []CallRecord
	sync.Mutex
}

func NewRecording() *Recording {
	return &Recording{records: []CallRecord{}}
}

func (r *Recording) FinishedCall(record CallRecord) {
	r.Lock()
	r.records = append(r.records, record)
	r.Unlock()
}

func (r *Recording) Calls() []CallRecord {
	r.Lock()
	defer r.Unlock()

	out := make([]CallRecord, len(r.records))
	copy(out, r.records)

	return out
}

// Last returns the most recent record, if any.
func (r *Recording) Last() (CallRecord, bool) {
	r.Lock()
	defer r.Unlock()

	if len(r.records) == 0 {
		return CallRecord{}, false
	}

	return r.records[len(r.records)-1], true
}
