package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

const (
	argActingUserID = "acting_user_id"
	argPayload      = "payload"
)

// Request is one tool invocation. Named fields are parsed out of Raw; Raw
// itself is kept untouched so unknown keys are echoed back.
type Request struct {
	ActingUserID string
	Payload      json.RawMessage
	Raw          json.RawMessage

	// actingUserMalformed marks a truthy acting_user_id that is not a string.
	actingUserMalformed bool
}

// ParseRequest decodes a JSON argument object. Empty input means {}.
func ParseRequest(raw json.RawMessage) (Request, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Request{}, fmt.Errorf("%w: arguments must be a json object", ErrToolValidationFailed)
	}

	compacted := &bytes.Buffer{}
	if err := json.Compact(compacted, raw); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrToolValidationFailed, err)
	}

	req := Request{Raw: compacted.Bytes(), Payload: fields[argPayload]}
	if v, ok := fields[argActingUserID]; ok && truthy(v) {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			req.actingUserMalformed = true
		} else {
			req.ActingUserID = s
		}
	}
	return req, nil
}

// HasActingUser reports whether the caller named a user.
func (r Request) HasActingUser() bool {
	return r.ActingUserID != "" || r.actingUserMalformed
}

// checkActingUser halts when the named acting user does not exist.
func (r Request) checkActingUser(store *payroll.Dataset) error {
	if !r.HasActingUser() {
		return nil
	}
	if r.actingUserMalformed || !store.Users.Has(r.ActingUserID) {
		return &HaltError{Reason: "Invalid acting user"}
	}
	return nil
}

// truthy treats null, false, zero, "" and empty containers as absent.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch {
	case len(v) == 0, bytes.Equal(v, []byte("null")), bytes.Equal(v, []byte("false")):
		return false
	case v[0] == '"':
		var s string
		return json.Unmarshal(v, &s) == nil && s != ""
	case v[0] == '[':
		var arr []json.RawMessage
		return json.Unmarshal(v, &arr) == nil && len(arr) > 0
	case v[0] == '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(v, &obj) == nil && len(obj) > 0
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil {
		return f != 0
	}
	return true
}
