package client

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// responseEnvelope is the decoded shape CheckResponse inspects. A response
// body either carries the payload directly or nests it under "data".
type responseEnvelope struct {
	Code *int            `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// CheckResponse validates a response body and returns the payload, or the
// backend failure as a value so the caller can branch without treating it
// as control flow. The receive loop uses this form: a failed response must
// resolve the matching pending request, not abort the loop.
//
// A body with no "code" field, or code 0 or 200, is a success; the payload
// is the nested "data" field when present, otherwise the body itself. A
// bare integer body is treated as a status code with no payload.
func CheckResponse(raw json.RawMessage) (json.RawMessage, *APIError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if code, err := strconv.Atoi(string(trimmed)); err == nil {
		if code == 0 || code == 200 {
			return raw, nil
		}
		return nil, newAPIError(code, "", string(trimmed))
	}

	var env responseEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		// Not an object (e.g. an array payload): nothing to validate.
		return raw, nil
	}
	if env.Code == nil || *env.Code == 0 || *env.Code == 200 {
		if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
			return env.Data, nil
		}
		return raw, nil
	}
	return nil, newAPIError(*env.Code, env.Msg, string(trimmed))
}

// ValidateResponse is the propagating form of CheckResponse used by the
// call router: a backend failure comes back as an error.
func ValidateResponse(raw json.RawMessage) (json.RawMessage, error) {
	payload, apiErr := CheckResponse(raw)
	if apiErr != nil {
		return nil, apiErr
	}
	return payload, nil
}
