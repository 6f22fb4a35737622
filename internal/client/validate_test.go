package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResponseSuccess(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no code field", `{"messageId": 42}`, `{"messageId": 42}`},
		{"code zero", `{"code": 0, "msg": "success"}`, `{"code": 0, "msg": "success"}`},
		{"code two hundred", `{"code": 200}`, `{"code": 200}`},
		{"nested data", `{"code": 0, "data": [{"id": 1}]}`, `[{"id": 1}]`},
		{"array body", `[{"id": 1}]`, `[{"id": 1}]`},
		{"bare zero", `0`, `0`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload, apiErr := CheckResponse(json.RawMessage(tc.body))
			require.Nil(t, apiErr)
			assert.JSONEq(t, tc.want, string(payload))
		})
	}
}

func TestCheckResponseNilBody(t *testing.T) {
	payload, apiErr := CheckResponse(nil)
	assert.Nil(t, apiErr)
	assert.Nil(t, payload)

	payload, apiErr = CheckResponse(json.RawMessage(`null`))
	assert.Nil(t, apiErr)
	assert.Nil(t, payload)
}

func TestCheckResponseCodeTable(t *testing.T) {
	tests := []struct {
		code int
		kind FailureKind
	}{
		{1, KindInvalidVerifyKey},
		{2, KindAccountNotFound},
		{3, KindInvalidSession},
		{4, KindUnverifiedSession},
		{5, KindUnknownTarget},
		{6, KindFileNotFound},
		{10, KindPermissionDenied},
		{20, KindAccountMuted},
		{30, KindMessageTooLong},
		{400, KindInvalidOperation},
		{500, KindRemote},
	}
	for _, tc := range tests {
		body := json.RawMessage([]byte(`{"code": ` + jsonInt(tc.code) + `, "msg": "nope"}`))
		_, apiErr := CheckResponse(body)
		require.NotNil(t, apiErr, "code %d", tc.code)
		assert.Equal(t, tc.kind, apiErr.Kind, "code %d", tc.code)
		assert.Equal(t, tc.code, apiErr.Code)
		assert.Equal(t, "nope", apiErr.Message)
	}
}

func TestCheckResponseUnknownCode(t *testing.T) {
	_, apiErr := CheckResponse(json.RawMessage(`{"code": 999, "msg": "strange"}`))
	require.NotNil(t, apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	assert.Equal(t, 999, apiErr.Code)
	assert.Contains(t, apiErr.Content, `"code": 999`)
}

func TestCheckResponseBareIntCode(t *testing.T) {
	_, apiErr := CheckResponse(json.RawMessage(`3`))
	require.NotNil(t, apiErr)
	assert.Equal(t, KindInvalidSession, apiErr.Kind)
}

func TestValidateResponsePropagates(t *testing.T) {
	_, err := ValidateResponse(json.RawMessage(`{"code": 10, "msg": "denied"}`))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindPermissionDenied, apiErr.Kind)

	payload, err := ValidateResponse(json.RawMessage(`{"code": 0, "data": {"ok": true}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(payload))
}

func jsonInt(n int) string {
	data, _ := json.Marshal(n)
	return string(data)
}
