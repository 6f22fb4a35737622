package client

import (
	"context"
	"encoding/json"
)

// CallMethod selects how an action's parameters travel.
type CallMethod string

const (
	MethodGet       CallMethod = "get"
	MethodPost      CallMethod = "post"
	MethodMultipart CallMethod = "multipart"
)

// subCommandFor maps the call method to the frame subCommand. Read-style
// commands keep their method name; writes go out as "update".
func subCommandFor(method CallMethod) string {
	if method == MethodPost {
		return "update"
	}
	return string(method)
}

// Call performs one API action against an account's backend and returns the
// validated response payload. Transport selection follows the account
// configuration: HTTP by default, the WebSocket session when OnlyWS is set.
// Multipart uploads always use HTTP.
//
// requireSession attaches the session credential; the handful of
// session-free actions (about, botList) pass false.
func (c *Client) Call(ctx context.Context, account int64, action string, method CallMethod, params map[string]any, requireSession bool) (json.RawMessage, error) {
	cn, err := c.lookup(account)
	if err != nil {
		return nil, err
	}

	if cn.info.OnlyWS && method != MethodMultipart {
		return c.callWS(ctx, cn, action, method, params, requireSession)
	}
	return c.http.call(ctx, cn, action, method, params, requireSession)
}

// callWS sends the action as a correlated frame over the live session and
// waits for its response.
func (c *Client) callWS(ctx context.Context, cn *conn, action string, method CallMethod, params map[string]any, requireSession bool) (json.RawMessage, error) {
	sess := cn.liveSession()
	if sess == nil {
		return nil, ErrNotConnected
	}

	frame := &outboundFrame{
		Command:    action,
		SubCommand: subCommandFor(method),
		Content:    encodeParams(params),
	}
	if requireSession {
		key := cn.getSessionKey()
		if key == "" {
			return nil, ErrNoSession
		}
		frame.SessionKey = key
	}

	token, ch := cn.correlator.register()
	defer cn.correlator.remove(token)
	frame.SyncID = token

	// Teardown clears the session handle before failing the pending
	// table, so a slot registered against a session that is no longer
	// installed would never be failed. Re-check after registering.
	if cn.liveSession() != sess {
		return nil, ErrConnectionClosed
	}

	if err := sess.writeFrame(frame); err != nil {
		return nil, err
	}

	select {
	case result := <-ch:
		return result.payload, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ParamEncoder lets a struct parameter render itself as the wire object
// sent under its parameter key.
type ParamEncoder interface {
	EncodeParams() map[string]any
}

// encodeParams prepares call content: nil values are dropped and
// ParamEncoder values are flattened in place.
func encodeParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		if enc, ok := v.(ParamEncoder); ok {
			out[k] = enc.EncodeParams()
			continue
		}
		out[k] = v
	}
	return out
}
