package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// inboundFrame is a decoded WebSocket frame from the backend. A frame is
// either a session-credential announcement, a correlated response, or an
// event push; Data stays raw until the receive loop classifies it.
type inboundFrame struct {
	SyncID string          `json:"syncId"`
	Code   *int            `json:"code,omitempty"`
	Msg    string          `json:"msg,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// outboundFrame is a correlated API request written to the socket.
type outboundFrame struct {
	SyncID     string         `json:"syncId"`
	Command    string         `json:"command"`
	SubCommand string         `json:"subCommand"`
	Content    map[string]any `json:"content"`
	SessionKey string         `json:"sessionKey,omitempty"`
}

// session owns one live WebSocket connection. Reads happen from a single
// goroutine (the receive loop); writes are serialized by a mutex because
// the call router writes from caller goroutines.
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// dialSession opens the WebSocket connection for an account.
func dialSession(ctx context.Context, url string) (*session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &session{conn: conn}, nil
}

// readFrame blocks until the next complete frame arrives. A frame that is
// not valid JSON is a fatal session error: the caller reconnects.
func (s *session) readFrame() (*inboundFrame, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &frame, nil
}

// writeFrame serializes and sends one request frame.
func (s *session) writeFrame(frame *outboundFrame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(frame)
}

// close tears the connection down. Safe to call more than once; it also
// unblocks a reader stuck in readFrame.
func (s *session) close() {
	_ = s.conn.Close()
}
