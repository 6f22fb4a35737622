package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibari-bot/hibari/internal/event"
)

// fakeBackend is a minimal in-process stand-in for the remote endpoint: it
// upgrades /all, performs the session handshake, and hands every request
// frame to onFrame.
type fakeBackend struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	// rejectDials makes that many dial attempts fail before accepting.
	rejectDials int32

	onFrame func(conn *websocket.Conn, frame outboundFrame)

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{t: t}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	if atomic.AddInt32(&b.rejectDials, -1) >= 0 {
		http.Error(w, "not yet", http.StatusServiceUnavailable)
		return
	}
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.mu.Lock()
	b.conns = append(b.conns, conn)
	b.mu.Unlock()

	err = conn.WriteJSON(map[string]any{
		"syncId": "",
		"data":   map[string]any{"code": 0, "session": "test-session"},
	})
	if err != nil {
		return
	}

	for {
		var frame outboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if b.onFrame != nil {
			b.onFrame(conn, frame)
		}
	}
}

// push sends an unsolicited frame on the most recent connection.
func (b *fakeBackend) push(frame map[string]any) {
	b.mu.Lock()
	conn := b.conns[len(b.conns)-1]
	b.mu.Unlock()
	require.NoError(b.t, conn.WriteJSON(frame))
}

func (b *fakeBackend) account(onlyWS bool) AccountInfo {
	u, err := url.Parse(b.srv.URL)
	require.NoError(b.t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(b.t, err)
	return AccountInfo{
		Host:      u.Hostname(),
		Port:      port,
		Account:   123456,
		VerifyKey: "verify-key",
		OnlyWS:    onlyWS,
	}
}

// recordingHandler counts transitions and collects events.
type recordingHandler struct {
	mu           sync.Mutex
	connected    int
	disconnected int

	connectedCh chan struct{}
	eventCh     chan event.Event
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		connectedCh: make(chan struct{}, 16),
		eventCh:     make(chan event.Event, 16),
	}
}

func (h *recordingHandler) BotConnected(account int64) {
	h.mu.Lock()
	h.connected++
	h.mu.Unlock()
	h.connectedCh <- struct{}{}
}

func (h *recordingHandler) BotDisconnected(account int64) {
	h.mu.Lock()
	h.disconnected++
	h.mu.Unlock()
}

func (h *recordingHandler) HandleEvent(account int64, ev event.Event) {
	h.eventCh <- ev
}

func (h *recordingHandler) counts() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connected, h.disconnected
}

func startClient(t *testing.T, backend *fakeBackend, handler Handler, onlyWS bool) (*Client, context.CancelFunc) {
	c := New(handler, zerolog.Nop())
	c.Backoff = 10 * time.Millisecond
	c.Grace = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = c.Run(ctx, []AccountInfo{backend.account(onlyWS)})
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Error("client did not shut down")
		}
	})
	return c, cancel
}

// waitForSession blocks until the account finished the session handshake.
func waitForSession(t *testing.T, c *Client, account int64) *conn {
	// Run registers the account on its own goroutine; wait for that before
	// asserting on the connection state.
	var cn *conn
	require.Eventually(t, func() bool {
		var err error
		cn, err = c.lookup(account)
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return cn.getSessionKey() != ""
	}, 2*time.Second, 5*time.Millisecond)
	return cn
}

func TestSessionHandshake(t *testing.T) {
	backend := newFakeBackend(t)
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, false)

	<-handler.connectedCh
	cn := waitForSession(t, c, 123456)
	assert.Equal(t, "test-session", cn.getSessionKey())
}

func TestEventDispatch(t *testing.T) {
	backend := newFakeBackend(t)
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, false)
	waitForSession(t, c, 123456)

	backend.push(map[string]any{
		"syncId": "#",
		"data": map[string]any{
			"type": "FriendMessage",
			"sender": map[string]any{
				"id": 789, "nickname": "alice", "remark": "",
			},
			"messageChain": []map[string]any{
				{"type": "Source", "id": 1, "time": 1700000000},
				{"type": "Plain", "text": "hello"},
			},
		},
	})

	select {
	case ev := <-handler.eventCh:
		msg, ok := ev.(*event.FriendMessage)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, int64(789), msg.Sender.ID)
		assert.Equal(t, "hello", msg.Chain.String())
	case <-time.After(2 * time.Second):
		t.Fatal("no event dispatched")
	}
}

func TestUnknownEventBecomesGeneric(t *testing.T) {
	backend := newFakeBackend(t)
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, false)
	waitForSession(t, c, 123456)

	backend.push(map[string]any{
		"syncId": "#",
		"data":   map[string]any{"type": "SomeFutureEvent", "detail": 1},
	})

	select {
	case ev := <-handler.eventCh:
		gen, ok := ev.(*event.Generic)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, "SomeFutureEvent", gen.EventType())
	case <-time.After(2 * time.Second):
		t.Fatal("no event dispatched")
	}
}

func TestCallOverWebSocket(t *testing.T) {
	backend := newFakeBackend(t)
	backend.onFrame = func(conn *websocket.Conn, frame outboundFrame) {
		require.Equal(t, "friendList", frame.Command)
		require.Equal(t, "get", frame.SubCommand)
		require.Equal(t, "test-session", frame.SessionKey)
		_ = conn.WriteJSON(map[string]any{
			"syncId": frame.SyncID,
			"data": map[string]any{
				"code": 0,
				"data": []map[string]any{{"id": 1, "nickname": "alice", "remark": ""}},
			},
		})
	}
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, true)
	cn := waitForSession(t, c, 123456)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	payload, err := c.Call(ctx, 123456, "friendList", MethodGet, nil, true)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1, "nickname": "alice", "remark": ""}]`, string(payload))

	// The pending slot is gone once the call returned.
	assert.Equal(t, 0, cn.correlator.size())
}

func TestCallOverWebSocketPostBecomesUpdate(t *testing.T) {
	backend := newFakeBackend(t)
	var gotSub atomic.Value
	backend.onFrame = func(conn *websocket.Conn, frame outboundFrame) {
		gotSub.Store(frame.SubCommand)
		_ = conn.WriteJSON(map[string]any{
			"syncId": frame.SyncID,
			"data":   map[string]any{"code": 0, "messageId": 99},
		})
	}
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, true)
	waitForSession(t, c, 123456)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	payload, err := c.Call(ctx, 123456, "sendFriendMessage", MethodPost, map[string]any{
		"target":       int64(789),
		"messageChain": []map[string]any{{"type": "Plain", "text": "hi"}},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "update", gotSub.Load())

	var receipt struct {
		MessageID int64 `json:"messageId"`
	}
	require.NoError(t, json.Unmarshal(payload, &receipt))
	assert.Equal(t, int64(99), receipt.MessageID)
}

func TestCallErrorCode(t *testing.T) {
	backend := newFakeBackend(t)
	backend.onFrame = func(conn *websocket.Conn, frame outboundFrame) {
		_ = conn.WriteJSON(map[string]any{
			"syncId": frame.SyncID,
			"data":   map[string]any{"code": 3, "msg": "session expired"},
		})
	}
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, true)
	waitForSession(t, c, 123456)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.Call(ctx, 123456, "friendList", MethodGet, nil, true)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindInvalidSession, apiErr.Kind)
	assert.Equal(t, 3, apiErr.Code)
}

func TestCallPreconditions(t *testing.T) {
	c := New(newRecordingHandler(), zerolog.Nop())
	info := AccountInfo{Host: "localhost", Port: 1, Account: 123456, OnlyWS: true}
	cn := newConn(info)
	c.conns[info.Account] = cn

	// No live session yet.
	_, err := c.Call(context.Background(), 123456, "friendList", MethodGet, nil, true)
	assert.ErrorIs(t, err, ErrNotConnected)

	// Connected but the handshake has not delivered a session key.
	cn.setSession(&session{})
	_, err = c.Call(context.Background(), 123456, "friendList", MethodGet, nil, true)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCallUnknownAccount(t *testing.T) {
	backend := newFakeBackend(t)
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, true)
	<-handler.connectedCh

	_, err := c.Call(context.Background(), 999, "friendList", MethodGet, nil, true)
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestTeardownFailsRacingCalls(t *testing.T) {
	// A call that captures the live session just before teardown must
	// still fail promptly: either the stale-session re-check, the
	// pending-table sweep, or the write on the closed socket catches it.
	// No interleaving may leave the call waiting out its context.
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()
	wsEndpoint := "ws" + srv.URL[len("http"):]

	c := New(newRecordingHandler(), zerolog.Nop())
	info := AccountInfo{Host: "localhost", Port: 1, Account: 123456, OnlyWS: true}
	cn := newConn(info)
	c.conns[info.Account] = cn

	for i := 0; i < 50; i++ {
		sess, err := dialSession(context.Background(), wsEndpoint)
		require.NoError(t, err)
		cn.setSession(sess)
		cn.setSessionKey("test-session")

		errCh := make(chan error, 1)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := c.Call(ctx, 123456, "friendList", MethodGet, nil, true)
			errCh <- err
		}()

		go func() {
			cn.setSession(nil)
			cn.setSessionKey("")
			cn.correlator.failAll(ErrConnectionClosed)
			sess.close()
		}()

		err = <-errCh
		require.Error(t, err)
		require.NotErrorIs(t, err, context.DeadlineExceeded, "call was left pending past teardown")
		assert.Equal(t, 0, cn.correlator.size())
	}
}

func TestReconnectAfterFailures(t *testing.T) {
	backend := newFakeBackend(t)
	backend.rejectDials = 3
	handler := newRecordingHandler()
	c, _ := startClient(t, backend, handler, false)

	<-handler.connectedCh
	waitForSession(t, c, 123456)

	connected, _ := handler.counts()
	assert.Equal(t, 1, connected)
}

func TestShutdownSignalsOffline(t *testing.T) {
	backend := newFakeBackend(t)
	handler := newRecordingHandler()
	_, cancel := startClient(t, backend, handler, false)

	<-handler.connectedCh
	cancel()

	require.Eventually(t, func() bool {
		_, disconnected := handler.counts()
		return disconnected == 1
	}, 2*time.Second, 5*time.Millisecond)
}
