// Package client implements the connection and call-dispatch engine for the
// mirai-api-http backend: one supervised WebSocket session per account, a
// correlation table for in-flight calls, response validation, and the event
// decode/dispatch path. The typed operation wrappers live in internal/bot
// and call into this package.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hibari-bot/hibari/internal/event"
)

const (
	defaultBackoff  = 5 * time.Second
	defaultGrace    = 10 * time.Second
	unsolicitedSync = "#"
)

// AccountInfo is the transport configuration of one account.
type AccountInfo struct {
	Host      string
	Port      int
	Account   int64
	VerifyKey string

	// OnlyWS routes API calls over the WebSocket session instead of HTTP.
	// Multipart calls still go over HTTP: the socket cannot carry
	// multipart bodies.
	OnlyWS bool
}

// wsURL is the event/command socket endpoint.
func (i AccountInfo) wsURL() string {
	q := url.Values{}
	q.Set("verifyKey", i.VerifyKey)
	q.Set("qq", fmt.Sprintf("%d", i.Account))
	return fmt.Sprintf("ws://%s:%d/all?%s", i.Host, i.Port, q.Encode())
}

// apiURL is the HTTP endpoint for an action path.
func (i AccountInfo) apiURL(path string) string {
	return fmt.Sprintf("http://%s:%d/%s", i.Host, i.Port, path)
}

// Handler receives connection lifecycle transitions and decoded events.
// Implementations must not block HandleEvent for long; the client already
// runs each event on its own goroutine, but a stuck handler still leaks
// goroutines.
type Handler interface {
	BotConnected(account int64)
	BotDisconnected(account int64)
	HandleEvent(account int64, ev event.Event)
}

// conn is the mutable per-account state: the live session, the session
// credential, and the pending-request table. Session and session key are
// written only by the account's supervisor goroutine; the call router reads
// them under the lock.
type conn struct {
	info       AccountInfo
	correlator *correlator

	mu         sync.RWMutex
	sess       *session
	sessionKey string
}

func newConn(info AccountInfo) *conn {
	return &conn{info: info, correlator: newCorrelator()}
}

func (c *conn) setSession(s *session) {
	c.mu.Lock()
	c.sess = s
	c.mu.Unlock()
}

func (c *conn) liveSession() *session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess
}

func (c *conn) setSessionKey(key string) {
	c.mu.Lock()
	c.sessionKey = key
	c.mu.Unlock()
}

func (c *conn) getSessionKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionKey
}

// Client manages every configured account connection. Create one with New,
// then Run it; API calls go through Call while Run is active.
type Client struct {
	handler Handler
	logger  zerolog.Logger
	http    *httpCaller

	// Backoff is the delay between reconnect attempts. Grace bounds how
	// long Run waits for supervisors to unwind at shutdown.
	Backoff time.Duration
	Grace   time.Duration

	mu    sync.RWMutex
	conns map[int64]*conn
	wg    sync.WaitGroup
}

// New creates a client. The handler receives online/offline transitions and
// decoded events for every account.
func New(handler Handler, logger zerolog.Logger) *Client {
	return &Client{
		handler: handler,
		logger:  logger,
		http:    newHTTPCaller(),
		Backoff: defaultBackoff,
		Grace:   defaultGrace,
		conns:   make(map[int64]*conn),
	}
}

// Run starts one supervisor per account and blocks until ctx is cancelled.
// Shutdown gives the supervisors a bounded grace period to unwind; the
// underlying sockets are closed either way.
func (c *Client) Run(ctx context.Context, accounts []AccountInfo) error {
	if len(accounts) == 0 {
		return fmt.Errorf("no accounts configured")
	}

	c.mu.Lock()
	for _, info := range accounts {
		if _, ok := c.conns[info.Account]; ok {
			c.mu.Unlock()
			return fmt.Errorf("account %d configured twice", info.Account)
		}
		c.conns[info.Account] = newConn(info)
	}
	conns := make([]*conn, 0, len(c.conns))
	for _, cn := range c.conns {
		conns = append(conns, cn)
	}
	c.mu.Unlock()

	for _, cn := range conns {
		c.wg.Add(1)
		go func(cn *conn) {
			defer c.wg.Done()
			c.supervise(ctx, cn)
		}(cn)
	}

	<-ctx.Done()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.Grace):
		c.logger.Warn().Msg("Shutdown grace period expired, abandoning supervisors")
	}
	return nil
}

// supervise holds one account online forever: dial, serve, tear down,
// back off, repeat. Only ctx cancellation ends it.
func (c *Client) supervise(ctx context.Context, cn *conn) {
	logger := c.logger.With().Int64("account", cn.info.Account).Logger()
	for {
		err := c.runSession(ctx, cn, logger)
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Dur("backoff", c.Backoff).Msg("Connection lost, reconnecting")
		select {
		case <-time.After(c.Backoff):
		case <-ctx.Done():
			return
		}
	}
}

// runSession establishes one session and serves its receive loop until the
// loop fails. Teardown (clear the session handle and credential, fail
// pending requests, signal offline) is guaranteed on every exit path.
func (c *Client) runSession(ctx context.Context, cn *conn, logger zerolog.Logger) error {
	logger.Debug().Str("url", cn.info.wsURL()).Msg("Connecting")
	sess, err := dialSession(ctx, cn.info.wsURL())
	if err != nil {
		return err
	}

	// Unblock the reader when the process shuts down.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			sess.close()
		case <-watchDone:
		}
	}()
	defer sess.close()

	cn.setSession(sess)
	defer func() {
		cn.setSession(nil)
		cn.setSessionKey("")
		cn.correlator.failAll(ErrConnectionClosed)
	}()

	c.handler.BotConnected(cn.info.Account)
	defer c.handler.BotDisconnected(cn.info.Account)
	logger.Info().Msg("Connected")

	return c.receiveLoop(cn, logger)
}

// receiveLoop is the single reader of a session. Frames are classified in
// arrival order: session-credential announcement, correlated response,
// event, or noise. Event handling runs on its own goroutine per event so a
// slow handler never stalls the loop.
func (c *Client) receiveLoop(cn *conn, logger zerolog.Logger) error {
	for {
		frame, err := cn.liveSession().readFrame()
		if err != nil {
			return err
		}

		syncID := frame.SyncID
		if syncID == "" {
			syncID = unsolicitedSync
		}

		// A top-level status code means the backend rejected the frame
		// exchange itself (for example a bad verify key). If a call is
		// waiting on this syncId it gets the failure; either way the
		// loop continues.
		if frame.Code != nil && *frame.Code != 0 && *frame.Code != 200 {
			apiErr := newAPIError(*frame.Code, frame.Msg, "")
			if !cn.correlator.fail(syncID, apiErr) {
				logger.Warn().Int("code", *frame.Code).Str("msg", frame.Msg).
					Msg("Backend reported frame-level error")
			}
			continue
		}

		payload, apiErr := CheckResponse(frame.Data)
		if apiErr != nil {
			if !cn.correlator.fail(syncID, apiErr) {
				logger.Warn().Err(apiErr).Msg("Unsolicited error response dropped")
			}
			continue
		}

		var probe struct {
			Session string `json:"session"`
			Type    string `json:"type"`
		}
		_ = json.Unmarshal(payload, &probe)

		if probe.Session != "" {
			cn.setSessionKey(probe.Session)
			logger.Info().Msg("Session key acquired")
			continue
		}

		if cn.correlator.resolve(syncID, payload) {
			continue
		}

		if probe.Type == "" {
			continue
		}

		ev, err := event.Decode(probe.Type, payload)
		if err != nil {
			logger.Warn().Err(err).Str("type", probe.Type).Msg("Dropping undecodable event")
			continue
		}
		if _, ok := ev.(*event.Generic); ok {
			logger.Warn().Str("type", probe.Type).Msg("Received unsupported event")
		}
		go c.handler.HandleEvent(cn.info.Account, ev)
	}
}

// lookup finds the connection state for an account.
func (c *Client) lookup(account int64) (*conn, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cn, ok := c.conns[account]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAccount, account)
	}
	return cn, nil
}
