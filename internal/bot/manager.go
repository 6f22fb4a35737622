// Package bot exposes the account-facing API: a Manager that tracks which
// accounts are online and fans out decoded events, and a Bot with one typed
// method per backend operation.
package bot

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hibari-bot/hibari/internal/client"
	"github.com/hibari-bot/hibari/internal/event"
)

// caller is the slice of the connection engine the API wrappers need.
// Keeping it narrow lets tests drive a Bot with a recording fake.
type caller interface {
	Call(ctx context.Context, account int64, action string, method client.CallMethod, params map[string]any, requireSession bool) (json.RawMessage, error)
}

// EventFunc handles one decoded event for one bot.
type EventFunc func(b *Bot, ev event.Event)

// Manager tracks the Bot instances behind a client's connections. It is the
// client's Handler: connection transitions flip bot online state, and
// pushed events fan out to every subscriber.
type Manager struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	caller   caller
	bots     map[int64]*Bot
	handlers []EventFunc
}

func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		logger: logger,
		bots:   make(map[int64]*Bot),
	}
}

// Bind attaches the connection engine the bots call through. Must happen
// before the client runs.
func (m *Manager) Bind(c caller) {
	m.mu.Lock()
	m.caller = c
	m.mu.Unlock()
}

// OnEvent registers a subscriber for every event from every bot. Each event
// already arrives on its own goroutine; subscribers run sequentially within
// it.
func (m *Manager) OnEvent(fn EventFunc) {
	m.mu.Lock()
	m.handlers = append(m.handlers, fn)
	m.mu.Unlock()
}

// Bot returns the bot for an account, if it has ever connected.
func (m *Manager) Bot(account int64) (*Bot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bots[account]
	return b, ok
}

// Bots returns every known bot.
func (m *Manager) Bots() []*Bot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Bot, 0, len(m.bots))
	for _, b := range m.bots {
		out = append(out, b)
	}
	return out
}

// BotConnected creates the bot on first connect and reuses the same
// instance on reconnects, so handler closures holding a *Bot stay valid
// across connection churn.
func (m *Manager) BotConnected(account int64) {
	m.mu.Lock()
	b, ok := m.bots[account]
	if !ok {
		b = &Bot{Account: account, caller: m.caller}
		m.bots[account] = b
	}
	m.mu.Unlock()

	b.setOnline(true)
	m.logger.Info().Int64("account", account).Msg("Bot online")
}

func (m *Manager) BotDisconnected(account int64) {
	m.mu.RLock()
	b, ok := m.bots[account]
	m.mu.RUnlock()
	if ok {
		b.setOnline(false)
	}
	m.logger.Info().Int64("account", account).Msg("Bot offline")
}

// HandleEvent dispatches one decoded event to every subscriber.
func (m *Manager) HandleEvent(account int64, ev event.Event) {
	m.mu.RLock()
	b, ok := m.bots[account]
	handlers := m.handlers
	m.mu.RUnlock()
	if !ok {
		return
	}
	for _, fn := range handlers {
		fn(b, ev)
	}
}

// Bot is one account's API surface. All methods go through the connection
// engine; they are safe for concurrent use.
type Bot struct {
	Account int64

	caller caller

	mu     sync.RWMutex
	online bool
}

func (b *Bot) setOnline(v bool) {
	b.mu.Lock()
	b.online = v
	b.mu.Unlock()
}

// Online reports whether the account currently has a live connection.
func (b *Bot) Online() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.online
}

// call performs one session-scoped action and decodes the payload into out
// when out is non-nil.
func (b *Bot) call(ctx context.Context, action string, method client.CallMethod, params map[string]any, out any) error {
	return b.callOpt(ctx, action, method, params, true, out)
}

func (b *Bot) callOpt(ctx context.Context, action string, method client.CallMethod, params map[string]any, requireSession bool, out any) error {
	payload, err := b.caller.Call(ctx, b.Account, action, method, params, requireSession)
	if err != nil {
		return err
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, out)
}
