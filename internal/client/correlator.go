package client

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// callResult is what a pending request resolves to.
type callResult struct {
	payload json.RawMessage
	err     error
}

// correlator matches response frames to the calls awaiting them. Tokens are
// UUIDs, so they are collision-free among outstanding requests without any
// coordination.
//
// Ownership of an entry is deliberately weak: resolve and fail delete the
// entry before delivering, and the awaiting caller removes its own entry on
// every exit path (including abandonment), so a late response for a token
// that nobody awaits anymore is simply dropped.
type correlator struct {
	mu      sync.Mutex
	pending map[string]chan callResult
}

func newCorrelator() *correlator {
	return &correlator{pending: make(map[string]chan callResult)}
}

// register creates a pending slot and returns its token. The channel is
// buffered so resolution never blocks the receive loop, even if the caller
// already gave up.
func (c *correlator) register() (string, <-chan callResult) {
	token := uuid.NewString()
	ch := make(chan callResult, 1)
	c.mu.Lock()
	c.pending[token] = ch
	c.mu.Unlock()
	return token, ch
}

// resolve delivers a payload to the pending request for token, if one is
// still registered. Resolving the same token twice is a no-op the second
// time.
func (c *correlator) resolve(token string, payload json.RawMessage) bool {
	return c.deliver(token, callResult{payload: payload})
}

// fail delivers an error to the pending request for token.
func (c *correlator) fail(token string, err error) bool {
	return c.deliver(token, callResult{err: err})
}

func (c *correlator) deliver(token string, result callResult) bool {
	c.mu.Lock()
	ch, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	ch <- result
	return true
}

// remove drops the entry for token without delivering anything. Called by
// the awaiting side when it stops waiting.
func (c *correlator) remove(token string) {
	c.mu.Lock()
	delete(c.pending, token)
	c.mu.Unlock()
}

// has reports whether a pending request exists for token.
func (c *correlator) has(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[token]
	return ok
}

// failAll fails every outstanding request, used when the session that the
// responses would have arrived on is gone.
func (c *correlator) failAll(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan callResult)
	c.mu.Unlock()
	for _, ch := range pending {
		ch <- callResult{err: err}
	}
}

// size returns the number of outstanding requests.
func (c *correlator) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
