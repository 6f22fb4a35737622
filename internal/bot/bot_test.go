package bot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibari-bot/hibari/internal/client"
	"github.com/hibari-bot/hibari/internal/event"
	"github.com/hibari-bot/hibari/internal/message"
	"github.com/hibari-bot/hibari/internal/model"
)

// fakeCaller records the last call and plays back a canned response.
type fakeCaller struct {
	mu sync.Mutex

	account        int64
	action         string
	method         client.CallMethod
	params         map[string]any
	requireSession bool

	payload json.RawMessage
	err     error
}

func (f *fakeCaller) Call(ctx context.Context, account int64, action string, method client.CallMethod, params map[string]any, requireSession bool) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.account = account
	f.action = action
	f.method = method
	f.params = params
	f.requireSession = requireSession
	return f.payload, f.err
}

func newTestBot(payload string) (*Bot, *fakeCaller) {
	caller := &fakeCaller{payload: json.RawMessage(payload)}
	return &Bot{Account: 123456, caller: caller}, caller
}

func TestSendFriendMessage(t *testing.T) {
	b, caller := newTestBot(`{"code": 0, "messageId": 42}`)

	id, err := b.SendFriendMessage(context.Background(), 789, message.Text("hi"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	assert.Equal(t, "sendFriendMessage", caller.action)
	assert.Equal(t, client.MethodPost, caller.method)
	assert.Equal(t, int64(789), caller.params["target"])
	assert.NotContains(t, caller.params, "quote")
	assert.True(t, caller.requireSession)
}

func TestSendGroupMessageWithQuote(t *testing.T) {
	b, caller := newTestBot(`{"code": 0, "messageId": 43}`)

	chain := message.NewChain(
		message.Source(40, 1700000000),
		message.Plain("reply"),
	)
	_, err := b.SendGroupMessage(context.Background(), 111, chain, 40)
	require.NoError(t, err)

	assert.Equal(t, int64(40), caller.params["quote"])

	// Source metadata is stripped before sending.
	sent, ok := caller.params["messageChain"].(message.Chain)
	require.True(t, ok)
	assert.False(t, sent.Has(message.TypeSource))
}

func TestSendTempMessage(t *testing.T) {
	b, caller := newTestBot(`{"code": 0, "messageId": 44}`)

	_, err := b.SendTempMessage(context.Background(), 111, 789, message.Text("psst"), 0)
	require.NoError(t, err)

	assert.Equal(t, "sendTempMessage", caller.action)
	assert.Equal(t, int64(111), caller.params["group"])
	assert.Equal(t, int64(789), caller.params["qq"])
}

func TestFriendList(t *testing.T) {
	b, caller := newTestBot(`[{"id": 1, "nickname": "alice", "remark": "al"}]`)

	friends, err := b.FriendList(context.Background())
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "alice", friends[0].Nickname)

	assert.Equal(t, "friendList", caller.action)
	assert.Equal(t, client.MethodGet, caller.method)
}

func TestMemberList(t *testing.T) {
	b, caller := newTestBot(`[{"id": 789, "memberName": "alice", "permission": "ADMINISTRATOR", "group": {"id": 111, "name": "testers", "permission": "MEMBER"}}]`)

	members, err := b.MemberList(context.Background(), 111)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, model.PermAdministrator, members[0].Permission)
	assert.Equal(t, int64(111), caller.params["target"])
}

func TestMute(t *testing.T) {
	b, caller := newTestBot(`{"code": 0, "msg": "success"}`)

	require.NoError(t, b.Mute(context.Background(), 111, 789, 600))
	assert.Equal(t, "mute", caller.action)
	assert.Equal(t, 600, caller.params["time"])
}

func TestAboutSkipsSession(t *testing.T) {
	b, caller := newTestBot(`{"version": "2.9.1"}`)

	info, err := b.About(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.9.1", info["version"])
	assert.False(t, caller.requireSession)
}

func TestUploadImage(t *testing.T) {
	b, caller := newTestBot(`{"imageId": "{ABC}.png", "url": "https://example.test/abc"}`)

	img, err := b.UploadImage(context.Background(), "friend", client.File{Name: "cat.png"})
	require.NoError(t, err)
	assert.Equal(t, "{ABC}.png", img.ImageID)

	assert.Equal(t, client.MethodMultipart, caller.method)
	assert.Equal(t, "friend", caller.params["type"])
}

func TestProcessNewFriendRequest(t *testing.T) {
	b, caller := newTestBot(`{"code": 0}`)

	ev := &event.NewFriendRequestEvent{}
	ev.EventID = 555
	ev.FromID = 789
	require.NoError(t, b.ProcessNewFriendRequest(context.Background(), ev, FriendRequestApprove, "welcome"))

	assert.Equal(t, "resp_newFriendRequestEvent", caller.action)
	assert.Equal(t, int64(555), caller.params["eventId"])
	assert.Equal(t, FriendRequestApprove, caller.params["operate"])
	assert.Equal(t, "welcome", caller.params["message"])
}

func TestCallErrorPropagates(t *testing.T) {
	b, caller := newTestBot(``)
	caller.err = errors.New("backend down")

	_, err := b.FriendList(context.Background())
	assert.ErrorContains(t, err, "backend down")
}

func TestMessageFromID(t *testing.T) {
	b, _ := newTestBot(`{
		"type": "FriendMessage",
		"sender": {"id": 789, "nickname": "alice", "remark": ""},
		"messageChain": [
			{"type": "Source", "id": 42, "time": 1700000000},
			{"type": "Plain", "text": "old"}
		]
	}`)

	ev, err := b.MessageFromID(context.Background(), 42, 789)
	require.NoError(t, err)

	msg, ok := ev.(*event.FriendMessage)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.MessageID())
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Bind(&fakeCaller{})

	m.BotConnected(123456)
	b, ok := m.Bot(123456)
	require.True(t, ok)
	assert.True(t, b.Online())

	m.BotDisconnected(123456)
	assert.False(t, b.Online())

	// A reconnect reuses the same instance.
	m.BotConnected(123456)
	again, _ := m.Bot(123456)
	assert.Same(t, b, again)
	assert.True(t, b.Online())

	assert.Len(t, m.Bots(), 1)
}

func TestManagerEventFanOut(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Bind(&fakeCaller{})
	m.BotConnected(123456)

	var mu sync.Mutex
	var got []string
	for i := 0; i < 2; i++ {
		m.OnEvent(func(b *Bot, ev event.Event) {
			mu.Lock()
			got = append(got, ev.EventType())
			mu.Unlock()
		})
	}

	m.HandleEvent(123456, &event.BotOnlineEvent{QQ: 123456})
	assert.Equal(t, []string{"BotOnlineEvent", "BotOnlineEvent"}, got)
}

func TestManagerDropsEventsForUnknownAccount(t *testing.T) {
	m := NewManager(zerolog.Nop())
	called := false
	m.OnEvent(func(b *Bot, ev event.Event) { called = true })

	m.HandleEvent(999, &event.BotOnlineEvent{QQ: 999})
	assert.False(t, called)
}
