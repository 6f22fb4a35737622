package bot

import (
	"context"
	"encoding/json"

	"github.com/hibari-bot/hibari/internal/client"
	"github.com/hibari-bot/hibari/internal/event"
	"github.com/hibari-bot/hibari/internal/message"
	"github.com/hibari-bot/hibari/internal/model"
)

// messageReceipt is the send-message response shape.
type messageReceipt struct {
	MessageID int64 `json:"messageId"`
}

// SendFriendMessage sends a chain to a friend. quote, when non-zero, makes
// the message a reply to that message id. Returns the id of the sent
// message.
func (b *Bot) SendFriendMessage(ctx context.Context, target int64, chain message.Chain, quote int64) (int64, error) {
	return b.sendMessage(ctx, "sendFriendMessage", map[string]any{"target": target}, chain, quote)
}

// SendGroupMessage sends a chain to a group.
func (b *Bot) SendGroupMessage(ctx context.Context, target int64, chain message.Chain, quote int64) (int64, error) {
	return b.sendMessage(ctx, "sendGroupMessage", map[string]any{"target": target}, chain, quote)
}

// SendTempMessage sends a chain to a group member over a temporary session.
func (b *Bot) SendTempMessage(ctx context.Context, group, qq int64, chain message.Chain, quote int64) (int64, error) {
	return b.sendMessage(ctx, "sendTempMessage", map[string]any{"group": group, "qq": qq}, chain, quote)
}

// SendNudge pokes a user. kind is the surface the nudge lands on: "Friend",
// "Group" or "Stranger"; subject is the friend or group id.
func (b *Bot) SendNudge(ctx context.Context, target, subject int64, kind string) error {
	return b.call(ctx, "sendNudge", client.MethodPost, map[string]any{
		"target":  target,
		"subject": subject,
		"kind":    kind,
	}, nil)
}

func (b *Bot) sendMessage(ctx context.Context, action string, params map[string]any, chain message.Chain, quote int64) (int64, error) {
	params["messageChain"] = chain.Sendable()
	if quote != 0 {
		params["quote"] = quote
	}
	var receipt messageReceipt
	if err := b.call(ctx, action, client.MethodPost, params, &receipt); err != nil {
		return 0, err
	}
	return receipt.MessageID, nil
}

// Recall withdraws a sent message. target is the friend or group the
// message was sent to.
func (b *Bot) Recall(ctx context.Context, messageID, target int64) error {
	return b.call(ctx, "recall", client.MethodPost, map[string]any{
		"messageId": messageID,
		"target":    target,
	}, nil)
}

// MessageFromID fetches a message event by id from the backend cache.
func (b *Bot) MessageFromID(ctx context.Context, messageID, target int64) (event.Event, error) {
	var raw json.RawMessage
	err := b.call(ctx, "messageFromId", client.MethodGet, map[string]any{
		"messageId": messageID,
		"target":    target,
	}, &raw)
	if err != nil {
		return nil, err
	}
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	return event.Decode(probe.Type, raw)
}

// FriendList returns the account's friends.
func (b *Bot) FriendList(ctx context.Context) ([]model.Friend, error) {
	var friends []model.Friend
	err := b.call(ctx, "friendList", client.MethodGet, nil, &friends)
	return friends, err
}

// GroupList returns the groups the account is in.
func (b *Bot) GroupList(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := b.call(ctx, "groupList", client.MethodGet, nil, &groups)
	return groups, err
}

// MemberList returns the members of a group.
func (b *Bot) MemberList(ctx context.Context, group int64) ([]model.Member, error) {
	var members []model.Member
	err := b.call(ctx, "memberList", client.MethodGet, map[string]any{"target": group}, &members)
	return members, err
}

// BotProfile returns the account's own profile.
func (b *Bot) BotProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := b.call(ctx, "botProfile", client.MethodGet, nil, &p)
	return &p, err
}

// FriendProfile returns a friend's profile.
func (b *Bot) FriendProfile(ctx context.Context, target int64) (*model.Profile, error) {
	var p model.Profile
	err := b.call(ctx, "friendProfile", client.MethodGet, map[string]any{"target": target}, &p)
	return &p, err
}

// MemberProfile returns a group member's profile.
func (b *Bot) MemberProfile(ctx context.Context, group, member int64) (*model.Profile, error) {
	var p model.Profile
	err := b.call(ctx, "memberProfile", client.MethodGet, map[string]any{
		"target":   group,
		"memberId": member,
	}, &p)
	return &p, err
}

// UserProfile returns the profile of an arbitrary user.
func (b *Bot) UserProfile(ctx context.Context, target int64) (*model.Profile, error) {
	var p model.Profile
	err := b.call(ctx, "userProfile", client.MethodGet, map[string]any{"target": target}, &p)
	return &p, err
}

// GroupConfig fetches a group's settings.
func (b *Bot) GroupConfig(ctx context.Context, group int64) (*model.GroupConfig, error) {
	var cfg model.GroupConfig
	err := b.call(ctx, "groupConfig", client.MethodGet, map[string]any{"target": group}, &cfg)
	return &cfg, err
}

// ModifyGroupConfig updates a group's settings.
func (b *Bot) ModifyGroupConfig(ctx context.Context, group int64, cfg model.GroupConfig) error {
	return b.call(ctx, "groupConfig", client.MethodPost, map[string]any{
		"target": group,
		"config": cfg,
	}, nil)
}

// MemberInfo fetches a member's group-scoped info.
func (b *Bot) MemberInfo(ctx context.Context, group, member int64) (*model.Member, error) {
	var m model.Member
	err := b.call(ctx, "memberInfo", client.MethodGet, map[string]any{
		"target":   group,
		"memberId": member,
	}, &m)
	return &m, err
}

// ModifyMemberInfo updates a member's card name or special title.
func (b *Bot) ModifyMemberInfo(ctx context.Context, group, member int64, info model.MemberInfo) error {
	return b.call(ctx, "memberInfo", client.MethodPost, map[string]any{
		"target":   group,
		"memberId": member,
		"info":     info,
	}, nil)
}

// Mute silences a group member for the given number of seconds.
func (b *Bot) Mute(ctx context.Context, group, member int64, seconds int) error {
	return b.call(ctx, "mute", client.MethodPost, map[string]any{
		"target":   group,
		"memberId": member,
		"time":     seconds,
	}, nil)
}

// Unmute lifts a member's mute.
func (b *Bot) Unmute(ctx context.Context, group, member int64) error {
	return b.call(ctx, "unmute", client.MethodPost, map[string]any{
		"target":   group,
		"memberId": member,
	}, nil)
}

// MuteAll mutes the whole group.
func (b *Bot) MuteAll(ctx context.Context, group int64) error {
	return b.call(ctx, "muteAll", client.MethodPost, map[string]any{"target": group}, nil)
}

// UnmuteAll lifts a whole-group mute.
func (b *Bot) UnmuteAll(ctx context.Context, group int64) error {
	return b.call(ctx, "unmuteAll", client.MethodPost, map[string]any{"target": group}, nil)
}

// Kick removes a member from a group. block also adds them to the group's
// blocklist.
func (b *Bot) Kick(ctx context.Context, group, member int64, block bool, msg string) error {
	return b.call(ctx, "kick", client.MethodPost, map[string]any{
		"target":   group,
		"memberId": member,
		"block":    block,
		"msg":      msg,
	}, nil)
}

// Quit leaves a group.
func (b *Bot) Quit(ctx context.Context, group int64) error {
	return b.call(ctx, "quit", client.MethodPost, map[string]any{"target": group}, nil)
}

// DeleteFriend removes a friend.
func (b *Bot) DeleteFriend(ctx context.Context, target int64) error {
	return b.call(ctx, "deleteFriend", client.MethodPost, map[string]any{"target": target}, nil)
}

// About returns the backend's version info. It needs no session.
func (b *Bot) About(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	err := b.callOpt(ctx, "about", client.MethodGet, nil, false, &info)
	return info, err
}

// SessionInfo returns the backend's view of the current session.
func (b *Bot) SessionInfo(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	err := b.call(ctx, "sessionInfo", client.MethodGet, nil, &info)
	return info, err
}

// UploadImage uploads an image for later sending. kind is the destination
// surface: "friend", "group" or "temp".
func (b *Bot) UploadImage(ctx context.Context, kind string, file client.File) (*model.UploadedImage, error) {
	var img model.UploadedImage
	err := b.call(ctx, "uploadImage", client.MethodMultipart, map[string]any{
		"type": kind,
		"img":  file,
	}, &img)
	return &img, err
}

// UploadVoice uploads a voice clip for later sending. Only "group" is
// accepted as kind by current backends.
func (b *Bot) UploadVoice(ctx context.Context, kind string, file client.File) (*model.UploadedVoice, error) {
	var voice model.UploadedVoice
	err := b.call(ctx, "uploadVoice", client.MethodMultipart, map[string]any{
		"type":  kind,
		"voice": file,
	}, &voice)
	return &voice, err
}

// Request-event responses. The operate values follow the protocol: 0
// accepts; the meaning of the others depends on the request type.
const (
	FriendRequestApprove     = 0
	FriendRequestDeny        = 1
	FriendRequestDenyBlock   = 2
	JoinRequestApprove       = 0
	JoinRequestDeny          = 1
	JoinRequestIgnore        = 2
	JoinRequestDenyBlock     = 3
	JoinRequestIgnoreBlock   = 4
	InvitedJoinApprove       = 0
	InvitedJoinDeny          = 1
)

// ProcessNewFriendRequest answers a pending friend request.
func (b *Bot) ProcessNewFriendRequest(ctx context.Context, ev *event.NewFriendRequestEvent, operate int, msg string) error {
	return b.respondRequest(ctx, "resp_newFriendRequestEvent", ev.EventID, ev.FromID, ev.GroupID, operate, msg)
}

// ProcessMemberJoinRequest answers a pending group-join request.
func (b *Bot) ProcessMemberJoinRequest(ctx context.Context, ev *event.MemberJoinRequestEvent, operate int, msg string) error {
	return b.respondRequest(ctx, "resp_memberJoinRequestEvent", ev.EventID, ev.FromID, ev.GroupID, operate, msg)
}

// ProcessInvitedJoinGroupRequest answers a pending group invitation.
func (b *Bot) ProcessInvitedJoinGroupRequest(ctx context.Context, ev *event.BotInvitedJoinGroupRequestEvent, operate int, msg string) error {
	return b.respondRequest(ctx, "resp_botInvitedJoinGroupRequestEvent", ev.EventID, ev.FromID, ev.GroupID, operate, msg)
}

func (b *Bot) respondRequest(ctx context.Context, action string, eventID, fromID, groupID int64, operate int, msg string) error {
	return b.call(ctx, action, client.MethodPost, map[string]any{
		"eventId": eventID,
		"fromId":  fromID,
		"groupId": groupID,
		"operate": operate,
		"message": msg,
	}, nil)
}
