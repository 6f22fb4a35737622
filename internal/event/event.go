// Package event defines the typed events pushed by the mirai-api-http
// backend and the registry used to decode them from their wire tag.
//
// The registry is static: every known "type" tag maps to a factory for the
// matching struct. Tags the registry does not know decode into Generic, so
// new backend event types never fail the receive path.
package event

import (
	"encoding/json"
	"fmt"
)

// Event is a decoded backend event.
type Event interface {
	// EventType returns the wire tag of the event, e.g. "GroupMessage".
	EventType() string
}

// Generic carries an event whose tag is not in the registry. The raw payload
// is kept for downstream logging or manual decoding.
type Generic struct {
	Type string
	Raw  json.RawMessage
}

func (g *Generic) EventType() string { return g.Type }

var registry = map[string]func() Event{
	// message events
	"FriendMessage":         func() Event { return new(FriendMessage) },
	"GroupMessage":          func() Event { return new(GroupMessage) },
	"TempMessage":           func() Event { return new(TempMessage) },
	"StrangerMessage":       func() Event { return new(StrangerMessage) },
	"OtherClientMessage":    func() Event { return new(OtherClientMessage) },
	"ActiveFriendMessage":   func() Event { return new(ActiveFriendMessage) },
	"ActiveGroupMessage":    func() Event { return new(ActiveGroupMessage) },
	"ActiveTempMessage":     func() Event { return new(ActiveTempMessage) },
	"ActiveStrangerMessage": func() Event { return new(ActiveStrangerMessage) },
	"FriendSyncMessage":     func() Event { return new(FriendSyncMessage) },
	"GroupSyncMessage":      func() Event { return new(GroupSyncMessage) },
	"TempSyncMessage":       func() Event { return new(TempSyncMessage) },
	"StrangerSyncMessage":   func() Event { return new(StrangerSyncMessage) },

	// bot lifecycle events
	"BotOnlineEvent":         func() Event { return new(BotOnlineEvent) },
	"BotOfflineEventActive":  func() Event { return new(BotOfflineEventActive) },
	"BotOfflineEventForce":   func() Event { return new(BotOfflineEventForce) },
	"BotOfflineEventDropped": func() Event { return new(BotOfflineEventDropped) },
	"BotReloginEvent":        func() Event { return new(BotReloginEvent) },

	// group / member notices
	"BotGroupPermissionChangeEvent":        func() Event { return new(BotGroupPermissionChangeEvent) },
	"BotMuteEvent":                         func() Event { return new(BotMuteEvent) },
	"BotUnmuteEvent":                       func() Event { return new(BotUnmuteEvent) },
	"BotJoinGroupEvent":                    func() Event { return new(BotJoinGroupEvent) },
	"BotLeaveEventActive":                  func() Event { return new(BotLeaveEventActive) },
	"BotLeaveEventKick":                    func() Event { return new(BotLeaveEventKick) },
	"BotLeaveEventDisband":                 func() Event { return new(BotLeaveEventDisband) },
	"GroupNameChangeEvent":                 func() Event { return new(GroupNameChangeEvent) },
	"GroupEntranceAnnouncementChangeEvent": func() Event { return new(GroupEntranceAnnouncementChangeEvent) },
	"GroupMuteAllEvent":                    func() Event { return new(GroupMuteAllEvent) },
	"GroupAllowMemberInviteEvent":          func() Event { return new(GroupAllowMemberInviteEvent) },
	"GroupRecallEvent":                     func() Event { return new(GroupRecallEvent) },
	"MemberJoinEvent":                      func() Event { return new(MemberJoinEvent) },
	"MemberLeaveEventKick":                 func() Event { return new(MemberLeaveEventKick) },
	"MemberLeaveEventQuit":                 func() Event { return new(MemberLeaveEventQuit) },
	"MemberCardChangeEvent":                func() Event { return new(MemberCardChangeEvent) },
	"MemberSpecialTitleChangeEvent":        func() Event { return new(MemberSpecialTitleChangeEvent) },
	"MemberPermissionChangeEvent":          func() Event { return new(MemberPermissionChangeEvent) },
	"MemberMuteEvent":                      func() Event { return new(MemberMuteEvent) },
	"MemberUnmuteEvent":                    func() Event { return new(MemberUnmuteEvent) },
	"MemberHonorChangeEvent":               func() Event { return new(MemberHonorChangeEvent) },

	// friend notices
	"FriendAddEvent":                func() Event { return new(FriendAddEvent) },
	"FriendDeleteEvent":             func() Event { return new(FriendDeleteEvent) },
	"FriendInputStatusChangedEvent": func() Event { return new(FriendInputStatusChangedEvent) },
	"FriendNickChangedEvent":        func() Event { return new(FriendNickChangedEvent) },
	"FriendRecallEvent":             func() Event { return new(FriendRecallEvent) },

	// misc notices
	"NudgeEvent":              func() Event { return new(NudgeEvent) },
	"OtherClientOnlineEvent":  func() Event { return new(OtherClientOnlineEvent) },
	"OtherClientOfflineEvent": func() Event { return new(OtherClientOfflineEvent) },

	// request events
	"NewFriendRequestEvent":           func() Event { return new(NewFriendRequestEvent) },
	"MemberJoinRequestEvent":          func() Event { return new(MemberJoinRequestEvent) },
	"BotInvitedJoinGroupRequestEvent": func() Event { return new(BotInvitedJoinGroupRequestEvent) },
}

// Known reports whether the tag has a typed decoder.
func Known(tag string) bool {
	_, ok := registry[tag]
	return ok
}

// Decode turns a tagged payload into its typed event. Unknown tags yield a
// Generic event and never an error; a known tag with a payload that does not
// unmarshal is an error for the caller to log.
func Decode(tag string, raw json.RawMessage) (Event, error) {
	factory, ok := registry[tag]
	if !ok {
		return &Generic{Type: tag, Raw: raw}, nil
	}
	ev := factory()
	if err := json.Unmarshal(raw, ev); err != nil {
		return nil, fmt.Errorf("decode %s event: %w", tag, err)
	}
	return ev, nil
}
