package event

import "github.com/hibari-bot/hibari/internal/model"

// BotOnlineEvent signals the account logged in.
type BotOnlineEvent struct {
	QQ int64 `json:"qq"`
}

func (*BotOnlineEvent) EventType() string { return "BotOnlineEvent" }

// BotOfflineEventActive signals the account logged out on purpose.
type BotOfflineEventActive struct {
	QQ int64 `json:"qq"`
}

func (*BotOfflineEventActive) EventType() string { return "BotOfflineEventActive" }

// BotOfflineEventForce signals the account was logged out by the platform.
type BotOfflineEventForce struct {
	QQ int64 `json:"qq"`
}

func (*BotOfflineEventForce) EventType() string { return "BotOfflineEventForce" }

// BotOfflineEventDropped signals the account lost its server connection.
type BotOfflineEventDropped struct {
	QQ int64 `json:"qq"`
}

func (*BotOfflineEventDropped) EventType() string { return "BotOfflineEventDropped" }

// BotReloginEvent signals the account re-logged in after a drop.
type BotReloginEvent struct {
	QQ int64 `json:"qq"`
}

func (*BotReloginEvent) EventType() string { return "BotReloginEvent" }

// BotGroupPermissionChangeEvent signals the bot's own permission in a group
// changed.
type BotGroupPermissionChangeEvent struct {
	Origin  model.Perm  `json:"origin"`
	Current model.Perm  `json:"current"`
	Group   model.Group `json:"group"`
}

func (*BotGroupPermissionChangeEvent) EventType() string { return "BotGroupPermissionChangeEvent" }

// BotMuteEvent signals the bot was muted in a group.
type BotMuteEvent struct {
	Duration int64        `json:"durationSeconds"`
	Operator model.Member `json:"operator"`
}

func (*BotMuteEvent) EventType() string { return "BotMuteEvent" }

// BotUnmuteEvent signals the bot was unmuted.
type BotUnmuteEvent struct {
	Operator model.Member `json:"operator"`
}

func (*BotUnmuteEvent) EventType() string { return "BotUnmuteEvent" }

// BotJoinGroupEvent signals the bot joined a group.
type BotJoinGroupEvent struct {
	Group   model.Group   `json:"group"`
	Inviter *model.Member `json:"invitor,omitempty"`
}

func (*BotJoinGroupEvent) EventType() string { return "BotJoinGroupEvent" }

// BotLeaveEventActive signals the bot left a group on its own.
type BotLeaveEventActive struct {
	Group model.Group `json:"group"`
}

func (*BotLeaveEventActive) EventType() string { return "BotLeaveEventActive" }

// BotLeaveEventKick signals the bot was kicked from a group.
type BotLeaveEventKick struct {
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*BotLeaveEventKick) EventType() string { return "BotLeaveEventKick" }

// BotLeaveEventDisband signals a group the bot was in got disbanded.
type BotLeaveEventDisband struct {
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*BotLeaveEventDisband) EventType() string { return "BotLeaveEventDisband" }

// FriendAddEvent signals a new friend was added.
type FriendAddEvent struct {
	Friend   model.Friend `json:"friend"`
	Stranger bool         `json:"stranger"`
}

func (*FriendAddEvent) EventType() string { return "FriendAddEvent" }

// FriendDeleteEvent signals a friend was removed.
type FriendDeleteEvent struct {
	Friend model.Friend `json:"friend"`
}

func (*FriendDeleteEvent) EventType() string { return "FriendDeleteEvent" }

// FriendInputStatusChangedEvent signals a friend started or stopped typing.
type FriendInputStatusChangedEvent struct {
	Friend    model.Friend `json:"friend"`
	Inputting bool         `json:"inputting"`
}

func (*FriendInputStatusChangedEvent) EventType() string { return "FriendInputStatusChangedEvent" }

// FriendNickChangedEvent signals a friend changed their nickname.
type FriendNickChangedEvent struct {
	Friend model.Friend `json:"friend"`
	From   string       `json:"from"`
	To     string       `json:"to"`
}

func (*FriendNickChangedEvent) EventType() string { return "FriendNickChangedEvent" }

// FriendRecallEvent signals a friend recalled a message.
type FriendRecallEvent struct {
	AuthorID  int64 `json:"authorId"`
	MessageID int64 `json:"messageId"`
	Time      int64 `json:"time"`
	Operator  int64 `json:"operator"`
}

func (*FriendRecallEvent) EventType() string { return "FriendRecallEvent" }

// GroupRecallEvent signals a message was recalled in a group. Operator is
// nil when the bot itself recalled it.
type GroupRecallEvent struct {
	AuthorID  int64         `json:"authorId"`
	MessageID int64         `json:"messageId"`
	Time      int64         `json:"time"`
	Group     model.Group   `json:"group"`
	Operator  *model.Member `json:"operator,omitempty"`
}

func (*GroupRecallEvent) EventType() string { return "GroupRecallEvent" }

// NudgeSubject is the context a nudge happened in.
type NudgeSubject struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
}

// NudgeEvent signals a double-tap-avatar nudge aimed at the bot.
type NudgeEvent struct {
	FromID  int64        `json:"fromId"`
	Target  int64        `json:"target"`
	Action  string       `json:"action"`
	Suffix  string       `json:"suffix"`
	Subject NudgeSubject `json:"subject"`
}

func (*NudgeEvent) EventType() string { return "NudgeEvent" }

// GroupNameChangeEvent signals a group was renamed.
type GroupNameChangeEvent struct {
	Origin   string        `json:"origin"`
	Current  string        `json:"current"`
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*GroupNameChangeEvent) EventType() string { return "GroupNameChangeEvent" }

// GroupEntranceAnnouncementChangeEvent signals the entrance announcement
// changed.
type GroupEntranceAnnouncementChangeEvent struct {
	Origin   string        `json:"origin"`
	Current  string        `json:"current"`
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*GroupEntranceAnnouncementChangeEvent) EventType() string {
	return "GroupEntranceAnnouncementChangeEvent"
}

// GroupMuteAllEvent signals mute-all was toggled.
type GroupMuteAllEvent struct {
	Origin   bool          `json:"origin"`
	Current  bool          `json:"current"`
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*GroupMuteAllEvent) EventType() string { return "GroupMuteAllEvent" }

// GroupAllowMemberInviteEvent signals the member-invite setting was toggled.
type GroupAllowMemberInviteEvent struct {
	Origin   bool          `json:"origin"`
	Current  bool          `json:"current"`
	Group    model.Group   `json:"group"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*GroupAllowMemberInviteEvent) EventType() string { return "GroupAllowMemberInviteEvent" }

// MemberJoinEvent signals a new member joined a group.
type MemberJoinEvent struct {
	Member  model.Member  `json:"member"`
	Inviter *model.Member `json:"invitor,omitempty"`
}

func (*MemberJoinEvent) EventType() string { return "MemberJoinEvent" }

// MemberLeaveEventKick signals a member was kicked.
type MemberLeaveEventKick struct {
	Member   model.Member  `json:"member"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*MemberLeaveEventKick) EventType() string { return "MemberLeaveEventKick" }

// MemberLeaveEventQuit signals a member left on their own.
type MemberLeaveEventQuit struct {
	Member model.Member `json:"member"`
}

func (*MemberLeaveEventQuit) EventType() string { return "MemberLeaveEventQuit" }

// MemberCardChangeEvent signals a member's display name changed.
type MemberCardChangeEvent struct {
	Origin  string       `json:"origin"`
	Current string       `json:"current"`
	Member  model.Member `json:"member"`
}

func (*MemberCardChangeEvent) EventType() string { return "MemberCardChangeEvent" }

// MemberSpecialTitleChangeEvent signals a member's special title changed.
type MemberSpecialTitleChangeEvent struct {
	Origin  string       `json:"origin"`
	Current string       `json:"current"`
	Member  model.Member `json:"member"`
}

func (*MemberSpecialTitleChangeEvent) EventType() string { return "MemberSpecialTitleChangeEvent" }

// MemberPermissionChangeEvent signals a member's permission changed.
type MemberPermissionChangeEvent struct {
	Origin  model.Perm   `json:"origin"`
	Current model.Perm   `json:"current"`
	Member  model.Member `json:"member"`
}

func (*MemberPermissionChangeEvent) EventType() string { return "MemberPermissionChangeEvent" }

// MemberMuteEvent signals a member was muted. Operator is nil when the bot
// did it.
type MemberMuteEvent struct {
	Duration int64         `json:"durationSeconds"`
	Member   model.Member  `json:"member"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*MemberMuteEvent) EventType() string { return "MemberMuteEvent" }

// MemberUnmuteEvent signals a member was unmuted.
type MemberUnmuteEvent struct {
	Member   model.Member  `json:"member"`
	Operator *model.Member `json:"operator,omitempty"`
}

func (*MemberUnmuteEvent) EventType() string { return "MemberUnmuteEvent" }

// MemberHonorChangeEvent signals a member gained or lost a group honor.
type MemberHonorChangeEvent struct {
	Member model.Member `json:"member"`
	Action string       `json:"action"`
	Honor  string       `json:"honor"`
}

func (*MemberHonorChangeEvent) EventType() string { return "MemberHonorChangeEvent" }

// OtherClientOnlineEvent signals another device logged into the account.
type OtherClientOnlineEvent struct {
	Client model.OtherClient `json:"client"`
}

func (*OtherClientOnlineEvent) EventType() string { return "OtherClientOnlineEvent" }

// OtherClientOfflineEvent signals another device logged out.
type OtherClientOfflineEvent struct {
	Client model.OtherClient `json:"client"`
}

func (*OtherClientOfflineEvent) EventType() string { return "OtherClientOfflineEvent" }
