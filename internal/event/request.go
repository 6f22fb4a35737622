package event

// RequestEvent is the shared shape of incoming approval requests. EventID
// plus FromID and GroupID identify the request when responding to it.
type RequestEvent struct {
	EventID int64  `json:"eventId"`
	FromID  int64  `json:"fromId"`
	GroupID int64  `json:"groupId"`
	Nick    string `json:"nick"`
	Message string `json:"message"`
}

// NewFriendRequestEvent is an incoming friend request.
type NewFriendRequestEvent struct {
	RequestEvent
}

func (*NewFriendRequestEvent) EventType() string { return "NewFriendRequestEvent" }

// MemberJoinRequestEvent is a join request for a group the bot administers.
type MemberJoinRequestEvent struct {
	RequestEvent
	GroupName string `json:"groupName"`
	InviterID int64  `json:"invitorId,omitempty"`
}

func (*MemberJoinRequestEvent) EventType() string { return "MemberJoinRequestEvent" }

// BotInvitedJoinGroupRequestEvent is an invitation for the bot to join a
// group.
type BotInvitedJoinGroupRequestEvent struct {
	RequestEvent
	GroupName string `json:"groupName"`
}

func (*BotInvitedJoinGroupRequestEvent) EventType() string {
	return "BotInvitedJoinGroupRequestEvent"
}
