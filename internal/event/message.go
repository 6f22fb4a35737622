package event

import (
	"github.com/hibari-bot/hibari/internal/message"
	"github.com/hibari-bot/hibari/internal/model"
)

// FriendMessage is a message received from a friend.
type FriendMessage struct {
	Sender model.Friend  `json:"sender"`
	Chain  message.Chain `json:"messageChain"`
}

func (*FriendMessage) EventType() string { return "FriendMessage" }

// MessageID returns the backend id of the message, taken from the chain's
// Source segment.
func (e *FriendMessage) MessageID() int64 { return e.Chain.SourceID() }

// GroupMessage is a message received in a group.
type GroupMessage struct {
	Sender model.Member  `json:"sender"`
	Chain  message.Chain `json:"messageChain"`
}

func (*GroupMessage) EventType() string { return "GroupMessage" }

func (e *GroupMessage) MessageID() int64 { return e.Chain.SourceID() }

// TempMessage is a temporary-session message from a group member.
type TempMessage struct {
	Sender model.Member  `json:"sender"`
	Chain  message.Chain `json:"messageChain"`
}

func (*TempMessage) EventType() string { return "TempMessage" }

func (e *TempMessage) MessageID() int64 { return e.Chain.SourceID() }

// StrangerMessage is a message from an account outside the contact graph.
type StrangerMessage struct {
	Sender model.Stranger `json:"sender"`
	Chain  message.Chain  `json:"messageChain"`
}

func (*StrangerMessage) EventType() string { return "StrangerMessage" }

// OtherClientMessage is a message sent by another device on this account.
type OtherClientMessage struct {
	Sender model.OtherClient `json:"sender"`
	Chain  message.Chain     `json:"messageChain"`
}

func (*OtherClientMessage) EventType() string { return "OtherClientMessage" }

// ActiveFriendMessage mirrors a friend message the account itself sent.
type ActiveFriendMessage struct {
	Subject model.Friend  `json:"subject"`
	Chain   message.Chain `json:"messageChain"`
}

func (*ActiveFriendMessage) EventType() string { return "ActiveFriendMessage" }

// ActiveGroupMessage mirrors a group message the account itself sent.
type ActiveGroupMessage struct {
	Subject model.Group   `json:"subject"`
	Chain   message.Chain `json:"messageChain"`
}

func (*ActiveGroupMessage) EventType() string { return "ActiveGroupMessage" }

// ActiveTempMessage mirrors a temp message the account itself sent.
type ActiveTempMessage struct {
	Subject model.Member  `json:"subject"`
	Chain   message.Chain `json:"messageChain"`
}

func (*ActiveTempMessage) EventType() string { return "ActiveTempMessage" }

// ActiveStrangerMessage mirrors a stranger message the account itself sent.
type ActiveStrangerMessage struct {
	Subject model.Stranger `json:"subject"`
	Chain   message.Chain  `json:"messageChain"`
}

func (*ActiveStrangerMessage) EventType() string { return "ActiveStrangerMessage" }

// Sync messages are mirrors of messages sent from another device on the
// same account. They share the Active* payload shapes.

type FriendSyncMessage struct{ ActiveFriendMessage }

func (*FriendSyncMessage) EventType() string { return "FriendSyncMessage" }

type GroupSyncMessage struct{ ActiveGroupMessage }

func (*GroupSyncMessage) EventType() string { return "GroupSyncMessage" }

type TempSyncMessage struct{ ActiveTempMessage }

func (*TempSyncMessage) EventType() string { return "TempSyncMessage" }

type StrangerSyncMessage struct{ ActiveStrangerMessage }

func (*StrangerSyncMessage) EventType() string { return "StrangerSyncMessage" }
