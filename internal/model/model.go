// Package model defines the entity shapes exchanged with the mirai-api-http
// backend: friends, groups, members, profiles and group settings.
package model

import "fmt"

// Perm is a member's permission level within a group.
type Perm string

const (
	PermMember        Perm = "MEMBER"
	PermAdministrator Perm = "ADMINISTRATOR"
	PermOwner         Perm = "OWNER"
)

var permLevels = map[Perm]int{
	PermMember:        1,
	PermAdministrator: 2,
	PermOwner:         3,
}

// AtLeast reports whether the permission is at or above the given level.
func (p Perm) AtLeast(other Perm) bool {
	return permLevels[p] >= permLevels[other]
}

// Sex is the declared gender on a profile.
type Sex string

const (
	SexUnknown Sex = "UNKNOWN"
	SexMale    Sex = "MALE"
	SexFemale  Sex = "FEMALE"
)

// Friend is a contact on the bot's friend list.
type Friend struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Remark   string `json:"remark"`
}

func (f Friend) String() string {
	return fmt.Sprintf("%s(%d)", f.Remark, f.ID)
}

// Group is a group chat the bot belongs to. Permission is the bot's own
// permission in the group.
type Group struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Permission Perm   `json:"permission"`
}

func (g Group) String() string {
	return fmt.Sprintf("%s(%d)", g.Name, g.ID)
}

// Member is a user's membership record in a specific group.
type Member struct {
	ID                 int64  `json:"id"`
	Name               string `json:"memberName"`
	Permission         Perm   `json:"permission"`
	SpecialTitle       string `json:"specialTitle,omitempty"`
	JoinTimestamp      int64  `json:"joinTimestamp,omitempty"`
	LastSpeakTimestamp int64  `json:"lastSpeakTimestamp,omitempty"`
	MuteTimeRemaining  int64  `json:"muteTimeRemaining,omitempty"`
	Group              Group  `json:"group"`
}

func (m Member) String() string {
	return fmt.Sprintf("%s(%d @ %s)", m.Name, m.ID, m.Group)
}

// Stranger is a user outside the bot's contact graph.
type Stranger struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Remark   string `json:"remark"`
}

// OtherClient is another device logged into the same account.
type OtherClient struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
}

// Profile is the public profile of an account.
type Profile struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email,omitempty"`
	Age      int    `json:"age,omitempty"`
	Level    int    `json:"level"`
	Sign     string `json:"sign"`
	Sex      Sex    `json:"sex"`
}

// GroupConfig holds the modifiable settings of a group. EncodeParams
// produces the camelCase payload expected by the groupConfig operation.
type GroupConfig struct {
	Name              string `json:"name,omitempty"`
	Announcement      string `json:"announcement,omitempty"`
	ConfessTalk       bool   `json:"confessTalk,omitempty"`
	AllowMemberInvite bool   `json:"allowMemberInvite,omitempty"`
	AutoApprove       bool   `json:"autoApprove,omitempty"`
	AnonymousChat     bool   `json:"anonymousChat,omitempty"`
	MuteAll           bool   `json:"muteAll,omitempty"`
}

// EncodeParams expands the config into call parameters.
func (c GroupConfig) EncodeParams() map[string]any {
	out := map[string]any{}
	if c.Name != "" {
		out["name"] = c.Name
	}
	if c.Announcement != "" {
		out["announcement"] = c.Announcement
	}
	out["confessTalk"] = c.ConfessTalk
	out["allowMemberInvite"] = c.AllowMemberInvite
	out["autoApprove"] = c.AutoApprove
	out["anonymousChat"] = c.AnonymousChat
	return out
}

// MemberInfo holds the settings of a group member that an administrator may
// change.
type MemberInfo struct {
	Name         string `json:"name,omitempty"`
	SpecialTitle string `json:"specialTitle,omitempty"`
}

// EncodeParams expands the info into call parameters.
func (i MemberInfo) EncodeParams() map[string]any {
	out := map[string]any{}
	if i.Name != "" {
		out["name"] = i.Name
	}
	if i.SpecialTitle != "" {
		out["specialTitle"] = i.SpecialTitle
	}
	return out
}

// DownloadInfo describes how to fetch a group file.
type DownloadInfo struct {
	SHA            string `json:"sha,omitempty"`
	MD5            string `json:"md5,omitempty"`
	DownloadTimes  int    `json:"downloadTimes"`
	UploaderID     int64  `json:"uploaderId"`
	UploadTime     int64  `json:"uploadTime"`
	LastModifyTime int64  `json:"lastModifyTime"`
	URL            string `json:"url,omitempty"`
}

// FileInfo is one entry of a group's file tree.
type FileInfo struct {
	Name         string        `json:"name"`
	ID           string        `json:"id"`
	Path         string        `json:"path"`
	Parent       *FileInfo     `json:"parent,omitempty"`
	IsFile       bool          `json:"isFile"`
	IsDirectory  bool          `json:"isDirectory"`
	DownloadInfo *DownloadInfo `json:"downloadInfo,omitempty"`
}

// Announcement is a published group announcement.
type Announcement struct {
	Group                 Group  `json:"group"`
	SenderID              int64  `json:"senderId"`
	FID                   string `json:"fid"`
	AllConfirmed          bool   `json:"allConfirmed"`
	ConfirmedMembersCount int    `json:"confirmedMembersCount"`
	PublicationTime       int64  `json:"publicationTime"`
}

// UploadedImage is the handle returned by the uploadImage operation.
type UploadedImage struct {
	ImageID string `json:"imageId"`
	URL     string `json:"url"`
}

// UploadedVoice is the handle returned by the uploadVoice operation.
type UploadedVoice struct {
	VoiceID string `json:"voiceId"`
	URL     string `json:"url"`
}
