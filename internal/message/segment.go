// Package message implements the mirai-api-http message chain: the ordered
// list of typed segments that makes up every inbound and outbound message.
package message

import "fmt"

// Segment is one element of a message chain. The wire format is a flat JSON
// object discriminated by the "type" field, so a single struct with
// omitempty fields covers the whole catalog.
type Segment struct {
	Type string `json:"type"`

	// Source / Quote
	ID       int64 `json:"id,omitempty"`
	Time     int64 `json:"time,omitempty"`
	GroupID  int64 `json:"groupId,omitempty"`
	SenderID int64 `json:"senderId,omitempty"`
	TargetID int64 `json:"targetId,omitempty"`
	Origin   Chain `json:"origin,omitempty"`

	// Plain
	Text string `json:"text,omitempty"`

	// At
	Target  int64  `json:"target,omitempty"`
	Display string `json:"display,omitempty"`

	// Face / MarketFace / Poke (all share the "name" key)
	FaceID int    `json:"faceId,omitempty"`
	Name   string `json:"name,omitempty"`

	// Image / FlashImage / Voice
	ImageID string `json:"imageId,omitempty"`
	VoiceID string `json:"voiceId,omitempty"`
	URL     string `json:"url,omitempty"`
	Path    string `json:"path,omitempty"`
	Base64  string `json:"base64,omitempty"`
	Length  int64  `json:"length,omitempty"`

	// Xml / Json / App / MiraiCode
	XML     string `json:"xml,omitempty"`
	JSON    string `json:"json,omitempty"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`

	// Dice
	Value int `json:"value,omitempty"`

	// MusicShare
	Kind       string `json:"kind,omitempty"`
	Title      string `json:"title,omitempty"`
	Summary    string `json:"summary,omitempty"`
	JumpURL    string `json:"jumpUrl,omitempty"`
	PictureURL string `json:"pictureUrl,omitempty"`
	MusicURL   string `json:"musicUrl,omitempty"`
	Brief      string `json:"brief,omitempty"`

	// Forward
	NodeList []ForwardNode `json:"nodeList,omitempty"`
}

// ForwardNode is one entry of a Forward segment.
type ForwardNode struct {
	SenderID   int64  `json:"senderId,omitempty"`
	Time       int64  `json:"time,omitempty"`
	SenderName string `json:"senderName,omitempty"`
	Chain      Chain  `json:"messageChain,omitempty"`
	MessageID  int64  `json:"messageId,omitempty"`
}

// Segment type tags as used on the wire.
const (
	TypeSource     = "Source"
	TypeQuote      = "Quote"
	TypePlain      = "Plain"
	TypeAt         = "At"
	TypeAtAll      = "AtAll"
	TypeFace       = "Face"
	TypeMarketFace = "MarketFace"
	TypeImage      = "Image"
	TypeFlashImage = "FlashImage"
	TypeVoice      = "Voice"
	TypeXML        = "Xml"
	TypeJSON       = "Json"
	TypeApp        = "App"
	TypePoke       = "Poke"
	TypeDice       = "Dice"
	TypeMusicShare = "MusicShare"
	TypeForward    = "Forward"
	TypeMiraiCode  = "MiraiCode"
)

// Source returns the metadata segment that heads every received chain.
// Outbound chains never carry one.
func Source(id, time int64) Segment {
	return Segment{Type: TypeSource, ID: id, Time: time}
}

// Plain returns a text segment.
func Plain(text string) Segment {
	return Segment{Type: TypePlain, Text: text}
}

// At returns a mention segment for the given account.
func At(target int64) Segment {
	return Segment{Type: TypeAt, Target: target}
}

// AtAll returns a mention-everyone segment.
func AtAll() Segment {
	return Segment{Type: TypeAtAll}
}

// Face returns a built-in emoticon segment.
func Face(id int) Segment {
	return Segment{Type: TypeFace, FaceID: id}
}

// Image returns an image segment. Exactly one of imageID, url, path or
// base64 should be set; the backend resolves them in that order.
func Image(imageID, url, path, base64 string) Segment {
	return Segment{Type: TypeImage, ImageID: imageID, URL: url, Path: path, Base64: base64}
}

// FlashImage returns a flash (view-once) image segment.
func FlashImage(imageID, url, path, base64 string) Segment {
	return Segment{Type: TypeFlashImage, ImageID: imageID, URL: url, Path: path, Base64: base64}
}

// Voice returns a voice segment.
func Voice(voiceID, url, path, base64 string) Segment {
	return Segment{Type: TypeVoice, VoiceID: voiceID, URL: url, Path: path, Base64: base64}
}

// XML returns an XML card segment.
func XML(content string) Segment {
	return Segment{Type: TypeXML, XML: content}
}

// JSONCard returns a JSON card segment.
func JSONCard(content string) Segment {
	return Segment{Type: TypeJSON, JSON: content}
}

// App returns an app share segment.
func App(content string) Segment {
	return Segment{Type: TypeApp, Content: content}
}

// MarketFace returns a market-face (sticker shop) segment.
func MarketFace(id int64, name string) Segment {
	return Segment{Type: TypeMarketFace, ID: id, Name: name}
}

// Poke returns a poke segment such as "Poke" or "ShowLove".
func Poke(name string) Segment {
	return Segment{Type: TypePoke, Name: name}
}

// Dice returns a dice segment with the given face value.
func Dice(value int) Segment {
	return Segment{Type: TypeDice, Value: value}
}

// MusicShare returns a music share card segment.
func MusicShare(kind, title, summary, jumpURL, pictureURL, musicURL, brief string) Segment {
	return Segment{
		Type:       TypeMusicShare,
		Kind:       kind,
		Title:      title,
		Summary:    summary,
		JumpURL:    jumpURL,
		PictureURL: pictureURL,
		MusicURL:   musicURL,
		Brief:      brief,
	}
}

// Forward returns a forwarded-messages segment.
func Forward(nodes []ForwardNode) Segment {
	return Segment{Type: TypeForward, NodeList: nodes}
}

// Quote returns a reply segment referencing an earlier message.
func Quote(id int64) Segment {
	return Segment{Type: TypeQuote, ID: id}
}

// MiraiCode returns a mirai-code segment.
func MiraiCode(code string) Segment {
	return Segment{Type: TypeMiraiCode, Code: code}
}

// String renders a human-readable form of the segment. Plain segments render
// their text, everything else renders as a bracketed tag.
func (s Segment) String() string {
	if s.Type == TypePlain {
		return s.Text
	}
	return fmt.Sprintf("[%s]", s.Type)
}

// IsText reports whether the segment carries plain text.
func (s Segment) IsText() bool {
	return s.Type == TypePlain
}
