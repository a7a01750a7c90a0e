package models

import "time"

type BubbleRole string

const (
	// BubbleRoleSubject is the speaker's own recognized text.
	BubbleRoleSubject BubbleRole = "subject"
	// BubbleRoleTranslated is a target-language rendering.
	BubbleRoleTranslated BubbleRole = "translated"
)

// MessageBubble is one live-session message. A newly presented bubble
// demotes the current one to fading; the fading bubble is discarded
// after a bounded interval, so at most one current and one fading
// bubble exist at any time.
type MessageBubble struct {
	ID        string     `json:"id"`
	Role      BubbleRole `json:"role"`
	Text      string     `json:"text"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"created_at"`
	Fading    bool       `json:"fading"`
}
