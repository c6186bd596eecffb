package conversation

import "time"

// ConversationType distinguishes recorded voice calls from text chats.
type ConversationType string

const (
	TypeVoice ConversationType = "VOICE"
	TypeText  ConversationType = "TEXT"
)

// Direction indicates who initiated the conversation.
type Direction string

const (
	DirectionCustomer Direction = "CUSTOMER"
	DirectionCompany  Direction = "COMPANY"
)

// Channel identifies the communication channel the transcript came from.
type Channel string

const (
	ChannelTwilio   Channel = "TWILIO"
	ChannelTelegram Channel = "TELEGRAM"
	ChannelWeb      Channel = "WEB"
	ChannelWhatsApp Channel = "WHATSAPP"
)

// Conversation is a stored transcript of an AI-assistant conversation.
// The id is assigned by the store at creation and never changes.
type Conversation struct {
	ID                   string           `json:"id"`
	StartedAt            time.Time        `json:"startedAt"`
	EndedAt              *time.Time       `json:"endedAt"`
	DurationSeconds      *int             `json:"durationSeconds"`
	Conversation         string           `json:"conversation"`
	ConversationType     ConversationType `json:"conversationType"`
	ConversationVoiceURL *string          `json:"conversationVoiceUrl"`
	Direction            Direction        `json:"direction"`
	ChannelUserID        *string          `json:"channelUserId"`
	DisplayName          *string          `json:"displayName"`
	DisplayPhotoURL      *string          `json:"displayPhotoUrl"`
	Channel              Channel          `json:"channel"`
	ExternalID           *string          `json:"externalId"`
	Metadata             map[string]any   `json:"metadata"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// CreateParams carries a validated create request into the service.
type CreateParams struct {
	StartedAt            time.Time
	EndedAt              *time.Time
	DurationSeconds      *int
	Conversation         string
	ConversationType     ConversationType
	ConversationVoiceURL *string
	Direction            Direction
	ChannelUserID        *string
	DisplayName          *string
	DisplayPhotoURL      *string
	Channel              Channel
	ExternalID           *string
	Metadata             map[string]any
}

// UpdateParams carries a partial update. Every field is an Opt so an omitted
// field ("leave unchanged") is distinguishable from an explicit null ("clear").
type UpdateParams struct {
	StartedAt            Opt[time.Time]
	EndedAt              Opt[time.Time]
	DurationSeconds      Opt[int]
	Conversation         Opt[string]
	ConversationType     Opt[ConversationType]
	ConversationVoiceURL Opt[string]
	Direction            Opt[Direction]
	ChannelUserID        Opt[string]
	DisplayName          Opt[string]
	DisplayPhotoURL      Opt[string]
	Channel              Opt[Channel]
	ExternalID           Opt[string]
	Metadata             Opt[map[string]any]
}

// IsEmpty reports whether the update touches no fields at all.
func (p UpdateParams) IsEmpty() bool {
	return !p.StartedAt.Set && !p.EndedAt.Set && !p.DurationSeconds.Set &&
		!p.Conversation.Set && !p.ConversationType.Set && !p.ConversationVoiceURL.Set &&
		!p.Direction.Set && !p.ChannelUserID.Set && !p.DisplayName.Set &&
		!p.DisplayPhotoURL.Set && !p.Channel.Set && !p.ExternalID.Set && !p.Metadata.Set
}

// Page is one offset-based slice of the collection plus the total record count.
// Items and Total are read independently, so Total can lag behind Items under
// concurrent writes.
type Page struct {
	Items []*Conversation `json:"items"`
	Total int64           `json:"total"`
}
