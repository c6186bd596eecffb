package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
)

// Conversation represents the database schema for conversation transcripts.
// The unique index on external_id permits any number of NULLs but rejects
// duplicate non-null values; it is the single source of Conflict outcomes.
type Conversation struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	StartedAt            time.Time                     `gorm:"not null;index:idx_conversations_started_at,sort:desc"`
	EndedAt              *time.Time                    `gorm:"type:timestamptz"`
	DurationSeconds      *int                          ``
	Conversation         string                        `gorm:"type:text;not null"`
	ConversationType     conversation.ConversationType `gorm:"type:varchar(20);not null"`
	ConversationVoiceURL *string                       `gorm:"type:text"`
	Direction            conversation.Direction        `gorm:"type:varchar(20);not null"`
	ChannelUserID        *string                       `gorm:"type:varchar(128)"`
	DisplayName          *string                       `gorm:"type:varchar(200)"`
	DisplayPhotoURL      *string                       `gorm:"type:text"`
	Channel              conversation.Channel          `gorm:"type:varchar(20);not null"`
	ExternalID           *string                       `gorm:"type:varchar(200);uniqueIndex:idx_conversations_external_id"`
	Metadata             datatypes.JSON                `gorm:"type:jsonb"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// EtoD converts the database entity to the domain model.
func (c *Conversation) EtoD() *conversation.Conversation {
	var metadata map[string]any
	if len(c.Metadata) > 0 {
		// A stored JSON null unmarshals to a nil map, which is the domain
		// representation of "no metadata".
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &conversation.Conversation{
		ID:                   c.ID,
		StartedAt:            c.StartedAt,
		EndedAt:              c.EndedAt,
		DurationSeconds:      c.DurationSeconds,
		Conversation:         c.Conversation,
		ConversationType:     c.ConversationType,
		ConversationVoiceURL: c.ConversationVoiceURL,
		Direction:            c.Direction,
		ChannelUserID:        c.ChannelUserID,
		DisplayName:          c.DisplayName,
		DisplayPhotoURL:      c.DisplayPhotoURL,
		Channel:              c.Channel,
		ExternalID:           c.ExternalID,
		Metadata:             metadata,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// NewSchemaConversation creates a database entity from the domain model.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:                   c.ID,
		StartedAt:            c.StartedAt,
		EndedAt:              c.EndedAt,
		DurationSeconds:      c.DurationSeconds,
		Conversation:         c.Conversation,
		ConversationType:     c.ConversationType,
		ConversationVoiceURL: c.ConversationVoiceURL,
		Direction:            c.Direction,
		ChannelUserID:        c.ChannelUserID,
		DisplayName:          c.DisplayName,
		DisplayPhotoURL:      c.DisplayPhotoURL,
		Channel:              c.Channel,
		ExternalID:           c.ExternalID,
		Metadata:             MarshalMetadata(c.Metadata),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// MarshalMetadata renders the metadata column value. A nil map becomes an
// explicit JSON null marker rather than an SQL NULL, so "no metadata" is
// recorded deliberately at creation time.
func MarshalMetadata(metadata map[string]any) datatypes.JSON {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
