package entities

import (
	"testing"
	"time"

	"github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
)

func TestMarshalMetadata(t *testing.T) {
	if got := string(MarshalMetadata(nil)); got != "null" {
		t.Errorf("nil metadata = %q, want explicit JSON null", got)
	}
	if got := string(MarshalMetadata(map[string]any{})); got != "{}" {
		t.Errorf("empty metadata = %q, want {}", got)
	}
	if got := string(MarshalMetadata(map[string]any{"agent": "billing"})); got != `{"agent":"billing"}` {
		t.Errorf("metadata = %q", got)
	}
}

func TestEntityDomainRoundTrip(t *testing.T) {
	started := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ended := started.Add(time.Minute)
	duration := 60
	externalID := "whatsapp-55"

	src := &conversation.Conversation{
		ID:               "conv-1",
		StartedAt:        started,
		EndedAt:          &ended,
		DurationSeconds:  &duration,
		Conversation:     "transcript",
		ConversationType: conversation.TypeText,
		Direction:        conversation.DirectionCustomer,
		Channel:          conversation.ChannelWhatsApp,
		ExternalID:       &externalID,
		Metadata:         map[string]any{"tag": "support"},
	}

	got := NewSchemaConversation(src).EtoD()

	if got.ID != src.ID || !got.StartedAt.Equal(src.StartedAt) {
		t.Errorf("identity fields changed: %+v", got)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(ended) || got.DurationSeconds == nil || *got.DurationSeconds != 60 {
		t.Errorf("optional fields changed: endedAt=%v duration=%v", got.EndedAt, got.DurationSeconds)
	}
	if got.ExternalID == nil || *got.ExternalID != externalID {
		t.Errorf("externalId changed: %v", got.ExternalID)
	}
	if got.Metadata["tag"] != "support" {
		t.Errorf("metadata changed: %v", got.Metadata)
	}
}

func TestEtoDTreatsStoredNullMetadataAsNone(t *testing.T) {
	entity := NewSchemaConversation(&conversation.Conversation{
		ID:               "conv-2",
		StartedAt:        time.Now().UTC(),
		Conversation:     "transcript",
		ConversationType: conversation.TypeVoice,
		Direction:        conversation.DirectionCompany,
		Channel:          conversation.ChannelTwilio,
	})
	if string(entity.Metadata) != "null" {
		t.Fatalf("stored metadata = %q, want null marker", entity.Metadata)
	}

	if got := entity.EtoD(); got.Metadata != nil {
		t.Errorf("domain metadata = %v, want nil", got.Metadata)
	}
}
