package requests

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
)

func TestCreateToParamsParsesTimestamps(t *testing.T) {
	ended := "2025-12-23T01:10:00.000Z"
	req := CreateConversationRequest{
		StartedAt:        "2025-12-23T01:00:00Z",
		EndedAt:          &ended,
		Conversation:     "transcript",
		ConversationType: "VOICE",
		Direction:        "COMPANY",
		Channel:          "TWILIO",
	}

	params, err := req.ToParams()
	if err != nil {
		t.Fatalf("ToParams: %v", err)
	}

	wantStart := time.Date(2025, 12, 23, 1, 0, 0, 0, time.UTC)
	if !params.StartedAt.Equal(wantStart) {
		t.Errorf("startedAt = %v, want %v", params.StartedAt, wantStart)
	}
	if params.EndedAt == nil || !params.EndedAt.Equal(wantStart.Add(10*time.Minute)) {
		t.Errorf("endedAt = %v, want 10 minutes after start", params.EndedAt)
	}
	if params.ConversationType != domain.TypeVoice || params.Direction != domain.DirectionCompany || params.Channel != domain.ChannelTwilio {
		t.Errorf("enums not converted: %+v", params)
	}
}

func TestCreateToParamsRejectsBadTimestamps(t *testing.T) {
	req := CreateConversationRequest{
		StartedAt:        "yesterday",
		Conversation:     "transcript",
		ConversationType: "TEXT",
		Direction:        "CUSTOMER",
		Channel:          "WEB",
	}
	if _, err := req.ToParams(); err == nil {
		t.Error("non-ISO startedAt should be rejected")
	}

	bad := "later"
	req.StartedAt = "2025-12-23T01:00:00Z"
	req.EndedAt = &bad
	if _, err := req.ToParams(); err == nil {
		t.Error("non-ISO endedAt should be rejected")
	}
}

func decodeUpdate(t *testing.T, body string) UpdateConversationRequest {
	t.Helper()
	var req UpdateConversationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return req
}

func TestUpdateToParamsOmitVersusClear(t *testing.T) {
	req := decodeUpdate(t, `{
		"endedAt": null,
		"displayName": "Jane",
		"metadata": null
	}`)

	params, err := req.ToParams()
	if err != nil {
		t.Fatalf("ToParams: %v", err)
	}

	if !params.EndedAt.Set || params.EndedAt.Valid {
		t.Error("null endedAt should become a clear")
	}
	if !params.DisplayName.Set || !params.DisplayName.Valid || params.DisplayName.Value != "Jane" {
		t.Errorf("displayName = %+v, want set to Jane", params.DisplayName)
	}
	if !params.Metadata.Set || params.Metadata.Valid {
		t.Error("null metadata should become a clear")
	}
	if params.Conversation.Set || params.StartedAt.Set {
		t.Error("omitted fields should stay unset")
	}
}

func TestUpdateToParamsRejectsClearingRequiredFields(t *testing.T) {
	bodies := map[string]string{
		"startedAt":        `{"startedAt": null}`,
		"conversation":     `{"conversation": null}`,
		"conversationType": `{"conversationType": null}`,
		"direction":        `{"direction": null}`,
		"channel":          `{"channel": null}`,
	}

	for field, body := range bodies {
		t.Run(field, func(t *testing.T) {
			req := decodeUpdate(t, body)
			_, err := req.ToParams()
			if err == nil {
				t.Fatalf("clearing %s should be rejected", field)
			}
			if !strings.Contains(err.Error(), field) {
				t.Errorf("error %q does not name the field %s", err, field)
			}
		})
	}
}

func TestUpdateToParamsValidatesEnums(t *testing.T) {
	req := decodeUpdate(t, `{"channel": "CARRIER_PIGEON"}`)
	if _, err := req.ToParams(); err == nil {
		t.Error("unknown channel should be rejected")
	}

	req = decodeUpdate(t, `{"conversationType": "VOICE", "direction": "COMPANY", "channel": "WHATSAPP"}`)
	params, err := req.ToParams()
	if err != nil {
		t.Fatalf("ToParams: %v", err)
	}
	if params.ConversationType.Value != domain.TypeVoice || params.Channel.Value != domain.ChannelWhatsApp {
		t.Errorf("enums not converted: %+v", params)
	}
}

func TestUpdateToParamsValidatesURLsAndLengths(t *testing.T) {
	req := decodeUpdate(t, `{"conversationVoiceUrl": "not a url"}`)
	if _, err := req.ToParams(); err == nil {
		t.Error("malformed conversationVoiceUrl should be rejected")
	}

	req = decodeUpdate(t, `{"displayName": "`+strings.Repeat("x", 201)+`"}`)
	if _, err := req.ToParams(); err == nil {
		t.Error("overlong displayName should be rejected")
	}

	req = decodeUpdate(t, `{"durationSeconds": -1}`)
	if _, err := req.ToParams(); err == nil {
		t.Error("negative durationSeconds should be rejected")
	}

	// Clearing an optional field skips value validation entirely.
	req = decodeUpdate(t, `{"conversationVoiceUrl": null, "displayName": null}`)
	if _, err := req.ToParams(); err != nil {
		t.Errorf("clearing optional fields should be allowed: %v", err)
	}
}

func TestUpdateToParamsParsesTimestamps(t *testing.T) {
	req := decodeUpdate(t, `{"startedAt": "2026-01-05T10:00:00Z", "endedAt": "2026-01-05T10:30:00.500Z"}`)

	params, err := req.ToParams()
	if err != nil {
		t.Fatalf("ToParams: %v", err)
	}
	want := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	if !params.StartedAt.Valid || !params.StartedAt.Value.Equal(want) {
		t.Errorf("startedAt = %+v, want %v", params.StartedAt, want)
	}
	if !params.EndedAt.Valid || params.EndedAt.Value.Nanosecond() != 500_000_000 {
		t.Errorf("endedAt = %+v, want fractional seconds preserved", params.EndedAt)
	}

	req = decodeUpdate(t, `{"endedAt": "noon"}`)
	if _, err := req.ToParams(); err == nil {
		t.Error("non-ISO endedAt should be rejected")
	}
}
