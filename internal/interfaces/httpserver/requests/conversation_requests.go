package requests

import (
	"fmt"
	"net/url"
	"time"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
)

// CreateConversationRequest models POST /v1/conversations input. Field names
// and enum values match the wire contract exactly.
type CreateConversationRequest struct {
	StartedAt            string         `json:"startedAt" binding:"required" example:"2025-12-23T01:00:00.000Z"`
	EndedAt              *string        `json:"endedAt,omitempty" example:"2025-12-23T01:10:00.000Z"`
	DurationSeconds      *int           `json:"durationSeconds,omitempty" binding:"omitempty,min=0" example:"600"`
	Conversation         string         `json:"conversation" binding:"required" example:"User: Hello\nAI: Hi! How can I help?"`
	ConversationType     string         `json:"conversationType" binding:"required,oneof=VOICE TEXT" example:"TEXT"`
	ConversationVoiceURL *string        `json:"conversationVoiceUrl,omitempty" binding:"omitempty,url" example:"https://storage.example.com/audio/abc.mp3"`
	Direction            string         `json:"direction" binding:"required,oneof=CUSTOMER COMPANY" example:"CUSTOMER"`
	ChannelUserID        *string        `json:"channelUserId,omitempty" binding:"omitempty,max=128" example:"+447700900123"`
	DisplayName          *string        `json:"displayName,omitempty" binding:"omitempty,max=200" example:"John Doe"`
	DisplayPhotoURL      *string        `json:"displayPhotoUrl,omitempty" binding:"omitempty,url" example:"https://example.com/photo.jpg"`
	Channel              string         `json:"channel" binding:"required,oneof=TWILIO TELEGRAM WEB WHATSAPP" example:"TWILIO"`
	ExternalID           *string        `json:"externalId,omitempty" binding:"omitempty,max=200" example:"CA1234567890"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}

// ToParams converts the request into domain create parameters, parsing the
// date-time strings. Validation failures never reach the service layer.
func (r CreateConversationRequest) ToParams() (domain.CreateParams, error) {
	startedAt, err := parseDateTime(r.StartedAt)
	if err != nil {
		return domain.CreateParams{}, fmt.Errorf("startedAt must be an ISO-8601 date-time string")
	}

	var endedAt *time.Time
	if r.EndedAt != nil {
		parsed, err := parseDateTime(*r.EndedAt)
		if err != nil {
			return domain.CreateParams{}, fmt.Errorf("endedAt must be an ISO-8601 date-time string")
		}
		endedAt = &parsed
	}

	return domain.CreateParams{
		StartedAt:            startedAt,
		EndedAt:              endedAt,
		DurationSeconds:      r.DurationSeconds,
		Conversation:         r.Conversation,
		ConversationType:     domain.ConversationType(r.ConversationType),
		ConversationVoiceURL: r.ConversationVoiceURL,
		Direction:            domain.Direction(r.Direction),
		ChannelUserID:        r.ChannelUserID,
		DisplayName:          r.DisplayName,
		DisplayPhotoURL:      r.DisplayPhotoURL,
		Channel:              domain.Channel(r.Channel),
		ExternalID:           r.ExternalID,
		Metadata:             r.Metadata,
	}, nil
}

// UpdateConversationRequest models PATCH /v1/conversations/:id input. Every
// field is optional; an omitted field leaves the stored value untouched while
// an explicit null clears it (for fields where clearing is meaningful).
type UpdateConversationRequest struct {
	StartedAt            domain.Opt[string]         `json:"startedAt"`
	EndedAt              domain.Opt[string]         `json:"endedAt"`
	DurationSeconds      domain.Opt[int]            `json:"durationSeconds"`
	Conversation         domain.Opt[string]         `json:"conversation"`
	ConversationType     domain.Opt[string]         `json:"conversationType"`
	ConversationVoiceURL domain.Opt[string]         `json:"conversationVoiceUrl"`
	Direction            domain.Opt[string]         `json:"direction"`
	ChannelUserID        domain.Opt[string]         `json:"channelUserId"`
	DisplayName          domain.Opt[string]         `json:"displayName"`
	DisplayPhotoURL      domain.Opt[string]         `json:"displayPhotoUrl"`
	Channel              domain.Opt[string]         `json:"channel"`
	ExternalID           domain.Opt[string]         `json:"externalId"`
	Metadata             domain.Opt[map[string]any] `json:"metadata"`
}

// ToParams validates the explicitly present fields and converts them into
// domain update parameters.
func (r UpdateConversationRequest) ToParams() (domain.UpdateParams, error) {
	params := domain.UpdateParams{
		DurationSeconds: r.DurationSeconds,
		Metadata:        r.Metadata,
	}

	if r.DurationSeconds.Set && r.DurationSeconds.Valid && r.DurationSeconds.Value < 0 {
		return domain.UpdateParams{}, fmt.Errorf("durationSeconds must not be negative")
	}

	if r.StartedAt.Set {
		if !r.StartedAt.Valid {
			return domain.UpdateParams{}, fmt.Errorf("startedAt cannot be cleared")
		}
		parsed, err := parseDateTime(r.StartedAt.Value)
		if err != nil {
			return domain.UpdateParams{}, fmt.Errorf("startedAt must be an ISO-8601 date-time string")
		}
		params.StartedAt = domain.Some(parsed)
	}
	if r.EndedAt.Set {
		if !r.EndedAt.Valid {
			params.EndedAt = domain.Null[time.Time]()
		} else {
			parsed, err := parseDateTime(r.EndedAt.Value)
			if err != nil {
				return domain.UpdateParams{}, fmt.Errorf("endedAt must be an ISO-8601 date-time string")
			}
			params.EndedAt = domain.Some(parsed)
		}
	}

	if r.Conversation.Set {
		if !r.Conversation.Valid {
			return domain.UpdateParams{}, fmt.Errorf("conversation cannot be cleared")
		}
		params.Conversation = domain.Some(r.Conversation.Value)
	}

	conversationType, err := convertEnum(r.ConversationType, "conversationType",
		string(domain.TypeVoice), string(domain.TypeText))
	if err != nil {
		return domain.UpdateParams{}, err
	}
	params.ConversationType = castOpt[domain.ConversationType](conversationType)

	direction, err := convertEnum(r.Direction, "direction",
		string(domain.DirectionCustomer), string(domain.DirectionCompany))
	if err != nil {
		return domain.UpdateParams{}, err
	}
	params.Direction = castOpt[domain.Direction](direction)

	channel, err := convertEnum(r.Channel, "channel",
		string(domain.ChannelTwilio), string(domain.ChannelTelegram),
		string(domain.ChannelWeb), string(domain.ChannelWhatsApp))
	if err != nil {
		return domain.UpdateParams{}, err
	}
	params.Channel = castOpt[domain.Channel](channel)

	if err := validateOptURL(r.ConversationVoiceURL, "conversationVoiceUrl"); err != nil {
		return domain.UpdateParams{}, err
	}
	params.ConversationVoiceURL = r.ConversationVoiceURL

	if err := validateOptURL(r.DisplayPhotoURL, "displayPhotoUrl"); err != nil {
		return domain.UpdateParams{}, err
	}
	params.DisplayPhotoURL = r.DisplayPhotoURL

	if err := validateOptMax(r.ChannelUserID, "channelUserId", 128); err != nil {
		return domain.UpdateParams{}, err
	}
	params.ChannelUserID = r.ChannelUserID

	if err := validateOptMax(r.DisplayName, "displayName", 200); err != nil {
		return domain.UpdateParams{}, err
	}
	params.DisplayName = r.DisplayName

	if err := validateOptMax(r.ExternalID, "externalId", 200); err != nil {
		return domain.UpdateParams{}, err
	}
	params.ExternalID = r.ExternalID

	return params, nil
}

// parseDateTime accepts RFC 3339 date-time strings, with or without
// fractional seconds.
func parseDateTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

func convertEnum(opt domain.Opt[string], field string, allowed ...string) (domain.Opt[string], error) {
	if !opt.Set {
		return opt, nil
	}
	if !opt.Valid {
		return domain.Opt[string]{}, fmt.Errorf("%s cannot be cleared", field)
	}
	for _, candidate := range allowed {
		if opt.Value == candidate {
			return opt, nil
		}
	}
	return domain.Opt[string]{}, fmt.Errorf("%s must be one of %v", field, allowed)
}

func castOpt[T ~string](opt domain.Opt[string]) domain.Opt[T] {
	return domain.Opt[T]{
		Value: T(opt.Value),
		Set:   opt.Set,
		Valid: opt.Valid,
	}
}

func validateOptURL(opt domain.Opt[string], field string) error {
	if !opt.Set || !opt.Valid {
		return nil
	}
	u, err := url.ParseRequestURI(opt.Value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be a valid URL", field)
	}
	return nil
}

func validateOptMax(opt domain.Opt[string], field string, max int) error {
	if !opt.Set || !opt.Valid {
		return nil
	}
	if len(opt.Value) > max {
		return fmt.Errorf("%s must be at most %d characters", field, max)
	}
	return nil
}
