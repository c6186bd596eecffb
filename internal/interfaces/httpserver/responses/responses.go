package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
	"github.com/rasimsen/ai-assistance-service/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details.
type ErrorResponse struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps domain errors onto HTTP responses. Platform errors carry
// the client-facing message and status; anything else is an opaque internal
// error.
func HandleError(reqCtx *gin.Context, err error, fallback string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		message := domainErr.Message
		if statusCode == http.StatusInternalServerError {
			// Internal detail stays in the logs.
			message = fallback
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      domainErr.GetUUID(),
			Error:     message,
			Message:   message,
			RequestID: domainErr.GetRequestID(),
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   fallback,
		Message: fallback,
	})
}

// HandleNewError creates a typed error at the route layer and responds with it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, code string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, code)

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType()), ErrorResponse{
		Code:      err.GetUUID(),
		Error:     message,
		Message:   message,
		RequestID: err.GetRequestID(),
	})
}

// ConversationPayload is the wire representation of a conversation record.
type ConversationPayload struct {
	ID                   string         `json:"id"`
	StartedAt            time.Time      `json:"startedAt"`
	EndedAt              *time.Time     `json:"endedAt"`
	DurationSeconds      *int           `json:"durationSeconds"`
	Conversation         string         `json:"conversation"`
	ConversationType     string         `json:"conversationType"`
	ConversationVoiceURL *string        `json:"conversationVoiceUrl"`
	Direction            string         `json:"direction"`
	ChannelUserID        *string        `json:"channelUserId"`
	DisplayName          *string        `json:"displayName"`
	DisplayPhotoURL      *string        `json:"displayPhotoUrl"`
	Channel              string         `json:"channel"`
	ExternalID           *string        `json:"externalId"`
	Metadata             map[string]any `json:"metadata"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// FromDomain maps the domain conversation to its payload.
func FromDomain(c *domain.Conversation) ConversationPayload {
	return ConversationPayload{
		ID:                   c.ID,
		StartedAt:            c.StartedAt,
		EndedAt:              c.EndedAt,
		DurationSeconds:      c.DurationSeconds,
		Conversation:         c.Conversation,
		ConversationType:     string(c.ConversationType),
		ConversationVoiceURL: c.ConversationVoiceURL,
		Direction:            string(c.Direction),
		ChannelUserID:        c.ChannelUserID,
		DisplayName:          c.DisplayName,
		DisplayPhotoURL:      c.DisplayPhotoURL,
		Channel:              string(c.Channel),
		ExternalID:           c.ExternalID,
		Metadata:             c.Metadata,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// ConversationListResponse wraps one page plus the collection total.
type ConversationListResponse struct {
	Items []ConversationPayload `json:"items"`
	Total int64                 `json:"total"`
}

// FromPage maps a domain page to its payload.
func FromPage(page *domain.Page) ConversationListResponse {
	items := make([]ConversationPayload, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromDomain(item)
	}
	return ConversationListResponse{Items: items, Total: page.Total}
}
