package handlers

import (
	"github.com/rs/zerolog"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Conversation *ConversationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(conversationService domain.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Conversation: NewConversationHandler(conversationService, log),
	}
}
