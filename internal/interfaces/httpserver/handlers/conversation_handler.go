package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
	"github.com/rasimsen/ai-assistance-service/internal/infrastructure/metrics"
	"github.com/rasimsen/ai-assistance-service/internal/interfaces/httpserver/requests"
	"github.com/rasimsen/ai-assistance-service/internal/interfaces/httpserver/responses"
	"github.com/rasimsen/ai-assistance-service/internal/utils/platformerrors"
)

const (
	defaultTake = 20
	defaultSkip = 0
)

// ConversationHandler exposes HTTP entrypoints for conversation records.
type ConversationHandler struct {
	service domain.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service domain.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// Create handles POST /v1/conversations
// @Summary Create a conversation transcript record
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body requests.CreateConversationRequest true "Conversation record"
// @Success 201 {object} responses.ConversationPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req requests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "conversation-create-bind")
		return
	}

	params, err := req.ToParams()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "conversation-create-validate")
		return
	}

	conv, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}

	metrics.RecordCreated(string(conv.Channel), string(conv.ConversationType))
	c.JSON(http.StatusCreated, responses.FromDomain(conv))
}

// GetByID handles GET /v1/conversations/:id
// @Summary Get a conversation by id
// @Tags Conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationPayload
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id} [get]
func (h *ConversationHandler) GetByID(c *gin.Context) {
	conv, err := h.service.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get conversation")
		return
	}

	c.JSON(http.StatusOK, responses.FromDomain(conv))
}

// List handles GET /v1/conversations
// @Summary List conversations (paged)
// @Tags Conversations
// @Produce json
// @Param take query int false "Page size (clamped to 1..100)" default(20)
// @Param skip query int false "Offset (clamped to >= 0)" default(0)
// @Success 200 {object} responses.ConversationListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	take, ok := intQuery(c, "take", defaultTake)
	if !ok {
		return
	}
	skip, ok := intQuery(c, "skip", defaultSkip)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), take, skip)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, responses.FromPage(page))
}

// Update handles PATCH /v1/conversations/:id
// @Summary Update a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.UpdateConversationRequest true "Fields to update"
// @Success 200 {object} responses.ConversationPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id} [patch]
func (h *ConversationHandler) Update(c *gin.Context) {
	var req requests.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "conversation-update-bind")
		return
	}

	params, err := req.ToParams()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "conversation-update-validate")
		return
	}

	conv, err := h.service.Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		responses.HandleError(c, err, "failed to update conversation")
		return
	}

	c.JSON(http.StatusOK, responses.FromDomain(conv))
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			name+" must be an integer", "conversation-list-query")
		return 0, false
	}
	return value, true
}
