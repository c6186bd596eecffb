package conversation

import (
	"context"

	"github.com/rs/zerolog"
)

// List page size bounds. Untrusted caller input is clamped into these so a
// single request cannot ask the store for an unbounded page.
const (
	MinTake = 1
	MaxTake = 100
)

// Service describes the business logic surface for conversation records.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Conversation, error)
	FindByID(ctx context.Context, id string) (*Conversation, error)
	List(ctx context.Context, take, skip int) (*Page, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Conversation, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the conversation service with its repository.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "conversation-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Conversation, error) {
	conv := &Conversation{
		StartedAt:            params.StartedAt,
		EndedAt:              params.EndedAt,
		DurationSeconds:      params.DurationSeconds,
		Conversation:         params.Conversation,
		ConversationType:     params.ConversationType,
		ConversationVoiceURL: params.ConversationVoiceURL,
		Direction:            params.Direction,
		ChannelUserID:        params.ChannelUserID,
		DisplayName:          params.DisplayName,
		DisplayPhotoURL:      params.DisplayPhotoURL,
		Channel:              params.Channel,
		ExternalID:           params.ExternalID,
		Metadata:             params.Metadata,
	}

	if err := s.repo.Insert(ctx, conv); err != nil {
		s.log.Error().Err(err).Str("channel", string(params.Channel)).Msg("create conversation")
		return nil, err
	}

	s.log.Info().Str("conversation_id", conv.ID).Str("channel", string(conv.Channel)).Msg("conversation created")
	return conv, nil
}

func (s *service) FindByID(ctx context.Context, id string) (*Conversation, error) {
	conv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *service) List(ctx context.Context, take, skip int) (*Page, error) {
	take = clampTake(take)
	skip = clampSkip(skip)

	items, total, err := s.repo.ListPage(ctx, take, skip)
	if err != nil {
		s.log.Error().Err(err).Int("take", take).Int("skip", skip).Msg("list conversations")
		return nil, err
	}

	return &Page{Items: items, Total: total}, nil
}

func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Conversation, error) {
	conv, err := s.repo.UpdateFields(ctx, id, params)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", id).Msg("update conversation")
		return nil, err
	}

	s.log.Info().Str("conversation_id", id).Msg("conversation updated")
	return conv, nil
}

func clampTake(take int) int {
	if take < MinTake {
		return MinTake
	}
	if take > MaxTake {
		return MaxTake
	}
	return take
}

func clampSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}
