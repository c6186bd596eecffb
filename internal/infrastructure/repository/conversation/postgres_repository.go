package conversation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
	"github.com/rasimsen/ai-assistance-service/internal/infrastructure/database/entities"
	"github.com/rasimsen/ai-assistance-service/internal/utils/platformerrors"
)

// Client facing outcome messages. These are part of the HTTP contract.
const (
	msgNotFound = "Conversation not found"
	msgConflict = "externalId must be unique"
)

// PostgresRepository persists conversation records via PostgreSQL using GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a new record. The id is assigned here, never by the caller.
// A duplicate non-null external_id is rejected by the unique index and
// surfaced as a Conflict; that index is the sole source of Conflict outcomes,
// so there is no racy pre-check in application memory.
func (r *PostgresRepository) Insert(ctx context.Context, conv *domain.Conversation) error {
	entity := entities.NewSchemaConversation(conv)
	entity.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				msgConflict,
				err,
				"conversation-insert-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"conversation-insert-error",
		)
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByID fetches a conversation by its id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	if uuid.Validate(id) != nil {
		// A malformed uuid can never match a row; report it as absent instead
		// of letting postgres reject the cast.
		return nil, r.notFound(ctx, "conversation-find-invalid-id")
	}

	var entity entities.Conversation
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound(ctx, "conversation-find-not-found")
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
			"conversation-find-error",
		)
	}

	return entity.EtoD(), nil
}

// ListPage fetches one page ordered by started_at descending plus the total
// count. Both reads run concurrently and are not guaranteed to observe the
// same snapshot; under concurrent writes the total can disagree with the page
// by a row or two. Accepted tradeoff, mirrors issuing the two queries in
// parallel from the request handler.
func (r *PostgresRepository) ListPage(ctx context.Context, limit, offset int) ([]*domain.Conversation, int64, error) {
	var (
		records []entities.Conversation
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Order("started_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&records).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Model(&entities.Conversation{}).
			Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"conversation-list-error",
		)
	}

	result := make([]*domain.Conversation, len(records))
	for i := range records {
		result[i] = records[i].EtoD()
	}
	return result, total, nil
}

// UpdateFields applies only the explicitly present fields of params as one
// single-statement update. Last write wins between concurrent updates to the
// same id; no optimistic-concurrency token is used.
func (r *PostgresRepository) UpdateFields(ctx context.Context, id string, params domain.UpdateParams) (*domain.Conversation, error) {
	if uuid.Validate(id) != nil {
		return nil, r.notFound(ctx, "conversation-update-invalid-id")
	}

	updates := buildUpdates(params)
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				msgConflict,
				res.Error,
				"conversation-update-conflict",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation",
			res.Error,
			"conversation-update-error",
		)
	}
	if res.RowsAffected == 0 {
		return nil, r.notFound(ctx, "conversation-update-not-found")
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresRepository) notFound(ctx context.Context, code string) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerRepository,
		platformerrors.ErrorTypeNotFound,
		msgNotFound,
		nil,
		code,
	)
}

// buildUpdates maps the explicitly present fields to their columns. A present
// null clears the column; an absent field never appears in the map, so the
// stored value stays untouched.
func buildUpdates(params domain.UpdateParams) map[string]any {
	updates := map[string]any{}

	// Required-at-creation fields can be replaced but not cleared; an explicit
	// null is rejected at the binding layer before reaching this point.
	if params.StartedAt.Set && params.StartedAt.Valid {
		updates["started_at"] = params.StartedAt.Value
	}
	if params.Conversation.Set && params.Conversation.Valid {
		updates["conversation"] = params.Conversation.Value
	}
	if params.ConversationType.Set && params.ConversationType.Valid {
		updates["conversation_type"] = params.ConversationType.Value
	}
	if params.Direction.Set && params.Direction.Valid {
		updates["direction"] = params.Direction.Value
	}
	if params.Channel.Set && params.Channel.Valid {
		updates["channel"] = params.Channel.Value
	}

	if params.EndedAt.Set {
		updates["ended_at"] = params.EndedAt.Ptr()
	}
	if params.DurationSeconds.Set {
		updates["duration_seconds"] = params.DurationSeconds.Ptr()
	}
	if params.ConversationVoiceURL.Set {
		updates["conversation_voice_url"] = params.ConversationVoiceURL.Ptr()
	}
	if params.ChannelUserID.Set {
		updates["channel_user_id"] = params.ChannelUserID.Ptr()
	}
	if params.DisplayName.Set {
		updates["display_name"] = params.DisplayName.Ptr()
	}
	if params.DisplayPhotoURL.Set {
		updates["display_photo_url"] = params.DisplayPhotoURL.Ptr()
	}
	if params.ExternalID.Set {
		updates["external_id"] = params.ExternalID.Ptr()
	}
	if params.Metadata.Set {
		if params.Metadata.Valid {
			updates["metadata"] = entities.MarshalMetadata(params.Metadata.Value)
		} else {
			updates["metadata"] = entities.MarshalMetadata(nil)
		}
	}

	return updates
}
