package conversation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
	"github.com/rasimsen/ai-assistance-service/internal/utils/platformerrors"
)

// InMemoryRepository is a thread-safe repository useful for demos/tests.
// It mirrors the postgres repository's outcome contract, including the
// uniqueness of non-null external ids.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Conversation
}

// NewInMemoryRepository creates an empty in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*domain.Conversation),
	}
}

// Insert assigns an id and stores a copy of the record.
func (r *InMemoryRepository) Insert(ctx context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conv.ExternalID != nil && r.externalIDTakenLocked(*conv.ExternalID, "") {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, msgConflict, nil, "inmemory-insert-conflict")
	}

	now := time.Now().UTC()
	conv.ID = uuid.NewString()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	stored := *conv
	r.records[conv.ID] = &stored
	return nil
}

// FindByID returns a copy of the stored record.
func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, msgNotFound, nil, "inmemory-find-not-found")
	}
	found := *stored
	return &found, nil
}

// ListPage returns one page ordered by StartedAt descending plus the total.
func (r *InMemoryRepository) ListPage(ctx context.Context, limit, offset int) ([]*domain.Conversation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Conversation, 0, len(r.records))
	for _, stored := range r.records {
		found := *stored
		all = append(all, &found)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartedAt.After(all[j].StartedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Conversation{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// UpdateFields applies the explicitly present fields of params.
func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, params domain.UpdateParams) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, msgNotFound, nil, "inmemory-update-not-found")
	}

	if params.ExternalID.Set && params.ExternalID.Valid &&
		r.externalIDTakenLocked(params.ExternalID.Value, id) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, msgConflict, nil, "inmemory-update-conflict")
	}

	if params.StartedAt.Set && params.StartedAt.Valid {
		stored.StartedAt = params.StartedAt.Value
	}
	if params.Conversation.Set && params.Conversation.Valid {
		stored.Conversation = params.Conversation.Value
	}
	if params.ConversationType.Set && params.ConversationType.Valid {
		stored.ConversationType = params.ConversationType.Value
	}
	if params.Direction.Set && params.Direction.Valid {
		stored.Direction = params.Direction.Value
	}
	if params.Channel.Set && params.Channel.Valid {
		stored.Channel = params.Channel.Value
	}
	if params.EndedAt.Set {
		stored.EndedAt = params.EndedAt.Ptr()
	}
	if params.DurationSeconds.Set {
		stored.DurationSeconds = params.DurationSeconds.Ptr()
	}
	if params.ConversationVoiceURL.Set {
		stored.ConversationVoiceURL = params.ConversationVoiceURL.Ptr()
	}
	if params.ChannelUserID.Set {
		stored.ChannelUserID = params.ChannelUserID.Ptr()
	}
	if params.DisplayName.Set {
		stored.DisplayName = params.DisplayName.Ptr()
	}
	if params.DisplayPhotoURL.Set {
		stored.DisplayPhotoURL = params.DisplayPhotoURL.Ptr()
	}
	if params.ExternalID.Set {
		stored.ExternalID = params.ExternalID.Ptr()
	}
	if params.Metadata.Set {
		if params.Metadata.Valid {
			stored.Metadata = params.Metadata.Value
		} else {
			stored.Metadata = nil
		}
	}
	stored.UpdatedAt = time.Now().UTC()

	updated := *stored
	return &updated, nil
}

func (r *InMemoryRepository) externalIDTakenLocked(externalID, excludeID string) bool {
	for id, stored := range r.records {
		if id == excludeID {
			continue
		}
		if stored.ExternalID != nil && *stored.ExternalID == externalID {
			return true
		}
	}
	return false
}
