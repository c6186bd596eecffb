package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/rasimsen/ai-assistance-service/internal/domain/conversation"
	"github.com/rasimsen/ai-assistance-service/internal/utils/platformerrors"
)

func seedConversation(t *testing.T, repo *InMemoryRepository, startedAt time.Time, externalID *string) *domain.Conversation {
	t.Helper()

	conv := &domain.Conversation{
		StartedAt:        startedAt,
		Conversation:     "transcript",
		ConversationType: domain.TypeText,
		Direction:        domain.DirectionCustomer,
		Channel:          domain.ChannelWeb,
		ExternalID:       externalID,
	}
	if err := repo.Insert(context.Background(), conv); err != nil {
		t.Fatalf("seed insert: %v", err)
	}
	return conv
}

func TestInMemoryInsertAssignsIdentity(t *testing.T) {
	repo := NewInMemoryRepository()

	conv := seedConversation(t, repo, time.Now().UTC(), nil)
	if conv.ID == "" {
		t.Fatal("insert did not assign an id")
	}
	if conv.CreatedAt.IsZero() || conv.UpdatedAt.IsZero() {
		t.Error("insert did not stamp createdAt/updatedAt")
	}

	got, err := repo.FindByID(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("FindByID returned id %q, want %q", got.ID, conv.ID)
	}
}

func TestInMemoryDuplicateExternalIDConflicts(t *testing.T) {
	repo := NewInMemoryRepository()
	externalID := "telegram-77"

	seedConversation(t, repo, time.Now().UTC(), &externalID)

	dup := &domain.Conversation{
		StartedAt:        time.Now().UTC(),
		Conversation:     "second",
		ConversationType: domain.TypeText,
		Direction:        domain.DirectionCompany,
		Channel:          domain.ChannelTelegram,
		ExternalID:       &externalID,
	}
	err := repo.Insert(context.Background(), dup)
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("duplicate insert error = %v, want conflict", err)
	}

	var pe *platformerrors.PlatformError
	if !errors.As(err, &pe) || pe.Message != "externalId must be unique" {
		t.Errorf("conflict message = %v, want %q", err, "externalId must be unique")
	}
}

func TestInMemoryNullExternalIDsCoexist(t *testing.T) {
	repo := NewInMemoryRepository()

	seedConversation(t, repo, time.Now().UTC(), nil)
	seedConversation(t, repo, time.Now().UTC(), nil)

	_, total, err := repo.ListPage(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 records with null externalId", total)
	}
}

func TestInMemoryFindByIDNotFound(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	var pe *platformerrors.PlatformError
	if !errors.As(err, &pe) || pe.Message != "Conversation not found" {
		t.Errorf("message = %v, want %q", err, "Conversation not found")
	}
}

func TestInMemoryListPageOrdersByStartedAtDesc(t *testing.T) {
	repo := NewInMemoryRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	oldest := seedConversation(t, repo, base, nil)
	newest := seedConversation(t, repo, base.Add(2*time.Hour), nil)
	middle := seedConversation(t, repo, base.Add(time.Hour), nil)

	items, total, err := repo.ListPage(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 2 || items[0].ID != newest.ID || items[1].ID != middle.ID {
		t.Errorf("first page not in startedAt descending order: %v", ids(items))
	}

	items, _, err = repo.ListPage(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListPage offset: %v", err)
	}
	if len(items) != 1 || items[0].ID != oldest.ID {
		t.Errorf("second page = %v, want only the oldest record", ids(items))
	}

	items, _, err = repo.ListPage(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListPage past end: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("offset past end returned %d items, want 0", len(items))
	}
}

func TestInMemoryUpdateOmitVersusClear(t *testing.T) {
	repo := NewInMemoryRepository()
	conv := seedConversation(t, repo, time.Now().UTC(), nil)
	if _, err := repo.UpdateFields(context.Background(), conv.ID, domain.UpdateParams{
		DisplayName:     domain.Some("Jane"),
		DurationSeconds: domain.Some(120),
	}); err != nil {
		t.Fatalf("seed update: %v", err)
	}

	updated, err := repo.UpdateFields(context.Background(), conv.ID, domain.UpdateParams{
		DisplayName:  domain.Null[string](),
		Conversation: domain.Some("amended transcript"),
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	if updated.DisplayName != nil {
		t.Errorf("displayName = %v, want cleared to null", *updated.DisplayName)
	}
	if updated.Conversation != "amended transcript" {
		t.Errorf("conversation = %q, want amended transcript", updated.Conversation)
	}
	if updated.DurationSeconds == nil || *updated.DurationSeconds != 120 {
		t.Error("omitted durationSeconds should be left unchanged")
	}
}

func TestInMemoryUpdateExternalIDConflict(t *testing.T) {
	repo := NewInMemoryRepository()
	taken := "web-1"
	seedConversation(t, repo, time.Now().UTC(), &taken)
	target := seedConversation(t, repo, time.Now().UTC(), nil)

	_, err := repo.UpdateFields(context.Background(), target.ID, domain.UpdateParams{
		ExternalID: domain.Some("web-1"),
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}

	// Re-asserting a record's own externalId is not a conflict.
	keeper := seedConversation(t, repo, time.Now().UTC(), nil)
	if _, err := repo.UpdateFields(context.Background(), keeper.ID, domain.UpdateParams{
		ExternalID: domain.Some("web-2"),
	}); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if _, err := repo.UpdateFields(context.Background(), keeper.ID, domain.UpdateParams{
		ExternalID: domain.Some("web-2"),
	}); err != nil {
		t.Errorf("re-asserting own externalId: %v, want no error", err)
	}
}

func TestInMemoryUpdateMissingRecord(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.UpdateFields(context.Background(), "missing", domain.UpdateParams{
		DisplayName: domain.Some("x"),
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func ids(items []*domain.Conversation) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
