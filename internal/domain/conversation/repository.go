package conversation

import "context"

// Repository exposes the storage primitives for conversation records.
// Implementations surface unique-constraint rejections on external_id as
// Conflict errors and missing ids as NotFound errors; anything else is a
// database error.
type Repository interface {
	// Insert persists a new record and fills the store assigned ID and
	// CreatedAt/UpdatedAt on the passed conversation.
	Insert(ctx context.Context, conv *Conversation) error
	// FindByID is a point lookup with no side effects.
	FindByID(ctx context.Context, id string) (*Conversation, error)
	// ListPage fetches one page ordered by started_at descending together
	// with the total record count.
	ListPage(ctx context.Context, limit, offset int) ([]*Conversation, int64, error)
	// UpdateFields applies only the explicitly present fields of params and
	// returns the updated record.
	UpdateFields(ctx context.Context, id string, params UpdateParams) (*Conversation, error)
}
