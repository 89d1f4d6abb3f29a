package ports

import (
	"context"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetAllActiveTranslators retrieves the full active translator pool,
	// the input to eligibility matching.
	GetAllActiveTranslators(ctx context.Context) ([]*user.User, error)
}

// LanguageCatalog resolves language ids to their display names for
// notification texts.
type LanguageCatalog interface {
	// NameByID returns the language's display name.
	NameByID(ctx context.Context, id kernel.UUID) (string, error)
}
