package user

import "context"

// UserRepository defines data access methods for portal users
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByOAuth retrieves a user by OAuth provider and provider ID
	GetByOAuth(ctx context.Context, provider string, providerID string) (User, error)

	// Create creates a new user
	Create(ctx context.Context, user User) (User, error)
}
