package store

import (
	"context"
	"errors"

	"github.com/keyfold/keyfold/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever outgrow it) implement this. The service layer only ever
// sees these interfaces so tests can swap in an in-memory database.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already registered; the
	// uniqueness check is atomic against concurrent registrations.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail is used during authentication and by the access gate.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}
