package admin

import (
	"context"

	"enigma/internal/identity"
	puzzle "enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/models"
)

// Resolver identifies the caller. The service re-checks the admin role
// itself so it is safe to call outside the HTTP middleware.
type Resolver interface {
	Resolve(ctx context.Context, uuid string) (*identity.Identity, error)
}

// Engine applies the override to the stored lock state.
type Engine interface {
	AdminReset(ctx context.Context, uuid string, target models.Target) (*puzzle.User, error)
}

// UserLister returns every participant for the lock listing.
type UserLister interface {
	List(ctx context.Context) ([]*puzzle.User, error)
}
