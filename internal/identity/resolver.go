// Package identity maps an access UUID to the role it grants.
package identity

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks ConfigReader,UserReader

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"enigma/internal/puzzle/models"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/sentinel"
	"enigma/pkg/platform/validation"
)

type ConfigReader interface {
	Get(ctx context.Context) (*models.AdminConfig, error)
}

type UserReader interface {
	Get(ctx context.Context, uuid string) (*models.User, error)
}

// Identity is the outcome of a resolution. User is set only for RoleUser.
type Identity struct {
	UUID  string
	Valid bool
	Role  models.Role
	User  *models.User
}

// Resolver has no side effects. Store failures surface as errors and never
// as a granted or denied role.
type Resolver struct {
	config ConfigReader
	users  UserReader
}

func NewResolver(config ConfigReader, users UserReader) (*Resolver, error) {
	if config == nil {
		return nil, fmt.Errorf("config reader is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user reader is required")
	}
	return &Resolver{config: config, users: users}, nil
}

// Resolve checks the admin and dashboard identities first, then the user
// table. Matching is exact.
func (r *Resolver) Resolve(ctx context.Context, uuid string) (*Identity, error) {
	id := &Identity{UUID: uuid, Role: models.RoleNone}
	if uuid == "" || !validation.IsAccessID(uuid) {
		return id, nil
	}

	cfg, err := r.config.Get(ctx)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load access configuration")
	case uuid == cfg.AdminUUID:
		id.Valid, id.Role = true, models.RoleAdmin
		return id, nil
	case uuid == cfg.DashboardUUID:
		id.Valid, id.Role = true, models.RoleDashboard
		return id, nil
	}

	user, err := r.users.Get(ctx, uuid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return id, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	id.Valid, id.Role, id.User = true, models.RoleUser, user
	return id, nil
}

// Require resolves uuid and insists on one of roles. A missing uuid is a bad
// request, a malformed one a validation error, an unknown one unauthorized
// and a role mismatch forbidden.
func (r *Resolver) Require(ctx context.Context, uuid string, roles ...models.Role) (*Identity, error) {
	if uuid == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "uuid is required")
	}
	if !validation.IsAccessID(uuid) {
		return nil, dErrors.New(dErrors.CodeValidation, "uuid is not a valid access UUID")
	}
	id, err := r.Resolve(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if !id.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid user")
	}
	if len(roles) > 0 && !slices.Contains(roles, id.Role) {
		return nil, dErrors.New(dErrors.CodeForbidden, "Access denied")
	}
	return id, nil
}
