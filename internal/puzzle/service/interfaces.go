package service

import (
	"context"

	"enigma/internal/identity"
	"enigma/internal/puzzle/models"
	lockout "enigma/internal/ratelimit/models"
)

type Resolver interface {
	Resolve(ctx context.Context, uuid string) (*identity.Identity, error)
	Require(ctx context.Context, uuid string, roles ...models.Role) (*identity.Identity, error)
}

// Limiter is the lockout engine as seen by the puzzle flows.
type Limiter interface {
	CheckAnswerLimit(ctx context.Context, uuid string) (lockout.Status, error)
	RecordAnswerFailure(ctx context.Context, uuid string) (lockout.Status, error)
	CheckHintLimit(ctx context.Context, uuid string) (lockout.Status, error)
	RecordHintFailure(ctx context.Context, uuid string) (lockout.Status, error)
	// CommitSuccess runs apply and clears both channels in one write.
	CommitSuccess(ctx context.Context, uuid string, apply func(u *models.User) error) (*models.User, error)
}

type QuestionReader interface {
	List(ctx context.Context) (models.QuestionSet, error)
}

type ConfigReader interface {
	Get(ctx context.Context) (*models.AdminConfig, error)
}
