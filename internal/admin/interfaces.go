package admin

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks UserStore,QuestionStore,ConfigStore

import (
	"context"

	"enigma/internal/puzzle/models"
)

type UserStore interface {
	Get(ctx context.Context, uuid string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, uuid string) error
}

type QuestionStore interface {
	List(ctx context.Context) (models.QuestionSet, error)
	Replace(ctx context.Context, qs models.QuestionSet) error
}

type ConfigStore interface {
	Get(ctx context.Context) (*models.AdminConfig, error)
	Save(ctx context.Context, cfg *models.AdminConfig) error
}
