package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"aulaboard/infras/otel"
	"aulaboard/infras/postgres"
	"aulaboard/internal/domains/usage/model"
	gDto "aulaboard/shared/dto"
	gRepo "aulaboard/shared/repository"
)

type Usage interface {
	Insert(ctx context.Context, model model.Usage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Usage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Usage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateChecked(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Usage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Usage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Usage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
