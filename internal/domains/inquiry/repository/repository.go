package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fixpoint/infras/otel"
	"fixpoint/infras/postgres"
	"fixpoint/internal/domains/inquiry/model"
	gDto "fixpoint/shared/dto"
	gRepo "fixpoint/shared/repository"
)

type Inquiry interface {
	Insert(ctx context.Context, model model.InboundMessage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.InboundMessage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.InboundMessage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.InboundMessage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Inquiry {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.InboundMessage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
