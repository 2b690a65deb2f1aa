package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"fixpoint/infras/otel"
	"fixpoint/infras/postgres"
	"fixpoint/internal/domains/coupon/model"
	"fixpoint/shared/constant"
	gDto "fixpoint/shared/dto"
	"fixpoint/shared/logger"
	gRepo "fixpoint/shared/repository"
	"fixpoint/shared/timezone"
)

type Coupon interface {
	Insert(ctx context.Context, model model.Coupon) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Coupon, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Coupon, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IncrementUses(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Coupon]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Coupon {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Coupon](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IncrementUses applies one redemption as a single conditional update so the
// usage cap holds under concurrent redemptions. Zero rows affected means the
// cap is already exhausted (or the coupon vanished); the caller decides which
// error to surface.
func (repo *repositoryImpl) IncrementUses(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".IncrementUses")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1, %s = :modified_at WHERE %s = :id AND (%s IS NULL OR %s < %s)",
		model.TableName,
		model.FieldCurrentUses, model.FieldCurrentUses,
		constant.FieldModifiedAt,
		model.FieldID,
		model.FieldMaxUses,
		model.FieldCurrentUses, model.FieldMaxUses,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"modified_at": timezone.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to increment coupon uses (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
