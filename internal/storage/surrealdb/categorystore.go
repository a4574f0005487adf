package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type CategoryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCategoryStore(db *surrealdb.DB, logger *common.Logger) *CategoryStore {
	return &CategoryStore{
		db:     db,
		logger: logger,
	}
}

func (s *CategoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := surrealdb.Select[models.Category](ctx, s.db, surrealmodels.NewRecordID(models.TableCategory, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select category: %v", models.ErrStoreUnavailable, err)
	}
	if c == nil || c.ID == "" {
		return nil, fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}
	return c, nil
}

func (s *CategoryStore) List(ctx context.Context, kind models.CategoryKind) ([]*models.Category, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE kind = $kind ORDER BY name ASC", models.TableCategory)
	vars := map[string]any{"kind": string(kind)}

	results, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list categories: %v", models.ErrStoreUnavailable, err)
	}

	var categories []*models.Category
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			categories = append(categories, &(*results)[0].Result[i])
		}
	}
	return categories, nil
}

func (s *CategoryStore) Save(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = category.UpdatedAt
	}

	sql := fmt.Sprintf("UPSERT type::record('%s', $id) CONTENT $doc", models.TableCategory)
	vars := map[string]any{"id": category.ID, "doc": category}

	if _, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("%w: failed to save category: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Category](ctx, s.db, surrealmodels.NewRecordID(models.TableCategory, id))
	if err != nil {
		return fmt.Errorf("%w: failed to delete category: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}
