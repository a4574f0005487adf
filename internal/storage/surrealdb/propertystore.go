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

type PropertyStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPropertyStore(db *surrealdb.DB, logger *common.Logger) *PropertyStore {
	return &PropertyStore{
		db:     db,
		logger: logger,
	}
}

func (s *PropertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	p, err := surrealdb.Select[models.Property](ctx, s.db, surrealmodels.NewRecordID(models.TableProperty, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select property: %v", models.ErrStoreUnavailable, err)
	}
	if p == nil || p.ID == "" {
		return nil, fmt.Errorf("%w: property %s", models.ErrNotFound, id)
	}
	return p, nil
}

func (s *PropertyStore) List(ctx context.Context) ([]*models.Property, error) {
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY `order` ASC, name ASC", models.TableProperty)

	results, err := surrealdb.Query[[]models.Property](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list properties: %v", models.ErrStoreUnavailable, err)
	}

	var properties []*models.Property
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			properties = append(properties, &(*results)[0].Result[i])
		}
	}
	return properties, nil
}

func (s *PropertyStore) Save(ctx context.Context, property *models.Property) error {
	property.UpdatedAt = time.Now()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = property.UpdatedAt
	}

	sql := fmt.Sprintf("UPSERT type::record('%s', $id) CONTENT $doc", models.TableProperty)
	vars := map[string]any{"id": property.ID, "doc": property}

	if _, err := surrealdb.Query[[]models.Property](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("%w: failed to save property: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Property](ctx, s.db, surrealmodels.NewRecordID(models.TableProperty, id))
	if err != nil {
		return fmt.Errorf("%w: failed to delete property: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}
