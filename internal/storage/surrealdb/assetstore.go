package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

type AssetStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAssetStore(db *surrealdb.DB, logger *common.Logger) *AssetStore {
	return &AssetStore{
		db:     db,
		logger: logger,
	}
}

// Get returns the asset with its collections populated.
func (s *AssetStore) Get(ctx context.Context, id string) (*models.Asset, error) {
	doc, err := surrealdb.Select[assetDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableAsset, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select asset: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.AssetID == "" {
		return nil, fmt.Errorf("%w: asset %s", models.ErrNotFound, id)
	}

	asset, err := assetFromDoc(doc)
	if err != nil {
		return nil, err
	}

	collections, err := s.ListCollections(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, c := range collections {
		asset.Collections = append(asset.Collections, *c)
	}
	return asset, nil
}

func (s *AssetStore) List(ctx context.Context) ([]*models.Asset, error) {
	sql := fmt.Sprintf("SELECT * FROM %s ORDER BY creation_date DESC", models.TableAsset)

	results, err := surrealdb.Query[[]assetDoc](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list assets: %v", models.ErrStoreUnavailable, err)
	}

	var assets []*models.Asset
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			a, err := assetFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (s *AssetStore) GetCollection(ctx context.Context, id string) (*models.AssetCollection, error) {
	doc, err := surrealdb.Select[collectionDoc](ctx, s.db, surrealmodels.NewRecordID(models.TableAssetCollection, id))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select collection: %v", models.ErrStoreUnavailable, err)
	}
	if doc == nil || doc.CollectionID == "" {
		return nil, fmt.Errorf("%w: collection %s", models.ErrNotFound, id)
	}
	return collectionFromDoc(doc)
}

func (s *AssetStore) ListCollections(ctx context.Context, assetID string) ([]*models.AssetCollection, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE asset_id = $asset_id ORDER BY date ASC", models.TableAssetCollection)
	vars := map[string]any{"asset_id": assetID}

	results, err := surrealdb.Query[[]collectionDoc](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list collections: %v", models.ErrStoreUnavailable, err)
	}

	var collections []*models.AssetCollection
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			c, err := collectionFromDoc(&(*results)[0].Result[i])
			if err != nil {
				return nil, err
			}
			collections = append(collections, c)
		}
	}
	return collections, nil
}

func (s *AssetStore) AnyCollectionForWallet(ctx context.Context, walletID string) (bool, error) {
	sql := fmt.Sprintf("SELECT collection_id FROM %s WHERE wallet_id = $wallet_id LIMIT 1", models.TableAssetCollection)
	vars := map[string]any{"wallet_id": walletID}

	results, err := surrealdb.Query[[]collectionDoc](ctx, s.db, sql, vars)
	if err != nil {
		return false, fmt.Errorf("%w: failed to query collections: %v", models.ErrStoreUnavailable, err)
	}
	return results != nil && len(*results) > 0 && len((*results)[0].Result) > 0, nil
}
