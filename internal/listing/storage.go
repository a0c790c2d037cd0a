package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "listings"

// Save puts a single listing in storage.
func Save(ctx context.Context, dbConn *db.DB, l *ServiceListing) error {
	data, err := json.Marshal(l)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize listing")
	}

	return dbConn.Put(ctx, buildStoragePath(&l.AssetCode), data)
}

// Fetch a single listing from storage.
func Fetch(ctx context.Context, dbConn *db.DB, code *assets.Code) (*ServiceListing, error) {
	b, err := dbConn.Fetch(ctx, buildStoragePath(code))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch listing")
	}

	result := ServiceListing{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize listing")
	}

	return &result, nil
}

// List provides a list of all listings in storage.
func List(ctx context.Context, dbConn *db.DB) ([]string, error) {
	return dbConn.List(ctx, storageKey)
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(code *assets.Code) string {
	return fmt.Sprintf("%s/%s", storageKey, code.String())
}
