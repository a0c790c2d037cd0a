package assets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "assets"

// Save puts a single asset in storage.
func Save(ctx context.Context, dbConn *db.DB, a *Asset) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize asset")
	}

	return dbConn.Put(ctx, buildStoragePath(&a.Code), data)
}

// Fetch a single asset from storage.
func Fetch(ctx context.Context, dbConn *db.DB, code *Code) (*Asset, error) {
	key := buildStoragePath(code)

	b, err := dbConn.Fetch(ctx, key)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch asset")
	}

	result := Asset{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize asset")
	}

	return &result, nil
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(code *Code) string {
	return fmt.Sprintf("%s/%s", storageKey, code.String())
}
