package metadata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "metadata"

// Save puts a single descriptor in storage.
func Save(ctx context.Context, dbConn *db.DB, d *Descriptor) error {
	data, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize descriptor")
	}

	return dbConn.Put(ctx, buildStoragePath(&d.AssetCode), data)
}

// Fetch a single descriptor from storage.
func Fetch(ctx context.Context, dbConn *db.DB, code *assets.Code) (*Descriptor, error) {
	b, err := dbConn.Fetch(ctx, buildStoragePath(code))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch descriptor")
	}

	result := Descriptor{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize descriptor")
	}

	return &result, nil
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(code *assets.Code) string {
	return fmt.Sprintf("%s/%s", storageKey, code.String())
}
