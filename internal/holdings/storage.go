package holdings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
)

const storageKey = "holdings"

// Serializes writes so concurrent settlements on different listings don't
// interleave partial holding writes.
var storageLock sync.Mutex

// Save puts a single holding in storage.
func Save(ctx context.Context, dbConn *db.DB, h *Holding) error {
	storageLock.Lock()
	defer storageLock.Unlock()

	data, err := json.Marshal(h)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize holding")
	}

	return dbConn.Put(ctx, buildStoragePath(h.Address), data)
}

// Fetch a single holding from storage.
func Fetch(ctx context.Context, dbConn *db.DB, address identity.PublicKey) (*Holding, error) {
	b, err := dbConn.Fetch(ctx, buildStoragePath(address))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch holding")
	}

	result := Holding{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize holding")
	}

	return &result, nil
}

// List provides a list of all holdings in storage.
func List(ctx context.Context, dbConn *db.DB) ([]string, error) {
	return dbConn.List(ctx, storageKey)
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(address identity.PublicKey) string {
	return fmt.Sprintf("%s/%s", storageKey, address.String())
}
