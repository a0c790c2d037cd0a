package settlement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const storageKey = "settlements"

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Settlement receipt not found")
)

// Save puts a single receipt in storage.
func Save(ctx context.Context, dbConn *db.DB, r *Receipt) error {
	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize receipt")
	}

	return dbConn.Put(ctx, buildStoragePath(r.SettlementID), data)
}

// Fetch a single receipt from storage.
func Fetch(ctx context.Context, dbConn *db.DB, settlementID uuid.UUID) (*Receipt, error) {
	b, err := dbConn.Fetch(ctx, buildStoragePath(settlementID))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch receipt")
	}

	result := Receipt{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize receipt")
	}

	return &result, nil
}

// List provides a list of all receipts in storage.
func List(ctx context.Context, dbConn *db.DB) ([]string, error) {
	return dbConn.List(ctx, storageKey)
}

// Returns the storage path prefix for a given identifier.
func buildStoragePath(settlementID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", storageKey, settlementID.String())
}
