package marketplace

import (
	"context"
	"encoding/json"

	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/pkg/errors"
)

const storageKey = "marketplace/config"

// Save puts the marketplace singleton in storage.
func Save(ctx context.Context, dbConn *db.DB, m *Marketplace) error {
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "Failed to serialize marketplace")
	}

	return dbConn.Put(ctx, storageKey, data)
}

// Fetch the marketplace singleton from storage.
func Fetch(ctx context.Context, dbConn *db.DB) (*Marketplace, error) {
	b, err := dbConn.Fetch(ctx, storageKey)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFound
		}

		return nil, errors.Wrap(err, "Failed to fetch marketplace")
	}

	result := Marketplace{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "Failed to deserialize marketplace")
	}

	return &result, nil
}
