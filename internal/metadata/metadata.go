package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/platform/db"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Descriptor not found")

	// ErrAlreadyExists occurs when a descriptor has already been written for
	// the asset. Descriptors are write-once.
	ErrAlreadyExists = errors.New("Descriptor already exists")
)

// Create writes the descriptor for a newly listed service.
func Create(ctx context.Context, dbConn *db.DB, assetCode assets.Code, name,
	description string, price uint64, isSoulbound bool, now time.Time) (*Descriptor, error) {

	ctx, span := trace.StartSpan(ctx, "internal.metadata.Create")
	defer span.End()

	if _, err := Fetch(ctx, dbConn, &assetCode); err == nil {
		return nil, ErrAlreadyExists
	} else if err != ErrNotFound {
		return nil, err
	}

	d := Descriptor{
		AssetCode:   assetCode,
		Name:        name,
		Description: description,
		Price:       price,
		IsSoulbound: isSoulbound,
		Symbol:      Symbol,
		URI:         buildURI(name, description, price, isSoulbound),
		CreatedAt:   now,
	}

	if err := Save(ctx, dbConn, &d); err != nil {
		return nil, errors.Wrap(err, "save descriptor")
	}

	return &d, nil
}

// buildURI renders the descriptor content as an inline JSON data URI.
func buildURI(name, description string, price uint64, isSoulbound bool) string {
	doc := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       uint64 `json:"price"`
		IsSoulbound bool   `json:"is_soulbound"`
	}{name, description, price, isSoulbound}

	// Marshal of a flat struct of these types cannot fail.
	b, _ := json.Marshal(&doc)

	return fmt.Sprintf("data:application/json,%s", b)
}
