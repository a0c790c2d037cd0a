package assets

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Asset not found")

	// ErrInvalidHolder occurs when the asset holder does not match the
	// expected identity.
	ErrInvalidHolder = errors.New("Asset holder mismatch")

	// ErrFrozen occurs when a transfer is attempted on a locked asset.
	ErrFrozen = errors.New("Asset is frozen")
)

// Mint creates a new asset held by the given identity and saves it.
func Mint(ctx context.Context, dbConn *db.DB, holder identity.PublicKey,
	now time.Time) (*Asset, error) {

	ctx, span := trace.StartSpan(ctx, "internal.assets.Mint")
	defer span.End()

	uid, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate asset code")
	}

	// Asset codes are derived from random key material and the first holder.
	digest := sha256.New()
	digest.Write(uid[:])
	digest.Write(holder.Bytes())

	a := Asset{
		Holder:    holder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	copy(a.Code[:], digest.Sum(nil))

	if err := Save(ctx, dbConn, &a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}

	logger.Verbose(ctx, "Minted asset %s for %s", a.Code.String(), holder.String())
	return &a, nil
}

// Transfer moves the asset from one holder to another. The asset is only
// mutated in memory; the caller persists it once the whole settlement has
// been applied.
func Transfer(ctx context.Context, a *Asset, from, to identity.PublicKey,
	now time.Time) error {

	if !a.Holder.Equal(from) {
		return ErrInvalidHolder
	}

	if a.FreezeAuthority != nil || a.HolderLockAuthority != nil {
		return ErrFrozen
	}

	a.Holder = to
	a.Revision++
	a.UpdatedAt = now

	return nil
}
