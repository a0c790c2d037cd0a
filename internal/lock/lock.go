// Package lock governs whether an asset may currently be transferred.
//
// An asset is Locked when its mint carries a freeze authority and the
// holder's self-transfer capability has been revoked to that authority. The
// only path that locks an asset is a soulbound purchase; unlocking is
// self-service by the current holder.
package lock

import (
	"context"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

var (
	// ErrNotHolder occurs when someone other than the current holder
	// attempts to unlock an asset.
	ErrNotHolder = errors.New("Requester is not the asset holder")
)

// Apply transitions the asset to Locked in memory. The authority becomes the
// only identity able to release the holder's account.
func Apply(a *assets.Asset, authority identity.PublicKey, now time.Time) {
	a.FreezeAuthority = &authority
	a.HolderLockAuthority = &authority
	a.Revision++
	a.UpdatedAt = now
}

// Release transitions the asset to Unlocked in memory. Only the current
// holder may release. Releasing an already unlocked asset is a no-op.
func Release(a *assets.Asset, requester identity.PublicKey, now time.Time) error {
	if !a.Holder.Equal(requester) {
		return ErrNotHolder
	}

	if a.FreezeAuthority == nil && a.HolderLockAuthority == nil {
		return nil
	}

	a.FreezeAuthority = nil
	a.HolderLockAuthority = nil
	a.Revision++
	a.UpdatedAt = now
	return nil
}

// Locked reports whether the asset is currently non-transferable.
func Locked(a *assets.Asset) bool {
	return a.FreezeAuthority != nil || a.HolderLockAuthority != nil
}

// Lock fetches the asset, applies the lock and saves it.
func Lock(ctx context.Context, dbConn *db.DB, code *assets.Code,
	authority identity.PublicKey, now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.lock.Lock")
	defer span.End()

	a, err := assets.Fetch(ctx, dbConn, code)
	if err != nil {
		return err
	}

	Apply(a, authority, now)

	if err := assets.Save(ctx, dbConn, a); err != nil {
		return errors.Wrap(err, "save asset")
	}

	logger.Verbose(ctx, "Locked asset %s to authority %s", code.String(), authority.String())
	return nil
}

// Unlock fetches the asset, releases the lock and saves it.
func Unlock(ctx context.Context, dbConn *db.DB, code *assets.Code,
	requester identity.PublicKey, now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.lock.Unlock")
	defer span.End()

	a, err := assets.Fetch(ctx, dbConn, code)
	if err != nil {
		return err
	}

	if err := Release(a, requester, now); err != nil {
		return err
	}

	if err := assets.Save(ctx, dbConn, a); err != nil {
		return errors.Wrap(err, "save asset")
	}

	return nil
}

// IsLocked reports whether the stored asset is currently non-transferable.
func IsLocked(ctx context.Context, dbConn *db.DB, code *assets.Code) (bool, error) {
	a, err := assets.Fetch(ctx, dbConn, code)
	if err != nil {
		return false, err
	}

	return Locked(a), nil
}
