package listing

import (
	"context"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/metadata"
	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

const (
	// MaxNameLength is the maximum byte length of a service name.
	MaxNameLength = 200

	// MaxDescriptionLength is the maximum byte length of a service
	// description.
	MaxDescriptionLength = 400
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Service listing not found")

	// ErrInvalidPrice occurs when a listing or resale price is zero.
	ErrInvalidPrice = errors.New("Invalid price")

	// ErrEmptyName occurs when the service name is blank.
	ErrEmptyName = errors.New("Empty service name")

	// ErrEmptyDescription occurs when the service description is blank.
	ErrEmptyDescription = errors.New("Empty service description")

	// ErrNameTooLong occurs when the service name exceeds the record size.
	ErrNameTooLong = errors.New("Service name too long")

	// ErrDescriptionTooLong occurs when the service description exceeds the
	// record size.
	ErrDescriptionTooLong = errors.New("Service description too long")

	// ErrInvalidOwner occurs when the requester is not the current vendor.
	ErrInvalidOwner = errors.New("Invalid listing owner")
)

// Create validates and stores a new service listing backed by a freshly
// minted asset owned by the vendor. The metadata descriptor write is best
// effort; its failure is logged and does not roll back the listing.
func Create(ctx context.Context, dbConn *db.DB, nu *NewListing,
	now time.Time) (*ServiceListing, error) {

	ctx, span := trace.StartSpan(ctx, "internal.listing.Create")
	defer span.End()

	if len(nu.Name) == 0 {
		return nil, ErrEmptyName
	}
	if len(nu.Name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if len(nu.Description) == 0 {
		return nil, ErrEmptyDescription
	}
	if len(nu.Description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	if nu.Price == 0 {
		return nil, ErrInvalidPrice
	}

	a, err := assets.Mint(ctx, dbConn, nu.Vendor, now)
	if err != nil {
		return nil, errors.Wrap(err, "mint asset")
	}

	l := ServiceListing{
		Vendor:      nu.Vendor,
		Name:        nu.Name,
		Description: nu.Description,
		Price:       nu.Price,
		IsSoulbound: nu.IsSoulbound,
		AssetCode:   a.Code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := Save(ctx, dbConn, &l); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}

	if _, err := metadata.Create(ctx, dbConn, a.Code, nu.Name, nu.Description,
		nu.Price, nu.IsSoulbound, now); err != nil {
		logger.Warn(ctx, "Failed to write descriptor for %s : %s", a.Code.String(), err)
	}

	logger.Info(ctx, "Listed service %q at %d for %s", nu.Name, nu.Price,
		nu.Vendor.String())
	return &l, nil
}

// TransferOwnership rewrites the vendor field to the new owner. Only called
// by the settlement engine after a successful value and asset transfer; the
// listing is only mutated in memory.
func TransferOwnership(l *ServiceListing, newOwner identity.PublicKey, now time.Time) {
	l.Vendor = newOwner
	l.Revision++
	l.UpdatedAt = now
}

// UpdatePrice sets a new price on the listing. Only the current vendor may
// change it.
func UpdatePrice(ctx context.Context, dbConn *db.DB, l *ServiceListing,
	newPrice uint64, requester identity.PublicKey, now time.Time) error {

	ctx, span := trace.StartSpan(ctx, "internal.listing.UpdatePrice")
	defer span.End()

	if !l.Vendor.Equal(requester) {
		return ErrInvalidOwner
	}
	if newPrice == 0 {
		return ErrInvalidPrice
	}

	l.Price = newPrice
	l.Revision++
	l.UpdatedAt = now

	if err := Save(ctx, dbConn, l); err != nil {
		return errors.Wrap(err, "save listing")
	}

	return nil
}
