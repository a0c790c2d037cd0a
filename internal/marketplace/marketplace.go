package marketplace

import (
	"context"
	"time"

	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// MaxFeePercentage is the upper bound for the marketplace fee.
const MaxFeePercentage = 100

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Marketplace not found")

	// ErrInvalidFeePercentage occurs when the fee percentage is above 100.
	ErrInvalidFeePercentage = errors.New("Invalid fee percentage")

	// ErrAlreadyInitialized occurs when the marketplace has already been
	// created. The configuration is immutable after initialization.
	ErrAlreadyInitialized = errors.New("Marketplace already initialized")
)

// Create initializes the marketplace singleton. It can only succeed once.
func Create(ctx context.Context, dbConn *db.DB, authority identity.PublicKey,
	feePercentage uint8, now time.Time) (*Marketplace, error) {

	ctx, span := trace.StartSpan(ctx, "internal.marketplace.Create")
	defer span.End()

	if feePercentage > MaxFeePercentage {
		return nil, ErrInvalidFeePercentage
	}

	if _, err := Fetch(ctx, dbConn); err == nil {
		return nil, ErrAlreadyInitialized
	} else if err != ErrNotFound {
		return nil, err
	}

	m := Marketplace{
		Authority:     authority,
		FeePercentage: feePercentage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := Save(ctx, dbConn, &m); err != nil {
		return nil, errors.Wrap(err, "save marketplace")
	}

	logger.Info(ctx, "Marketplace initialized : authority %s, fee %d%%",
		authority.String(), feePercentage)
	return &m, nil
}

// Retrieve gets the marketplace configuration from storage.
func Retrieve(ctx context.Context, dbConn *db.DB) (*Marketplace, error) {
	ctx, span := trace.StartSpan(ctx, "internal.marketplace.Retrieve")
	defer span.End()

	return Fetch(ctx, dbConn)
}
