// Package settlement orchestrates the atomic, multi-party value transfer of
// a purchase: fund movement, fee split, asset ownership transfer and lock
// state, applied as one indivisible unit with no partial effects.
package settlement

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/fees"
	"github.com/fairlane/marketplace/internal/holdings"
	"github.com/fairlane/marketplace/internal/listing"
	"github.com/fairlane/marketplace/internal/lock"
	"github.com/fairlane/marketplace/internal/marketplace"
	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

var (
	// ErrInsufficientFunds occurs when the buyer balance cannot cover the
	// listing price. No transfer is committed.
	ErrInsufficientFunds = errors.New("Insufficient funds")

	// ErrInvalidOwner occurs when a holding account owner does not match
	// the expected identity.
	ErrInvalidOwner = errors.New("Invalid owner")

	// ErrSoulboundNonTransferable occurs when a soulbound listing is resold
	// or when resale ownership does not match.
	ErrSoulboundNonTransferable = errors.New("Soulbound and non-transferable")

	// ErrUnauthorized occurs when the authorization proof for a transfer
	// does not verify.
	ErrUnauthorized = errors.New("Unauthorized")
)

// leg is one staged fund movement awaiting finalization.
type leg struct {
	holding *holdings.Holding
	id      uuid.UUID
}

// Purchase settles the sale of a listing to the buyer.
//
// All validation happens against in-memory copies of the ledger records.
// Nothing is persisted until every leg has been staged and finalized, so a
// failure at any step leaves no observable effect.
func Purchase(ctx context.Context, dbConn *db.DB, assetCode *assets.Code,
	buyer identity.PublicKey, proof identity.Proof, now time.Time) (*Receipt, error) {

	ctx, span := trace.StartSpan(ctx, "internal.settlement.Purchase")
	defer span.End()

	m, err := marketplace.Retrieve(ctx, dbConn)
	if err != nil {
		return nil, errors.Wrap(err, "retrieve marketplace")
	}

	l, err := listing.Fetch(ctx, dbConn, assetCode)
	if err != nil {
		return nil, err
	}

	a, err := assets.Fetch(ctx, dbConn, assetCode)
	if err != nil {
		return nil, err
	}

	// The asset holder and the listing vendor must agree before anything
	// moves.
	if !a.Holder.Equal(l.Vendor) {
		return nil, ErrInvalidOwner
	}

	if !proof.Signer.Equal(buyer) {
		return nil, ErrUnauthorized
	}
	if err := proof.Verify(PurchaseDigest(assetCode, buyer, l.Price, l.Revision)); err != nil {
		return nil, ErrUnauthorized
	}

	feeAmount, vendorAmount := fees.Split(l.Price, m.FeePercentage)

	settlementID, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate settlement id")
	}

	accounts := newAccountSet(dbConn, now)
	legs := make([]leg, 0, 3)

	// Stage the buyer debit for the full price first. An insufficient
	// balance aborts before any other effect.
	buyerHolding, err := accounts.get(ctx, buyer)
	if err != nil {
		return nil, err
	}
	debitID, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate leg id")
	}
	if err := holdings.AddDebit(buyerHolding, debitID, l.Price, now); err != nil {
		if errors.Cause(err) == holdings.ErrInsufficientHoldings {
			return nil, ErrInsufficientFunds
		}
		return nil, errors.Wrap(err, "debit buyer")
	}
	legs = append(legs, leg{buyerHolding, debitID})

	vendorAtSale := l.Vendor

	vendorHolding, err := accounts.get(ctx, vendorAtSale)
	if err != nil {
		revertLegs(ctx, legs, now)
		return nil, err
	}
	depositID, err := uuid.NewRandom()
	if err != nil {
		revertLegs(ctx, legs, now)
		return nil, errors.Wrap(err, "generate leg id")
	}
	if err := holdings.AddDeposit(vendorHolding, depositID, vendorAmount, now); err != nil {
		revertLegs(ctx, legs, now)
		return nil, errors.Wrap(err, "deposit vendor")
	}
	legs = append(legs, leg{vendorHolding, depositID})

	// A zero fee stages no fee leg at all.
	if feeAmount > 0 {
		feeHolding, err := accounts.get(ctx, m.Authority)
		if err != nil {
			revertLegs(ctx, legs, now)
			return nil, err
		}
		feeID, err := uuid.NewRandom()
		if err != nil {
			revertLegs(ctx, legs, now)
			return nil, errors.Wrap(err, "generate leg id")
		}
		if err := holdings.AddDeposit(feeHolding, feeID, feeAmount, now); err != nil {
			revertLegs(ctx, legs, now)
			return nil, errors.Wrap(err, "deposit fee")
		}
		legs = append(legs, leg{feeHolding, feeID})
	}

	if err := assets.Transfer(ctx, a, vendorAtSale, buyer, now); err != nil {
		revertLegs(ctx, legs, now)
		switch errors.Cause(err) {
		case assets.ErrInvalidHolder:
			return nil, ErrInvalidOwner
		case assets.ErrFrozen:
			return nil, ErrSoulboundNonTransferable
		}
		return nil, errors.Wrap(err, "transfer asset")
	}

	// A soulbound sale locks the asset to the vendor at time of sale. The
	// buyer holds it but cannot move or close it.
	if l.IsSoulbound {
		lock.Apply(a, vendorAtSale, now)
	}

	listing.TransferOwnership(l, buyer, now)

	for _, lg := range legs {
		if err := holdings.FinalizeStatus(lg.holding, lg.id, now); err != nil {
			return nil, errors.Wrap(err, "finalize leg")
		}
	}

	receipt := Receipt{
		SettlementID: settlementID,
		Type:         TypePurchase,
		AssetCode:    *assetCode,
		Buyer:        buyer,
		Vendor:       vendorAtSale,
		Price:        l.Price,
		FeeAmount:    feeAmount,
		VendorAmount: vendorAmount,
		IsSoulbound:  l.IsSoulbound,
		Timestamp:    now,
	}

	if err := accounts.save(ctx); err != nil {
		return nil, errors.Wrap(err, "save holdings")
	}
	if err := assets.Save(ctx, dbConn, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	if err := listing.Save(ctx, dbConn, l); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	if err := Save(ctx, dbConn, &receipt); err != nil {
		return nil, errors.Wrap(err, "save receipt")
	}

	logger.Info(ctx, "Settled purchase %s : asset %s, %d to vendor, %d fee",
		settlementID.String(), assetCode.String(), vendorAmount, feeAmount)
	return &receipt, nil
}

// Resell reprices a listing for a new sale by its current vendor.
//
// Resale is gated on the listing not being soulbound, so the unlock below is
// normally a no-op on an already unlocked asset. It is kept unconditional so
// a resale always leaves the asset transferable.
func Resell(ctx context.Context, dbConn *db.DB, assetCode *assets.Code,
	seller identity.PublicKey, proof identity.Proof, newPrice uint64,
	now time.Time) (*Receipt, error) {

	ctx, span := trace.StartSpan(ctx, "internal.settlement.Resell")
	defer span.End()

	l, err := listing.Fetch(ctx, dbConn, assetCode)
	if err != nil {
		return nil, err
	}

	if !l.Vendor.Equal(seller) {
		return nil, ErrSoulboundNonTransferable
	}
	if newPrice == 0 {
		return nil, listing.ErrInvalidPrice
	}
	if l.IsSoulbound {
		return nil, ErrSoulboundNonTransferable
	}

	if !proof.Signer.Equal(seller) {
		return nil, ErrUnauthorized
	}
	if err := proof.Verify(ResellDigest(assetCode, seller, newPrice, l.Revision)); err != nil {
		return nil, ErrUnauthorized
	}

	a, err := assets.Fetch(ctx, dbConn, assetCode)
	if err != nil {
		return nil, err
	}

	if err := lock.Release(a, seller, now); err != nil {
		if errors.Cause(err) == lock.ErrNotHolder {
			return nil, ErrInvalidOwner
		}
		return nil, errors.Wrap(err, "release lock")
	}

	l.Price = newPrice
	l.Revision++
	l.UpdatedAt = now

	settlementID, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate settlement id")
	}

	receipt := Receipt{
		SettlementID: settlementID,
		Type:         TypeResale,
		AssetCode:    *assetCode,
		Vendor:       seller,
		Price:        newPrice,
		Timestamp:    now,
	}

	if err := listing.Save(ctx, dbConn, l); err != nil {
		return nil, errors.Wrap(err, "save listing")
	}
	if err := assets.Save(ctx, dbConn, a); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	if err := Save(ctx, dbConn, &receipt); err != nil {
		return nil, errors.Wrap(err, "save receipt")
	}

	logger.Info(ctx, "Relisted asset %s at %d", assetCode.String(), newPrice)
	return &receipt, nil
}

// PurchaseDigest is the message a buyer signs to authorize payment for a
// listing at its current price and revision.
func PurchaseDigest(code *assets.Code, buyer identity.PublicKey, price uint64,
	revision uint32) []byte {

	digest := sha256.New()
	digest.Write([]byte("purchase"))
	digest.Write(code.Bytes())
	digest.Write(buyer.Bytes())

	var num [8]byte
	binary.BigEndian.PutUint64(num[:], price)
	digest.Write(num[:])
	binary.BigEndian.PutUint32(num[:4], revision)
	digest.Write(num[:4])

	return digest.Sum(nil)
}

// ResellDigest is the message a seller signs to authorize repricing a
// listing.
func ResellDigest(code *assets.Code, seller identity.PublicKey, newPrice uint64,
	revision uint32) []byte {

	digest := sha256.New()
	digest.Write([]byte("resell"))
	digest.Write(code.Bytes())
	digest.Write(seller.Bytes())

	var num [8]byte
	binary.BigEndian.PutUint64(num[:], newPrice)
	digest.Write(num[:])
	binary.BigEndian.PutUint32(num[:4], revision)
	digest.Write(num[:4])

	return digest.Sum(nil)
}

func revertLegs(ctx context.Context, legs []leg, now time.Time) {
	for _, lg := range legs {
		if err := holdings.RevertStatus(lg.holding, lg.id, now); err != nil {
			logger.Warn(ctx, "Failed to revert settlement leg : %s", err)
		}
	}
}

// accountSet fetches each holding at most once so settlements where two
// parties share an address operate on a single copy.
type accountSet struct {
	dbConn   *db.DB
	now      time.Time
	accounts map[identity.PublicKey]*holdings.Holding
}

func newAccountSet(dbConn *db.DB, now time.Time) *accountSet {
	return &accountSet{
		dbConn:   dbConn,
		now:      now,
		accounts: make(map[identity.PublicKey]*holdings.Holding),
	}
}

func (s *accountSet) get(ctx context.Context, address identity.PublicKey) (*holdings.Holding, error) {
	if h, exists := s.accounts[address]; exists {
		return h, nil
	}

	h, err := holdings.GetHolding(ctx, s.dbConn, address, s.now)
	if err != nil {
		return nil, errors.Wrap(err, "get holding")
	}

	s.accounts[address] = h
	return h, nil
}

func (s *accountSet) save(ctx context.Context) error {
	for _, h := range s.accounts {
		if err := holdings.Save(ctx, s.dbConn, h); err != nil {
			return err
		}
	}
	return nil
}
