package holdings

import (
	"context"
	"fmt"
	"time"

	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound abstracts the standard not found error.
	ErrNotFound = errors.New("Holding not found")

	// ErrInsufficientHoldings occurs when the address doesn't hold enough
	// funds for the operation.
	ErrInsufficientHoldings = errors.New("Holdings insufficient")

	// ErrDuplicateEntry occurs when more than one leg is staged against the
	// same holding for the same status id.
	ErrDuplicateEntry = errors.New("Holdings duplicate entry")
)

const (
	DebitCode   = byte('S')
	DepositCode = byte('R')
)

// GetHolding returns the holding data for an identity. A missing holding is
// returned empty rather than as an error so deposits can create accounts.
func GetHolding(ctx context.Context, dbConn *db.DB, address identity.PublicKey,
	now time.Time) (*Holding, error) {

	result, err := Fetch(ctx, dbConn, address)
	if err == nil {
		return result, nil
	}
	if err != ErrNotFound {
		return result, err
	}

	result = &Holding{
		Address:         address,
		CreatedAt:       now,
		UpdatedAt:       now,
		HoldingStatuses: make(map[uuid.UUID]*HoldingStatus),
	}
	return result, nil
}

// SafeBalance is the balance that can safely be spent. While legs are staged
// the pending balance is the lower bound.
func SafeBalance(h *Holding) uint64 {
	if h.PendingBalance < h.FinalizedBalance {
		return h.PendingBalance
	}
	return h.FinalizedBalance
}

// AddDebit stages an outgoing amount against a holding.
func AddDebit(h *Holding, statusID uuid.UUID, amount uint64, now time.Time) error {
	if _, exists := h.HoldingStatuses[statusID]; exists {
		return ErrDuplicateEntry
	}

	if SafeBalance(h) < amount {
		return ErrInsufficientHoldings
	}

	h.PendingBalance -= amount
	h.UpdatedAt = now

	h.HoldingStatuses[statusID] = &HoldingStatus{
		Code:         DebitCode,
		Amount:       amount,
		SettlementID: statusID,
	}
	return nil
}

// AddDeposit stages an incoming amount against a holding.
func AddDeposit(h *Holding, statusID uuid.UUID, amount uint64, now time.Time) error {
	if _, exists := h.HoldingStatuses[statusID]; exists {
		return ErrDuplicateEntry
	}

	h.PendingBalance += amount
	h.UpdatedAt = now

	h.HoldingStatuses[statusID] = &HoldingStatus{
		Code:         DepositCode,
		Amount:       amount,
		SettlementID: statusID,
	}
	return nil
}

// FinalizeStatus commits a staged leg to the finalized balance.
func FinalizeStatus(h *Holding, statusID uuid.UUID, now time.Time) error {
	hs, exists := h.HoldingStatuses[statusID]
	if !exists {
		return fmt.Errorf("Missing status to finalize : %s", statusID.String())
	}

	h.UpdatedAt = now

	switch hs.Code {
	case DebitCode:
		h.FinalizedBalance -= hs.Amount
		delete(h.HoldingStatuses, statusID)
	case DepositCode:
		h.FinalizedBalance += hs.Amount
		delete(h.HoldingStatuses, statusID)
	default:
		return fmt.Errorf("Unknown holding status code : %c", hs.Code)
	}

	return nil
}

// RevertStatus undoes a staged leg, restoring the pending balance.
func RevertStatus(h *Holding, statusID uuid.UUID, now time.Time) error {
	hs, exists := h.HoldingStatuses[statusID]
	if !exists {
		return fmt.Errorf("Missing status to revert : %s", statusID.String())
	}

	h.UpdatedAt = now

	switch hs.Code {
	case DebitCode:
		h.PendingBalance += hs.Amount
		delete(h.HoldingStatuses, statusID)
	case DepositCode:
		h.PendingBalance -= hs.Amount
		delete(h.HoldingStatuses, statusID)
	default:
		return fmt.Errorf("Unknown holding status code : %c", hs.Code)
	}

	return nil
}

// Deposit adds a finalized amount directly to a holding. Used to fund
// accounts from outside the settlement flow.
func Deposit(ctx context.Context, dbConn *db.DB, address identity.PublicKey,
	amount uint64, now time.Time) (*Holding, error) {

	h, err := GetHolding(ctx, dbConn, address, now)
	if err != nil {
		return nil, err
	}

	h.PendingBalance += amount
	h.FinalizedBalance += amount
	h.UpdatedAt = now

	if err := Save(ctx, dbConn, h); err != nil {
		return nil, errors.Wrap(err, "save holding")
	}

	return h, nil
}
