package holdings

import (
	"time"

	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
)

// Holding is the fungible balance ledger entry for one identity.
//
// Balances are two-phase. Pending reflects staged settlement legs that have
// not been finalized yet; Finalized is the committed balance. A settlement
// stages debits and deposits as statuses, then either finalizes them all or
// reverts them all.
type Holding struct {
	Address          identity.PublicKey           `json:"address"`
	PendingBalance   uint64                       `json:"pending_balance"`
	FinalizedBalance uint64                       `json:"finalized_balance"`
	HoldingStatuses  map[uuid.UUID]*HoldingStatus `json:"holding_statuses"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// HoldingStatus is one staged settlement leg against a holding.
type HoldingStatus struct {
	Code         byte      `json:"code"`
	Amount       uint64    `json:"amount"`
	SettlementID uuid.UUID `json:"settlement_id"`
}
