package settlement

import (
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
)

// Receipt records one committed settlement. It is written as the final step
// of a successful purchase or resale and never mutated.
type Receipt struct {
	SettlementID uuid.UUID          `json:"settlement_id"`
	Type         string             `json:"type"`
	AssetCode    assets.Code        `json:"asset_code"`
	Buyer        identity.PublicKey `json:"buyer"`
	Vendor       identity.PublicKey `json:"vendor"`
	Price        uint64             `json:"price"`
	FeeAmount    uint64             `json:"fee_amount"`
	VendorAmount uint64             `json:"vendor_amount"`
	IsSoulbound  bool               `json:"is_soulbound"`
	Timestamp    time.Time          `json:"timestamp"`
}

const (
	// TypePurchase marks a receipt from a purchase settlement.
	TypePurchase = "purchase"

	// TypeResale marks a receipt from a resale repricing.
	TypeResale = "resale"
)
