package listing

import (
	"time"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/pkg/identity"
)

// ServiceListing is a priced offer for a service, backed by one unique
// asset. Vendor always names the current owner; it is overwritten on every
// successful purchase.
type ServiceListing struct {
	Vendor      identity.PublicKey `json:"vendor"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       uint64             `json:"price"`
	IsSoulbound bool               `json:"is_soulbound"`
	AssetCode   assets.Code        `json:"asset_code"`
	Revision    uint32             `json:"revision"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewListing holds the caller supplied values for creating a listing.
type NewListing struct {
	Vendor      identity.PublicKey
	Name        string
	Description string
	Price       uint64
	IsSoulbound bool
}
