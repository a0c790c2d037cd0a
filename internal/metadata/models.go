package metadata

import (
	"time"

	"github.com/fairlane/marketplace/internal/assets"
)

// Symbol attached to every service descriptor.
const Symbol = "SVC"

// Descriptor is the write-once descriptive record for a listed service,
// keyed by the asset backing the listing. It is advisory only; settlement
// never reads it.
type Descriptor struct {
	AssetCode   assets.Code `json:"asset_code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       uint64      `json:"price"`
	IsSoulbound bool        `json:"is_soulbound"`
	Symbol      string      `json:"symbol"`
	URI         string      `json:"uri"`
	CreatedAt   time.Time   `json:"created_at"`
}
