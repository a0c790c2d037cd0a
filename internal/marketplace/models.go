package marketplace

import (
	"time"

	"github.com/fairlane/marketplace/pkg/identity"
)

// Marketplace is the singleton configuration record. The authority and fee
// percentage are set once at initialization and never mutated afterward.
type Marketplace struct {
	Authority     identity.PublicKey `json:"authority"`
	FeePercentage uint8              `json:"fee_percentage"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
