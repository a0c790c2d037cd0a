package assets

import (
	"bytes"
	"encoding/hex"
	"time"

	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
)

// CodeSize is the length in bytes of an asset code.
const CodeSize = 32

// Code uniquely identifies a minted asset.
type Code [CodeSize]byte

// CodeFromBytes returns a Code from raw bytes.
func CodeFromBytes(b []byte) (Code, error) {
	var result Code
	if len(b) != CodeSize {
		return result, errors.New("Invalid asset code length")
	}
	copy(result[:], b)
	return result, nil
}

// CodeFromString returns a Code from its hex representation.
func CodeFromString(s string) (Code, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Code{}, errors.Wrap(err, "decode hex")
	}
	return CodeFromBytes(b)
}

func (c Code) Bytes() []byte {
	return c[:]
}

func (c Code) String() string {
	return hex.EncodeToString(c[:])
}

func (c Code) Equal(other Code) bool {
	return bytes.Equal(c[:], other[:])
}

// MarshalText implements encoding.TextMarshaler so codes serialize as hex.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	result, err := CodeFromString(string(text))
	if err != nil {
		return err
	}
	*c = result
	return nil
}

// Asset is a unique non-fungible unit with exactly one holder at a time.
//
// FreezeAuthority, when set, marks the asset non-transferable at the mint
// level. HolderLockAuthority, when set, revokes the holder's ability to move
// or close the holding themselves. Both are set together by a soulbound sale
// and cleared together by an unlock.
type Asset struct {
	Code                Code                `json:"code"`
	Holder              identity.PublicKey  `json:"holder"`
	FreezeAuthority     *identity.PublicKey `json:"freeze_authority,omitempty"`
	HolderLockAuthority *identity.PublicKey `json:"holder_lock_authority,omitempty"`
	Revision            uint32              `json:"revision"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
