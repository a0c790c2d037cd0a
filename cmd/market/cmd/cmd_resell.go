package cmd

import (
	"fmt"
	"strconv"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/listing"
	"github.com/fairlane/marketplace/internal/settlement"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdResell = &cobra.Command{
	Use:     "resell asset_code price",
	Short:   "Relist an owned service at a new price.",
	Example: "market resell 6259cbd4e0522d8c6539f0a291bfcf4cdad9a5275925571ba1ccbdbe5ac0188d 7500 --key <seed>",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Expected asset code and price")
		}

		code, err := assets.CodeFromString(args[0])
		if err != nil {
			return errors.Wrap(err, "parse asset code")
		}

		price, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse price")
		}

		key, err := keyFromCommand(c)
		if err != nil {
			return err
		}

		env, err := NewEnvironment()
		if err != nil {
			return err
		}
		defer env.DB.Close()

		l, err := listing.Fetch(env.Context, env.DB, &code)
		if err != nil {
			return err
		}

		proof := key.Sign(settlement.ResellDigest(&code, key.PublicKey(),
			price, l.Revision))

		receipt, err := settlement.Resell(env.Context, env.DB, &code,
			key.PublicKey(), proof, price, env.Now)
		if err != nil {
			return err
		}

		fmt.Printf("Relisted : settlement %s at %d\n",
			receipt.SettlementID.String(), receipt.Price)
		return nil
	},
}

func init() {
	cmdResell.Flags().String(FlagKey, "", "seller key seed (hex)")
}
