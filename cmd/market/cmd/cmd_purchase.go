package cmd

import (
	"fmt"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/listing"
	"github.com/fairlane/marketplace/internal/settlement"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdPurchase = &cobra.Command{
	Use:     "purchase asset_code",
	Short:   "Purchase a listed service.",
	Example: "market purchase 6259cbd4e0522d8c6539f0a291bfcf4cdad9a5275925571ba1ccbdbe5ac0188d --key <seed>",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("Missing asset code")
		}

		code, err := assets.CodeFromString(args[0])
		if err != nil {
			return errors.Wrap(err, "parse asset code")
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

		proof := key.Sign(settlement.PurchaseDigest(&code, key.PublicKey(),
			l.Price, l.Revision))

		receipt, err := settlement.Purchase(env.Context, env.DB, &code,
			key.PublicKey(), proof, env.Now)
		if err != nil {
			return err
		}

		fmt.Printf("Purchased : settlement %s, %d to vendor, %d fee\n",
			receipt.SettlementID.String(), receipt.VendorAmount, receipt.FeeAmount)
		return nil
	},
}

func init() {
	cmdPurchase.Flags().String(FlagKey, "", "buyer key seed (hex)")
}
