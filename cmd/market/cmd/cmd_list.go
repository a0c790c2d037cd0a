package cmd

import (
	"fmt"
	"strconv"

	"github.com/fairlane/marketplace/internal/listing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdList = &cobra.Command{
	Use:     "list name description price",
	Short:   "List a service backed by a newly minted asset.",
	Example: "market list \"Logo design\" \"One logo, two revisions\" 5000 --key <seed> --soulbound",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 3 {
			return errors.New("Expected name, description and price")
		}

		price, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse price")
		}

		isSoulbound, _ := c.Flags().GetBool(FlagSoulbound)

		key, err := keyFromCommand(c)
		if err != nil {
			return err
		}

		env, err := NewEnvironment()
		if err != nil {
			return err
		}
		defer env.DB.Close()

		l, err := listing.Create(env.Context, env.DB, &listing.NewListing{
			Vendor:      key.PublicKey(),
			Name:        args[0],
			Description: args[1],
			Price:       price,
			IsSoulbound: isSoulbound,
		}, env.Now)
		if err != nil {
			return err
		}

		fmt.Printf("Listed service : asset %s\n", l.AssetCode.String())
		return nil
	},
}

func init() {
	cmdList.Flags().String(FlagKey, "", "vendor key seed (hex)")
	cmdList.Flags().Bool(FlagSoulbound, false, "lock the asset after first sale")
}
