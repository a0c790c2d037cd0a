package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fairlane/marketplace/internal/marketplace"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdInit = &cobra.Command{
	Use:     "init [fee_percentage]",
	Short:   "Initialize the marketplace with a fee percentage.",
	Example: "market init 5 --key 6259cbd4e0522d8c6539f0a291bfcf4cdad9a5275925571ba1ccbdbe5ac0188d",
	RunE: func(c *cobra.Command, args []string) error {
		env, err := NewEnvironment()
		if err != nil {
			return err
		}
		defer env.DB.Close()

		// The fee percentage and authority key fall back to the environment
		// configuration when not given on the command line.
		feePercentage := uint64(env.Config.Marketplace.FeePercentage)
		if len(args) > 0 {
			feePercentage, err = strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return errors.Wrap(err, "parse fee percentage")
			}
		}

		key, err := keyFromCommand(c)
		if err != nil {
			if len(env.Config.Marketplace.AuthorityKey) == 0 {
				return err
			}

			b, err := hex.DecodeString(env.Config.Marketplace.AuthorityKey)
			if err != nil {
				return errors.Wrap(err, "parse authority key")
			}
			if key, err = identity.KeyFromBytes(b); err != nil {
				return err
			}
		}

		m, err := marketplace.Create(env.Context, env.DB, key.PublicKey(),
			uint8(feePercentage), env.Now)
		if err != nil {
			return err
		}

		fmt.Printf("Marketplace initialized : authority %s, fee %d%%\n",
			m.Authority.String(), m.FeePercentage)
		return nil
	},
}

func init() {
	cmdInit.Flags().String(FlagKey, "", "authority key seed (hex)")
}
