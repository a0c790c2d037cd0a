package cmd

import (
	"fmt"
	"strconv"

	"github.com/fairlane/marketplace/internal/holdings"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdFund = &cobra.Command{
	Use:     "fund identity amount",
	Short:   "Deposit funds into a holding account. Test environments only.",
	Example: "market fund 1ccbdbe5ac0188d6259cbd4e0522d8c6539f0a291bfcf4cdad9a5275925571ba 100000",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Expected identity and amount")
		}

		address, err := identity.PublicKeyFromString(args[0])
		if err != nil {
			return errors.Wrap(err, "parse identity")
		}

		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse amount")
		}

		env, err := NewEnvironment()
		if err != nil {
			return err
		}
		defer env.DB.Close()

		if !env.Config.Marketplace.IsTest {
			return errors.New("Funding is only available in test environments")
		}

		h, err := holdings.Deposit(env.Context, env.DB, address, amount, env.Now)
		if err != nil {
			return err
		}

		fmt.Printf("Funded %s : balance %d\n", address.String(), h.FinalizedBalance)
		return nil
	},
}
