package cmd

import (
	"fmt"

	"github.com/fairlane/marketplace/internal/assets"
	"github.com/fairlane/marketplace/internal/listing"
	"github.com/fairlane/marketplace/internal/metadata"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdState = &cobra.Command{
	Use:     "state asset_code",
	Short:   "Dump the stored state for a listing.",
	Example: "market state 6259cbd4e0522d8c6539f0a291bfcf4cdad9a5275925571ba1ccbdbe5ac0188d",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("Missing asset code")
		}

		code, err := assets.CodeFromString(args[0])
		if err != nil {
			return errors.Wrap(err, "parse asset code")
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
		fmt.Printf("Listing : %s", spew.Sdump(*l))

		a, err := assets.Fetch(env.Context, env.DB, &code)
		if err != nil {
			return err
		}
		fmt.Printf("Asset : %s", spew.Sdump(*a))

		d, err := metadata.Fetch(env.Context, env.DB, &code)
		if err == nil {
			fmt.Printf("Descriptor : %s", spew.Sdump(*d))
		}

		return nil
	},
}
