package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/fairlane/marketplace/internal/platform/config"
	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/internal/platform/node"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	FlagKey       = "key"
	FlagSoulbound = "soulbound"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Service Marketplace CLI",
}

func Execute() {
	marketCmd.AddCommand(cmdInit)
	marketCmd.AddCommand(cmdList)
	marketCmd.AddCommand(cmdPurchase)
	marketCmd.AddCommand(cmdResell)
	marketCmd.AddCommand(cmdFund)
	marketCmd.AddCommand(cmdState)
	marketCmd.Execute()
}

// Environment assembles the pieces every command needs.
type Environment struct {
	Context context.Context
	Config  *config.Config
	DB      *db.DB
	Now     time.Time
}

func NewEnvironment() (*Environment, error) {
	cfg, err := config.Environment()
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}

	ctx := node.ContextWithDevelopmentLogger(context.Background(), "text")
	ctx = node.ContextWithLogTrace(ctx, uuid.New().String())

	if cfgJSON, err := json.Marshal(config.SafeConfig(*cfg)); err == nil {
		node.LogVerbose(ctx, "Config : %s", string(cfgJSON))
	}

	now := time.Now().UTC()
	v := node.Values{TraceID: uuid.New().String(), Now: now}
	ctx = context.WithValue(ctx, node.KeyValues, &v)

	masterDB, err := db.New(&db.StorageConfig{
		Region: cfg.AWS.Region,
		Bucket: cfg.Storage.Bucket,
		Root:   cfg.Storage.Root,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}

	return &Environment{
		Context: ctx,
		Config:  cfg,
		DB:      masterDB,
		Now:     v.Now,
	}, nil
}

// keyFromCommand loads the signing key supplied with --key as a 32 byte hex
// seed.
func keyFromCommand(c *cobra.Command) (*identity.Key, error) {
	seed, _ := c.Flags().GetString(FlagKey)
	if len(seed) == 0 {
		return nil, errors.New("Missing --key")
	}

	b, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrap(err, "parse key seed")
	}

	return identity.KeyFromBytes(b)
}
