// Package tests provides the harness shared by package tests that need
// storage and identities.
package tests

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/fairlane/marketplace/internal/platform/db"
	"github.com/fairlane/marketplace/internal/platform/node"
	"github.com/fairlane/marketplace/pkg/identity"

	"github.com/google/uuid"
)

// Success and Failed markers for test output.
const (
	Success = "✓"
	Failed  = "✗"
)

// Test owns the state needed to run operations against real storage.
type Test struct {
	Context      context.Context
	MasterDB     *db.DB
	AuthorityKey *identity.Key

	storagePath string
}

// New sets up a test environment backed by filesystem storage under a
// unique temporary root.
func New() *Test {
	ctx := node.ContextWithNoLogger(context.Background())

	uid, err := uuid.NewRandom()
	if err != nil {
		fmt.Printf("Failed to generate storage path : %s\n", err)
		return nil
	}
	path := fmt.Sprintf("./tmp/test-%s", uid.String())

	masterDB, err := db.New(&db.StorageConfig{
		Bucket: "standalone",
		Root:   path,
	})
	if err != nil {
		fmt.Printf("Failed to create DB : %s\n", err)
		return nil
	}

	authorityKey, err := identity.GenerateKey()
	if err != nil {
		fmt.Printf("Failed to generate authority key : %s\n", err)
		return nil
	}

	return &Test{
		Context:      ctx,
		MasterDB:     masterDB,
		AuthorityKey: authorityKey,
		storagePath:  path,
	}
}

// Reset clears all stored records.
func (test *Test) Reset() error {
	return test.MasterDB.Clear(test.Context, "")
}

// TearDown cleans up the test environment.
func (test *Test) TearDown() {
	if test.MasterDB != nil {
		test.MasterDB.Close()
	}
	if len(test.storagePath) > 0 {
		os.RemoveAll(test.storagePath)
	}
}

// GenerateKey creates a random identity key for a test party.
func GenerateKey() (*identity.Key, error) {
	return identity.GenerateKey()
}

// MustGenerateKey creates a random identity key or fails the test.
func MustGenerateKey(t testing.TB) *identity.Key {
	key, err := identity.GenerateKey()
	if err != nil {
		t.Fatalf("\t%s\tFailed to generate key : %v", Failed, err)
	}
	return key
}

// Recover fails the test cleanly on panic.
func Recover(t testing.TB) {
	if r := recover(); r != nil {
		t.Fatalf("\t%s\tUnhandled panic : %v", Failed, r)
	}
}
